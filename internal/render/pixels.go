package render

import "image/color"

// GrainSource enumerates in-flight grains.
type GrainSource interface {
	EachGrain(fn func(x, y int, color uint8))
}

// Compose copies the beach into dst and stamps every in-bounds grain on top.
// dst is reallocated when it is too small and returned.
func Compose(dst, beach []uint8, w, h int, grains GrainSource) []uint8 {
	if cap(dst) < len(beach) {
		dst = make([]uint8, len(beach))
	}
	dst = dst[:len(beach)]
	copy(dst, beach)
	if grains == nil {
		return dst
	}
	grains.EachGrain(func(x, y int, c uint8) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		dst[y*w+x] = c
	})
	return dst
}

// MaskTints colors collider decision codes. Index 0 (flat) is transparent.
var MaskTints = []color.RGBA{
	0: {},
	1: {R: 200, G: 60, B: 60, A: 160},
	2: {R: 60, G: 200, B: 90, A: 160},
	3: {R: 60, G: 120, B: 220, A: 160},
	8: {R: 230, G: 200, B: 40, A: 160},
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillSolidRGBA fills the first n pixels of buf with col.
func fillSolidRGBA(buf []byte, n int, col color.RGBA) {
	for i := 0; i < n; i++ {
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
