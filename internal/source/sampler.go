// Package source provides reference images that spawned grains take their
// color from. Samplers return palette indices and clamp coordinates to their
// own bounds, so callers may ask for any cell.
package source

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// Gradient is a procedural reference image made of horizontal bands.
type Gradient struct {
	h     int
	bands []uint8
}

// NewGradient spreads bands evenly over h rows, first band at the top.
func NewGradient(h int, bands []uint8) *Gradient {
	if h <= 0 {
		h = 1
	}
	return &Gradient{h: h, bands: append([]uint8(nil), bands...)}
}

// ColorAt implements the sampler contract.
func (g *Gradient) ColorAt(x, y int) uint8 {
	if len(g.bands) == 0 {
		return 0
	}
	y = clamp(y, 0, g.h-1)
	idx := y * len(g.bands) / g.h
	return g.bands[idx]
}

// Image is a reference bitmap quantized to a palette at grid resolution.
type Image struct {
	w, h int
	idx  []uint8
}

// FromImage scales img to w×h and maps every pixel to its nearest palette
// entry.
func FromImage(img image.Image, w, h int, pal color.Palette) *Image {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	out := &Image{w: w, h: h, idx: make([]uint8, w*h)}
	if len(pal) == 0 {
		return out
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.idx[y*w+x] = uint8(pal.Index(dst.RGBAAt(x, y)))
		}
	}
	return out
}

// Load decodes a PNG or JPEG file and quantizes it like FromImage.
func Load(path string, w, h int, pal color.Palette) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image %s: %w", path, err)
	}
	return FromImage(img, w, h, pal), nil
}

// ColorAt implements the sampler contract.
func (m *Image) ColorAt(x, y int) uint8 {
	x = clamp(x, 0, m.w-1)
	y = clamp(y, 0, m.h-1)
	return m.idx[y*m.w+x]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
