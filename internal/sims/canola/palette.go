package canola

import "image/color"

var paletteHex = [16]uint32{
	0x2B2B17, 0x3971BB, 0x4A86CF, 0x4B4B2D,
	0x5F9CE5, 0x625922, 0x7DB0F2, 0x7F6C1A,
	0x9E8B2E, 0xABB2BD, 0xBAA11F, 0xBFC9E4,
	0xCBCEDB, 0xD0B929, 0xDFC516, 0xEEEEF6,
}

// Palette indices with a fixed role.
const (
	ColorShadow    uint8 = 3
	ColorHighlight uint8 = 11
	ColorWhite     uint8 = 15
)

// sourceBands are the default reference-image rows, sky at the top and dark
// soil at the bottom. The background index never appears in a band.
var sourceBands = []uint8{6, 4, 2, 14, 13, 10, 8, 7, 5, 3}

var sandPalette = buildPalette()

func buildPalette() []color.RGBA {
	out := make([]color.RGBA, len(paletteHex))
	for i, v := range paletteHex {
		out[i] = color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
	}
	return out
}

// Palette exposes the 16-color palette the beach indices refer to.
func (s *Sand) Palette() []color.RGBA { return sandPalette }

// ColorPalette returns the palette as a color.Palette for quantizing images.
func ColorPalette() color.Palette {
	pal := make(color.Palette, len(sandPalette))
	for i, c := range sandPalette {
		pal[i] = c
	}
	return pal
}
