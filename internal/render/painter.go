//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads palette-indexed cells into a single image and draws it
// scaled onto the screen.
type GridPainter struct {
	w, h  int
	img   *ebiten.Image
	buf   []byte
	frame []uint8
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit draws the beach with the grains stamped on top.
func (gp *GridPainter) Blit(dst *ebiten.Image, beach []uint8, grains GrainSource, palette []color.RGBA, scale int) {
	if len(beach) != gp.w*gp.h {
		return
	}
	gp.frame = Compose(gp.frame, beach, gp.w, gp.h, grains)
	gp.draw(dst, gp.frame, palette, scale)
}

// BlitMask draws a collider mask tinted by decision code.
func (gp *GridPainter) BlitMask(dst *ebiten.Image, codes []uint8, scale int) {
	if len(codes) != gp.w*gp.h {
		return
	}
	gp.draw(dst, codes, MaskTints, scale)
}

// Flash fills the whole grid with col.
func (gp *GridPainter) Flash(dst *ebiten.Image, col color.RGBA, scale int) {
	fillSolidRGBA(gp.buf, gp.w*gp.h, col)
	gp.present(dst, scale)
}

func (gp *GridPainter) draw(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.present(dst, scale)
}

func (gp *GridPainter) present(dst *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
