//go:build ebiten

package ui

import (
	"image/color"

	"canola/internal/core"
	"canola/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	Colliders() []uint8
}

type pauseProvider interface {
	Paused() bool
}

type ceilingProvider interface {
	CeilingVisible() bool
}

var helpLines = []string{
	"LMB spawn  RMB paint  Shift+RMB erase",
	"K sticky  J jitter  G guided  A autofill",
	"PgUp/PgDn ceiling  Esc pause  S restart",
	"Space hides the pause message",
	"M colliders  H help  Q quit",
}

// Overlay draws the collider mask and status text on top of the field.
type Overlay struct {
	sim      core.Sim
	scale    int
	showMask bool
	showHelp bool
	mask     *render.GridPainter

	// hidePause suppresses the PAUSED label until the next pause.
	hidePause bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{
		sim:      sim,
		scale:    scale,
		showHelp: true,
		mask:     render.NewGridPainter(size.W, size.H),
	}
}

// Update handles the overlay's own keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showMask = !o.showMask
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
	provider, ok := o.sim.(pauseProvider)
	if !ok || !provider.Paused() {
		o.hidePause = false
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		o.hidePause = !o.hidePause
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showMask {
		if provider, ok := o.sim.(maskProvider); ok {
			o.mask.BlitMask(screen, provider.Colliders(), o.scale)
		}
	}

	y := 4
	if provider, ok := o.sim.(pauseProvider); ok && provider.Paused() && !o.hidePause {
		drawText(screen, "PAUSED", 4, y, color.RGBA{R: 238, G: 238, B: 246, A: 255})
		y += statLineHeight
	}
	if provider, ok := o.sim.(ceilingProvider); ok && provider.CeilingVisible() {
		if params, ok := o.sim.(core.ParameterProvider); ok {
			if p, ok := params.Parameters().Lookup("ceiling"); ok {
				drawText(screen, "ceiling "+p.Value, 4, y, color.RGBA{R: 238, G: 238, B: 246, A: 255})
				y += statLineHeight
			}
		}
	}
	if o.showHelp {
		for _, line := range helpLines {
			drawText(screen, line, 4, y, color.RGBA{R: 203, G: 206, B: 219, A: 200})
			y += statLineHeight
		}
	}
}
