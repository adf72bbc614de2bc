//go:build ebiten

package app

import (
	"image/color"

	"canola/internal/render"
	"canola/internal/sims/canola"
	"canola/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var flashColor = color.RGBA{R: 238, G: 238, B: 246, A: 255}

// Game adapts a sand field to the ebiten.Game interface.
type Game struct {
	field   *canola.Sand
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale int
	flash bool
}

// New constructs a Game for the provided field. hudWidth 0 hides the panel.
func New(field *canola.Sand, scale, hudWidth int) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := field.Size()
	return &Game{
		field:   field,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(field, scale),
		hud:     ui.NewHUD(field, hudWidth),
		scale:   scale,
	}
}

// Update polls input, feeds it to the field and advances one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.overlay.Update()
	size := g.field.Size()
	onPanel := g.hud.Update(size.W * g.scale)

	g.field.SetInput(g.pollInput(onPanel))
	g.field.Step()
	if g.field.TakeFlash() {
		g.flash = true
	}
	return nil
}

func (g *Game) pollInput(onPanel bool) canola.Input {
	size := g.field.Size()
	mx, my := ebiten.CursorPosition()
	x, y, in := PointerCell(mx, my, g.scale, size.W, size.H)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	return canola.Input{
		PointerX:  x,
		PointerY:  y,
		PointerIn: in && !onPanel,

		SpawnHeld: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		PaintHeld: right && !shift,
		EraseHeld: right && shift,

		ToggleSticky:   inpututil.IsKeyJustPressed(ebiten.KeyK),
		ToggleJitter:   inpututil.IsKeyJustPressed(ebiten.KeyJ),
		ToggleGuided:   inpututil.IsKeyJustPressed(ebiten.KeyG),
		ToggleAutofill: inpututil.IsKeyJustPressed(ebiten.KeyA),
		TogglePause:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Restart:        inpututil.IsKeyJustPressed(ebiten.KeyS),
		CeilingUp:      inpututil.IsKeyJustPressed(ebiten.KeyPageUp),
		CeilingDown:    inpututil.IsKeyJustPressed(ebiten.KeyPageDown),
	}
}

// Draw renders the beach, grains, overlay and panel. A clamped ceiling change
// shows as a single white frame.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.flash {
		g.flash = false
		g.painter.Flash(screen, flashColor, g.scale)
	} else {
		g.painter.Blit(screen, g.field.Cells(), g.field, g.field.Palette(), g.scale)
	}
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.field.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.field.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
