package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"canola/internal/core"
	"canola/internal/render"
	"canola/internal/sims/canola"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
)

const (
	statusRows = 1
	upperHalf  = '▀'
	frameRate  = 16 * time.Millisecond
)

// term couples a tcell screen to a field.
type term struct {
	screen tcell.Screen
	field  *canola.Sand
	bell   *chime

	pending   canola.Input
	held      heldButtons
	showMask  bool
	hidePause bool
	flash     bool
	status    string
	frame     []uint8
}

type heldButtons struct {
	spawn, paint, erase bool
}

func newTerm(screen tcell.Screen, field *canola.Sand, bell *chime) *term {
	return &term{screen: screen, field: field, bell: bell}
}

func (t *term) run(clock *core.FixedStep) {
	ticker := time.NewTicker(min(frameRate, clock.Interval()))
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			if !t.handle(ev) {
				return
			}
		case now := <-ticker.C:
			for n := clock.Advance(now); n > 0; n-- {
				t.step()
			}
			t.draw()
		}
	}
}

func (t *term) step() {
	in := t.pending
	in.SpawnHeld = t.held.spawn
	in.PaintHeld = t.held.paint
	in.EraseHeld = t.held.erase
	t.pending = canola.Input{PointerX: in.PointerX, PointerY: in.PointerY, PointerIn: in.PointerIn}

	t.field.SetInput(in)
	t.field.Step()
	if t.field.TakeFlash() {
		t.flash = true
		t.bell.Play()
	}
}

func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		switch applyKey(&t.pending, ev.Key(), ev.Rune()) {
		case keyQuit:
			return false
		case keyMask:
			t.showMask = !t.showMask
		case keyCopy:
			t.copyStats()
		case keyPauseText:
			if t.field.Paused() {
				t.hidePause = !t.hidePause
			}
		}
	case *tcell.EventMouse:
		cx, cy := ev.Position()
		size := t.field.Size()
		x, y, in := cellToGrid(cx, cy, size.W, size.H)
		t.pending.PointerX, t.pending.PointerY, t.pending.PointerIn = x, y, in
		t.held = mouseButtons(ev.Buttons(), ev.Modifiers())
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *term) copyStats() {
	line := t.statsLine()
	if err := clipboard.WriteAll(line); err != nil {
		log.Printf("[tty] clipboard: %v", err)
		t.status = "clipboard unavailable"
		return
	}
	t.status = "copied"
}

func (t *term) statsLine() string {
	p := t.field.Params()
	inAir, inBeach := t.field.Counts()
	return fmt.Sprintf("tick=%d air=%d beach=%d cap=%d ceiling=%d sticky=%v jitter=%v guided=%v autofill=%v",
		t.field.Ticks(), inAir, inBeach, t.field.Capacity(), p.GrainCeiling, p.Sticky, p.Jitter, p.Guided, p.Autofill)
}

func (t *term) draw() {
	size := t.field.Size()
	pal := t.field.Palette()
	t.frame = render.Compose(t.frame, t.field.Cells(), size.W, size.H, t.field)
	colliders := t.field.Colliders()

	flash := t.flash
	t.flash = false
	for cy := 0; cy*2 < size.H; cy++ {
		for cx := 0; cx < size.W; cx++ {
			top := t.cellColor(pal, colliders, cx, cy*2, size, flash)
			bottom := t.cellColor(pal, colliders, cx, cy*2+1, size, flash)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	t.drawStatus((size.H + 1) / 2)
	t.screen.Show()
}

func (t *term) cellColor(pal []color.RGBA, colliders []uint8, x, y int, size core.Size, flash bool) tcell.Color {
	if y >= size.H {
		return tcell.ColorBlack
	}
	if flash {
		return toTcell(pal[canola.ColorWhite])
	}
	i := y*size.W + x
	if t.showMask && colliders[i] != canola.CodeFlat {
		return toTcell(render.MaskTints[min(int(colliders[i]), len(render.MaskTints)-1)])
	}
	return toTcell(pal[min(int(t.frame[i]), len(pal)-1)])
}

func (t *term) drawStatus(row int) {
	cols, _ := t.screen.Size()
	line := t.statsLine()
	if !t.field.Paused() {
		t.hidePause = false
	} else if !t.hidePause {
		line = "PAUSED " + line
	}
	if t.status != "" {
		line += "  [" + t.status + "]"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		t.screen.SetContent(x, row, r, nil, style)
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
