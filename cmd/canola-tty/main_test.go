package main

import (
	"testing"

	"canola/internal/sims/canola"

	"github.com/gdamore/tcell/v2"
)

func TestApplyKey(t *testing.T) {
	var in canola.Input
	for _, r := range "kjgas+" {
		if got := applyKey(&in, tcell.KeyRune, r); got != keyNone {
			t.Fatalf("rune %q returned action %d", r, got)
		}
	}
	applyKey(&in, tcell.KeyPgDn, 0)
	want := canola.Input{
		ToggleSticky: true, ToggleJitter: true, ToggleGuided: true, ToggleAutofill: true,
		Restart: true, CeilingUp: true, CeilingDown: true,
	}
	if in != want {
		t.Fatalf("input = %+v, want %+v", in, want)
	}

	// Two presses between steps cancel out.
	applyKey(&in, tcell.KeyRune, 'k')
	if in.ToggleSticky {
		t.Fatal("double toggle should cancel")
	}

	tests := map[rune]keyAction{'q': keyQuit, 'm': keyMask, 'c': keyCopy, ' ': keyPauseText, 'x': keyNone}
	for r, want := range tests {
		if got := applyKey(&in, tcell.KeyRune, r); got != want {
			t.Fatalf("rune %q = %d, want %d", r, got, want)
		}
	}
}

func TestCellToGrid(t *testing.T) {
	x, y, in := cellToGrid(3, 4, 10, 10)
	if x != 3 || y != 8 || !in {
		t.Fatalf("cellToGrid = (%d,%d,%v)", x, y, in)
	}
	if _, _, in := cellToGrid(3, 5, 10, 10); in {
		t.Fatal("row past the field should be outside")
	}
}

func TestMouseButtons(t *testing.T) {
	tests := []struct {
		name string
		b    tcell.ButtonMask
		mod  tcell.ModMask
		want heldButtons
	}{
		{"left", tcell.Button1, tcell.ModNone, heldButtons{spawn: true}},
		{"right", tcell.Button2, tcell.ModNone, heldButtons{paint: true}},
		{"shift right", tcell.Button2, tcell.ModShift, heldButtons{erase: true}},
		{"released", tcell.ButtonNone, tcell.ModNone, heldButtons{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mouseButtons(tc.b, tc.mod); got != tc.want {
				t.Fatalf("mouseButtons = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFieldSize(t *testing.T) {
	w, h := fieldSize(80, 25)
	if w != 80 || h != 48 {
		t.Fatalf("fieldSize = %dx%d, want 80x48", w, h)
	}
	if w, h := fieldSize(0, 0); w != 1 || h != 2 {
		t.Fatalf("fieldSize of an empty terminal = %dx%d", w, h)
	}
}

func TestOnlyEscapePauses(t *testing.T) {
	var in canola.Input
	applyKey(&in, tcell.KeyRune, ' ')
	if in.TogglePause {
		t.Fatal("space should only toggle the pause message")
	}
	applyKey(&in, tcell.KeyEscape, 0)
	if !in.TogglePause {
		t.Fatal("escape should toggle pause")
	}
}
