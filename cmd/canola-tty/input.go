package main

import (
	"canola/internal/sims/canola"

	"github.com/gdamore/tcell/v2"
)

type keyAction int

const (
	keyNone keyAction = iota
	keyQuit
	keyMask
	keyCopy
	keyPauseText
)

// applyKey folds one key press into the pending input. Actions the terminal
// handles itself are returned instead.
func applyKey(in *canola.Input, key tcell.Key, r rune) keyAction {
	switch key {
	case tcell.KeyEscape:
		in.TogglePause = !in.TogglePause
		return keyNone
	case tcell.KeyPgUp:
		in.CeilingUp = true
		return keyNone
	case tcell.KeyPgDn:
		in.CeilingDown = true
		return keyNone
	case tcell.KeyRune:
	default:
		return keyNone
	}
	switch r {
	case 'q':
		return keyQuit
	case 'm':
		return keyMask
	case 'c':
		return keyCopy
	case 'k':
		in.ToggleSticky = !in.ToggleSticky
	case 'j':
		in.ToggleJitter = !in.ToggleJitter
	case 'g':
		in.ToggleGuided = !in.ToggleGuided
	case 'a':
		in.ToggleAutofill = !in.ToggleAutofill
	case ' ':
		return keyPauseText
	case 's':
		in.Restart = true
	case '+', '=':
		in.CeilingUp = true
	case '-':
		in.CeilingDown = true
	}
	return keyNone
}

// cellToGrid maps a terminal cell to the grid row shown in its upper half.
func cellToGrid(cx, cy, w, h int) (int, int, bool) {
	x, y := cx, cy*2
	return x, y, cx >= 0 && cy >= 0 && x < w && y < h
}

// mouseButtons reads the held buttons: left spawns, right paints and
// shift+right erases.
func mouseButtons(b tcell.ButtonMask, mod tcell.ModMask) heldButtons {
	right := b&tcell.Button2 != 0
	shift := mod&tcell.ModShift != 0
	return heldButtons{
		spawn: b&tcell.Button1 != 0,
		paint: right && !shift,
		erase: right && shift,
	}
}
