// Command canola-tty runs the sand field in a terminal. Each character cell
// shows two grid rows with a half-block glyph.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"canola/internal/app"
	"canola/internal/core"
	"canola/internal/prefs"
	"canola/internal/sims/canola"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	fit := flag.Bool("fit", true, "size the field to the terminal")
	mute := flag.Bool("mute", false, "disable the ceiling chime")
	logPath := flag.String("log", "", "write log output to this file")
	flag.Parse()

	// The screen owns the terminal, so log lines go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "canola-tty: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(cfg, *fit, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "canola-tty: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, fit, mute bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	store := cfg.OpenPrefs()
	field, err := newField(cfg, store, screen, fit)
	if err != nil {
		return err
	}

	var bell *chime
	if !mute {
		if bell, err = newChime(); err != nil {
			log.Printf("[tty] audio disabled: %v", err)
		}
	}
	defer bell.Close()

	t := newTerm(screen, field, bell)
	t.run(core.NewFixedStep(cfg.TPS))
	app.StorePrefs(store, field)
	return nil
}

func newField(cfg *app.Config, store *prefs.Manager, screen tcell.Screen, fit bool) (*canola.Sand, error) {
	scene, err := cfg.Scene(store.Saved())
	if err != nil {
		return nil, err
	}
	if fit {
		cols, rows := screen.Size()
		scene.Width, scene.Height = fieldSize(cols, rows)
	}
	return cfg.Field(scene)
}

// fieldSize maps a terminal of cols x rows to a grid, keeping the bottom row
// for the status line.
func fieldSize(cols, rows int) (int, int) {
	w := max(cols, 1)
	h := max(2*(rows-statusRows), 2)
	return w, h
}
