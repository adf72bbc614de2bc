//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"canola/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	store := cfg.OpenPrefs()
	scene, err := cfg.Scene(store.Saved())
	if err != nil {
		log.Fatalf("[canola] %v", err)
	}
	field, err := cfg.Field(scene)
	if err != nil {
		log.Fatalf("[canola] %v", err)
	}

	game := app.New(field, cfg.Scale, cfg.HUDWidth)
	size := field.Size()

	ebiten.SetWindowTitle("Canola Field - " + field.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	app.StorePrefs(store, field)
}
