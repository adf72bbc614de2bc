package main

import (
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"canola/internal/sims/canola"
)

func smallField(t *testing.T) *canola.Sand {
	t.Helper()
	cfg := canola.DefaultConfig()
	cfg.Width, cfg.Height = 24, 16
	cfg.Params.RampTicks = 0
	s, err := canola.NewPreset("canola", cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSimulateConserves(t *testing.T) {
	field := smallField(t)
	rep := simulate(field, 7, 200, 4)
	if rep.seed != 7 || rep.ticks != 200 {
		t.Fatalf("report header = %+v", rep)
	}
	if rep.inBeach == 0 || rep.firstRest < 0 {
		t.Fatal("expected grains to settle within 200 ticks")
	}
	if rep.peakAir > canola.MaxGrains {
		t.Fatalf("peak in-air %d exceeds the pool", rep.peakAir)
	}
	if len(rep.profile) != 4 {
		t.Fatalf("profile has %d columns, want 4", len(rep.profile))
	}
}

func TestSampleProfile(t *testing.T) {
	alts := []int{10, 8, 6, 4, 2}
	if got := sampleProfile(alts, 10, 3); !slices.Equal(got, []int{0, 4, 8}) {
		t.Fatalf("profile = %v", got)
	}
	if got := sampleProfile(alts, 10, 1); !slices.Equal(got, []int{0}) {
		t.Fatalf("single column profile = %v", got)
	}
	if sampleProfile(nil, 10, 3) != nil {
		t.Fatal("empty altitudes should give no profile")
	}
}

func TestWritePNG(t *testing.T) {
	field := smallField(t)
	for i := 0; i < 50; i++ {
		field.Step()
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := writePNG(path, field); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Fatalf("bounds = %v", b)
	}
}
