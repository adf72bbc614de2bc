// Command canola-run steps the field without a display and prints settle
// statistics for one or more seeds.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"canola/internal/app"
	"canola/internal/render"
	"canola/internal/sims/canola"
)

type runReport struct {
	seed      int64
	ticks     int
	inAir     int
	inBeach   int
	peakAir   int
	firstRest int
	highest   int
	meanDepth float64
	profile   []int
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var runs, ticks, columns int
	var seedStep int64
	var pngPath string
	flag.IntVar(&runs, "runs", 1, "number of runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&columns, "profile", 16, "number of columns sampled in the height profile")
	flag.StringVar(&pngPath, "png", "", "write the final frame of the last run as a PNG")
	flag.Parse()

	if runs <= 0 || ticks <= 0 {
		fmt.Println("error: -runs and -ticks must be > 0")
		os.Exit(2)
	}
	scene, err := cfg.Scene(nil)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Canola Field Report ===\n")
	fmt.Printf("preset=%s size=%dx%d runs=%d ticks=%d model=%s recompute=%s sticky=%v\n\n",
		cfg.Sim, scene.Width, scene.Height, runs, ticks, scene.Params.Model, scene.Params.Recompute, scene.Params.Sticky)

	var last *canola.Sand
	for i := 0; i < runs; i++ {
		run := scene
		run.Seed = scene.Seed + int64(i)*seedStep
		field, err := cfg.Field(run)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		printRun(i+1, simulate(field, run.Seed, ticks, columns))
		last = field
	}

	if pngPath != "" && last != nil {
		if err := writePNG(pngPath, last); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", pngPath)
	}
}

func simulate(field *canola.Sand, seed int64, ticks, columns int) runReport {
	rep := runReport{seed: seed, ticks: ticks, firstRest: -1}
	for t := 1; t <= ticks; t++ {
		field.Step()
		inAir, inBeach := field.Counts()
		rep.peakAir = max(rep.peakAir, inAir)
		if rep.firstRest < 0 && inBeach > 0 {
			rep.firstRest = t
		}
	}
	rep.inAir, rep.inBeach = field.Counts()

	alts := field.Altitudes()
	h := field.Size().H
	rep.highest = h
	total := 0
	for _, a := range alts {
		rep.highest = min(rep.highest, a)
		total += h - a
	}
	if len(alts) > 0 {
		rep.meanDepth = float64(total) / float64(len(alts))
	}
	rep.profile = sampleProfile(alts, h, columns)
	return rep
}

// sampleProfile returns the sand depth of n evenly spaced columns.
func sampleProfile(alts []int, h, n int) []int {
	if n <= 0 || len(alts) == 0 {
		return nil
	}
	n = min(n, len(alts))
	out := make([]int, n)
	for i := range out {
		col := i * (len(alts) - 1) / max(n-1, 1)
		out[i] = h - alts[col]
	}
	return out
}

func printRun(index int, r runReport) {
	fmt.Printf("--- run %d (seed=%d) ---\n", index, r.seed)
	fmt.Printf("in_air=%d in_beach=%d total=%d peak_air=%d\n", r.inAir, r.inBeach, r.inAir+r.inBeach, r.peakAir)
	if r.firstRest >= 0 {
		fmt.Printf("first_settle_tick=%d\n", r.firstRest)
	} else {
		fmt.Printf("first_settle_tick=none\n")
	}
	fmt.Printf("highest_surface_row=%d mean_depth=%.2f\n", r.highest, r.meanDepth)
	parts := make([]string, len(r.profile))
	for i, d := range r.profile {
		parts[i] = fmt.Sprint(d)
	}
	fmt.Printf("profile=[%s]\n\n", strings.Join(parts, " "))
}

func writePNG(path string, field *canola.Sand) error {
	size := field.Size()
	img := image.NewPaletted(image.Rect(0, 0, size.W, size.H), canola.ColorPalette())
	img.Pix = render.Compose(img.Pix, field.Cells(), size.W, size.H, field)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
