package app

import (
	"fmt"
	"log"
	"strings"

	"canola/internal/prefs"
	"canola/internal/sims/canola"
	"canola/internal/source"
)

// AppName names the preference store directory.
const AppName = "canola-field"

// Scene resolves the field configuration: the YAML file (or defaults), then
// saved preferences, then -set overrides and the -seed flag.
func (c *Config) Scene(saved *prefs.Preferences) (canola.Config, error) {
	cfg := canola.DefaultConfig()
	if c.ConfigPath != "" {
		loaded, err := canola.LoadConfig(c.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if saved != nil {
		cfg.Params = saved.Apply(cfg.Params)
	}
	for _, kv := range c.Overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return cfg, fmt.Errorf("override %q is not key=value", kv)
		}
		if err := cfg.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return cfg, fmt.Errorf("override %q: %w", kv, err)
		}
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Field builds the selected preset. Grains sample the -image file when one is
// given and the built-in gradient otherwise.
func (c *Config) Field(cfg canola.Config) (*canola.Sand, error) {
	var sampler canola.Sampler
	if c.ImagePath != "" {
		img, err := source.Load(c.ImagePath, cfg.Width, cfg.Height, canola.ColorPalette())
		if err != nil {
			return nil, err
		}
		sampler = img
	}
	return canola.NewPreset(c.Sim, cfg, sampler)
}

// PointerCell maps a cursor position in screen pixels to a grid cell. The
// boolean reports whether the cell lies inside the field.
func PointerCell(mx, my, scale, w, h int) (int, int, bool) {
	if scale <= 0 {
		scale = 1
	}
	if mx < 0 || my < 0 {
		return -1, -1, false
	}
	x, y := mx/scale, my/scale
	return x, y, x < w && y < h
}

// OpenPrefs opens the per-user preference store unless -no-prefs is set.
// Failures are logged and leave a memory-only manager.
func (c *Config) OpenPrefs() *prefs.Manager {
	defaults := prefs.FromParams(canola.DefaultConfig().Params)
	if c.NoPrefs {
		return prefs.NewManager(nil, defaults)
	}
	m, err := prefs.Open(AppName, defaults)
	if err != nil {
		log.Printf("[prefs] running without saved preferences: %v", err)
		return m
	}
	if err := m.Load(); err != nil {
		log.Printf("[prefs] %v", err)
	}
	return m
}

// StorePrefs records the field's current toggles and saves them.
func StorePrefs(m *prefs.Manager, field *canola.Sand) {
	m.Set(prefs.FromParams(field.Params()))
	if err := m.Save(); err != nil {
		log.Printf("[prefs] %v", err)
	}
}
