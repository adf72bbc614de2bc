package canola

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"canola/internal/tween"

	"gopkg.in/yaml.v3"
)

// Settle models.
const (
	ModelDirect   = "direct"
	ModelReaction = "reaction"
)

// Collider recompute strategies run after each settle.
const (
	RecomputeFull  = "full"
	RecomputeLocal = "local"
	RecomputeNone  = "none"
)

// Params holds the user-facing toggles and tunables of the sand field.
type Params struct {
	Sticky       bool    `yaml:"sticky"`
	Jitter       bool    `yaml:"jitter"`
	Spread       int     `yaml:"spread"`
	Guided       bool    `yaml:"guided"`
	Autofill     bool    `yaml:"autofill"`
	GrainCeiling int     `yaml:"grainCeiling"`
	FallSpeed    float64 `yaml:"fallSpeed"`

	Model       string `yaml:"model"`
	Recompute   string `yaml:"recompute"`
	PaintRadius int    `yaml:"paintRadius"`

	// RampTicks and RampCurve shape the capacity ramp after a reset;
	// AdjustTicks is the linear ramp used after a ceiling change.
	RampTicks   int    `yaml:"rampTicks"`
	RampCurve   string `yaml:"rampCurve"`
	AdjustTicks int    `yaml:"adjustTicks"`
}

// Config controls the field dimensions and parameters.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  320,
		Height: 180,
		Seed:   1337,
		Params: Params{
			Sticky:       true,
			Jitter:       true,
			Spread:       4,
			Guided:       false,
			Autofill:     true,
			GrainCeiling: MaxGrains,
			FallSpeed:    1,
			Model:        ModelDirect,
			Recompute:    RecomputeFull,
			PaintRadius:  2,
			RampTicks:    60 * 20,
			RampCurve:    tween.EaseInExpo,
			AdjustTicks:  60,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Malformed values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for k, v := range cfg {
		_ = c.Set(k, v)
	}
	return c
}

// Set applies a single key=value override.
func (c *Config) Set(key, value string) error {
	p := &c.Params
	var err error
	switch key {
	case "w", "width":
		err = setPositiveInt(&c.Width, value)
	case "h", "height":
		err = setPositiveInt(&c.Height, value)
	case "seed":
		var v int64
		if v, err = strconv.ParseInt(value, 10, 64); err == nil {
			c.Seed = v
		}
	case "sticky":
		err = setBool(&p.Sticky, value)
	case "jitter":
		err = setBool(&p.Jitter, value)
	case "spread":
		var v int
		if v, err = strconv.Atoi(value); err == nil && v >= 0 {
			p.Spread = v
		}
	case "guided":
		err = setBool(&p.Guided, value)
	case "autofill":
		err = setBool(&p.Autofill, value)
	case "ceiling", "grain_ceiling":
		var v int
		if v, err = strconv.Atoi(value); err == nil {
			p.GrainCeiling = ClampCeiling(v)
		}
	case "fall_speed":
		var v float64
		if v, err = strconv.ParseFloat(value, 64); err == nil && v > 0 {
			p.FallSpeed = v
		}
	case "model":
		if value != ModelDirect && value != ModelReaction {
			err = fmt.Errorf("unknown model %q", value)
		} else {
			p.Model = value
		}
	case "recompute":
		if !validRecompute(value) {
			err = fmt.Errorf("unknown recompute strategy %q", value)
		} else {
			p.Recompute = value
		}
	case "paint_radius":
		var v int
		if v, err = strconv.Atoi(value); err == nil && v >= 0 {
			p.PaintRadius = v
		}
	case "ramp_ticks":
		var v int
		if v, err = strconv.Atoi(value); err == nil && v >= 0 {
			p.RampTicks = v
		}
	case "ramp_curve":
		if _, ok := tween.CurveByName(value); !ok {
			err = fmt.Errorf("unknown curve %q", value)
		} else {
			p.RampCurve = value
		}
	case "adjust_ticks":
		var v int
		if v, err = strconv.Atoi(value); err == nil && v >= 0 {
			p.AdjustTicks = v
		}
	default:
		err = fmt.Errorf("unknown parameter %q", key)
	}
	if err != nil {
		return fmt.Errorf("set %s=%s: %w", key, value, err)
	}
	return nil
}

// LoadConfig reads a YAML config file on top of the defaults and validates it.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	p := c.Params
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("field size must be positive, got %dx%d", c.Width, c.Height)
	case p.GrainCeiling < 1 || p.GrainCeiling > MaxGrains:
		return fmt.Errorf("grainCeiling must be between 1 and %d, got %d", MaxGrains, p.GrainCeiling)
	case p.Spread < 0:
		return fmt.Errorf("spread must be >= 0, got %d", p.Spread)
	case p.FallSpeed <= 0:
		return fmt.Errorf("fallSpeed must be > 0, got %v", p.FallSpeed)
	case p.Model != ModelDirect && p.Model != ModelReaction:
		return fmt.Errorf("unknown model %q", p.Model)
	case !validRecompute(p.Recompute):
		return fmt.Errorf("unknown recompute strategy %q", p.Recompute)
	case p.PaintRadius < 0:
		return fmt.Errorf("paintRadius must be >= 0, got %d", p.PaintRadius)
	case p.RampTicks < 0 || p.AdjustTicks < 0:
		return errors.New("ramp durations must be >= 0")
	}
	if _, ok := tween.CurveByName(p.RampCurve); !ok {
		return fmt.Errorf("unknown rampCurve %q", p.RampCurve)
	}
	return nil
}

func validRecompute(v string) bool {
	return v == RecomputeFull || v == RecomputeLocal || v == RecomputeNone
}

// ClampCeiling limits a grain ceiling to [1, MaxGrains].
func ClampCeiling(v int) int {
	if v < 1 {
		return 1
	}
	if v > MaxGrains {
		return MaxGrains
	}
	return v
}

func setPositiveInt(dst *int, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("must be positive, got %d", v)
	}
	*dst = v
	return nil
}

func setBool(dst *bool, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
