package canola

import (
	"fmt"
	"math"

	"canola/internal/core"
	"canola/internal/source"
	"canola/internal/tween"
	pcore "canola/pkg/core"
)

// Input is the per-tick snapshot of pointer and key state a front end feeds
// the field. Toggle and Ceiling fields are edge-triggered; Held fields are
// level-triggered.
type Input struct {
	PointerX  int
	PointerY  int
	PointerIn bool

	SpawnHeld bool
	PaintHeld bool
	EraseHeld bool

	ToggleSticky   bool
	ToggleJitter   bool
	ToggleGuided   bool
	ToggleAutofill bool
	TogglePause    bool
	Restart        bool
	CeilingUp      bool
	CeilingDown    bool
}

// Sand drives the falling-sand field: it owns the State and the tick counter
// that timed values read.
type Sand struct {
	name string
	cfg  Config

	state   *State
	solver  *Solver
	sim     *Simulator
	rng     *pcore.RNG
	sampler Sampler

	ticks        int64
	params       Params
	paused       bool
	flash        bool
	maxGrains    *tween.Value
	countVisible *tween.Bool

	input Input
}

// New returns a field using the given configuration and the built-in
// gradient reference image.
func New(cfg Config) *Sand {
	return NewWithSampler(cfg, nil)
}

// NewWithSampler returns a field whose grains take their colors from sampler.
func NewWithSampler(cfg Config, sampler Sampler) *Sand {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	cfg.Params.GrainCeiling = ClampCeiling(cfg.Params.GrainCeiling)
	if sampler == nil {
		sampler = source.NewGradient(cfg.Height, sourceBands)
	}
	state := NewState(cfg.Width, cfg.Height)
	solver := NewSolver(state.W, state.H)
	s := &Sand{
		name:    "canola",
		cfg:     cfg,
		state:   state,
		solver:  solver,
		sim:     &Simulator{Model: modelFor(cfg.Params.Model), Recompute: recomputerFor(cfg.Params.Recompute, solver)},
		rng:     pcore.NewRNG(cfg.Seed),
		sampler: sampler,
		params:  cfg.Params,
	}
	s.countVisible = tween.NewBool(s, 60)
	s.restartRamp()
	return s
}

func modelFor(name string) Model {
	if name == ModelReaction {
		return ReactionModel{}
	}
	return DirectModel{}
}

func recomputerFor(name string, solver *Solver) Recomputer {
	switch name {
	case RecomputeLocal:
		return LocalRecompute{Solver: solver}
	case RecomputeNone:
		return NoRecompute{}
	default:
		return FullRecompute{Solver: solver}
	}
}

// Name returns the simulation identifier.
func (s *Sand) Name() string { return s.name }

// Size reports the grid dimensions.
func (s *Sand) Size() core.Size { return core.Size{W: s.state.W, H: s.state.H} }

// Cells exposes the beach surface as palette indices.
func (s *Sand) Cells() []uint8 { return s.state.Beach.Cells() }

// State exposes the underlying simulation state.
func (s *Sand) State() *State { return s.state }

// Ticks implements tween.Clock. It counts every Step, paused or not.
func (s *Sand) Ticks() int64 { return s.ticks }

// Reset restarts the field. A zero seed reuses the configured seed.
func (s *Sand) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.rng = pcore.NewRNG(seed)
	s.state.ResetField()
	s.paused = false
	s.flash = false
	s.restartRamp()
}

func (s *Sand) restartRamp() {
	p := s.params
	s.maxGrains = tween.New(s, float64(p.GrainCeiling), int64(p.RampTicks), p.RampCurve)
}

// SetInput records the input to apply on the next Step.
func (s *Sand) SetInput(in Input) { s.input = in }

// Step applies pending input, attempts one spawn, and advances every grain.
func (s *Sand) Step() {
	s.ticks++
	in := s.input
	s.input = Input{}

	s.applyToggles(in)
	if in.Restart {
		s.Reset(0)
		return
	}
	if in.PointerIn {
		r := s.params.PaintRadius
		switch {
		case in.EraseHeld:
			s.solver.EraseObstacle(s.state, in.PointerX, in.PointerY, r)
		case in.PaintHeld:
			s.solver.PaintObstacle(s.state, in.PointerX, in.PointerY, r)
		}
	}
	if s.paused {
		return
	}
	if s.params.Autofill || (in.SpawnHeld && in.PointerIn) {
		s.spawn(in)
	}
	s.sim.Step(s.state, s.params.Sticky)
}

func (s *Sand) applyToggles(in Input) {
	p := &s.params
	if in.ToggleSticky {
		p.Sticky = !p.Sticky
	}
	if in.ToggleJitter {
		p.Jitter = !p.Jitter
	}
	if in.ToggleGuided {
		p.Guided = !p.Guided
	}
	if in.ToggleAutofill {
		p.Autofill = !p.Autofill
	}
	if in.TogglePause {
		s.paused = !s.paused
	}
	if in.CeilingUp {
		s.SetCeiling(p.GrainCeiling + CeilingStep)
	}
	if in.CeilingDown {
		s.SetCeiling(p.GrainCeiling - CeilingStep)
	}
}

func (s *Sand) spawn(in Input) {
	req := SpawnRequest{
		Autofill: s.params.Autofill,
		Guided:   s.params.Guided,
		Jitter:   s.params.Jitter,
		Spread:   s.params.Spread,
		PointerX: in.PointerX,
		PointerY: in.PointerY,
		Speed:    s.params.FallSpeed,
	}
	TrySpawn(s.state, s.rng, s.sampler, req, s.Capacity())
}

// SetCeiling changes the grain ceiling. Values outside [1, MaxGrains] are
// clamped and raise the flash flag. The capacity eases linearly from its
// current value to the new ceiling.
func (s *Sand) SetCeiling(v int) {
	clamped := ClampCeiling(v)
	if clamped != v {
		s.flash = true
	}
	current := s.maxGrains.Value()
	s.params.GrainCeiling = clamped
	s.countVisible.Reset()
	s.maxGrains = tween.New(s, float64(clamped), int64(s.params.AdjustTicks), tween.Linear, tween.From(current))
}

// Capacity returns the number of grains that may currently be in flight.
func (s *Sand) Capacity() int {
	c := int(math.Floor(s.maxGrains.Value()))
	if c > MaxGrains {
		c = MaxGrains
	}
	if c < 0 {
		c = 0
	}
	return c
}

// TakeFlash reports and clears the one-shot ceiling-clamp acknowledgment.
func (s *Sand) TakeFlash() bool {
	f := s.flash
	s.flash = false
	return f
}

// CeilingVisible reports whether the ceiling was changed recently enough that
// front ends should still show it.
func (s *Sand) CeilingVisible() bool { return !s.countVisible.Elapsed() }

// Params returns the live toggles and tunables.
func (s *Sand) Params() Params { return s.params }

// Paused reports whether grain advance is suspended.
func (s *Sand) Paused() bool { return s.paused }

// Counts returns the in-flight and settled grain counters.
func (s *Sand) Counts() (inAir, inBeach int) { return s.state.InAir, s.state.InBeach }

// Colliders exposes the decision-code mask.
func (s *Sand) Colliders() []uint8 { return s.state.Colliders.Cells() }

// Altitudes exposes the per-column surface rows.
func (s *Sand) Altitudes() []int { return s.state.Heights.Values() }

// EachGrain calls fn for every in-flight grain in slot order.
func (s *Sand) EachGrain(fn func(x, y int, color uint8)) {
	s.state.Pool.Each(func(_ int, g *Grain) {
		fn(g.X, int(g.Y), g.Color)
	})
}

// ApplyParams replaces the user toggles, keeping the engine-level settings.
// A changed ceiling goes through SetCeiling.
func (s *Sand) ApplyParams(p Params) {
	ceiling := p.GrainCeiling
	p.GrainCeiling = s.params.GrainCeiling
	p.Model = s.params.Model
	p.Recompute = s.params.Recompute
	s.params = p
	if ceiling != s.params.GrainCeiling {
		s.SetCeiling(ceiling)
	}
}

// presets adjust a base configuration into a named field variant.
var presets = map[string]func(*Config){
	"canola":          func(*Config) {},
	"canola-spill":    func(c *Config) { c.Params.Sticky = false },
	"canola-reaction": func(c *Config) { c.Params.Model = ModelReaction },
}

// NewPreset builds the named variant on top of cfg.
func NewPreset(name string, cfg Config, sampler Sampler) (*Sand, error) {
	apply, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown field preset %q", name)
	}
	apply(&cfg)
	s := NewWithSampler(cfg, sampler)
	s.name = name
	return s, nil
}

func init() {
	for name := range presets {
		core.Register(name, func(cfg map[string]string) core.Sim {
			s, _ := NewPreset(name, FromMap(cfg), nil)
			return s
		})
	}
}
