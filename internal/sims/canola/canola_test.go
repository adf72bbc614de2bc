package canola

import (
	"slices"
	"testing"

	"canola/internal/core"
	pcore "canola/pkg/core"
)

type solidSampler uint8

func (c solidSampler) ColorAt(int, int) uint8 { return uint8(c) }

type countingRand struct {
	r     *pcore.RNG
	calls int
}

func (c *countingRand) IntN(n int) int {
	c.calls++
	return c.r.IntN(n)
}

func placeGrain(t *testing.T, s *State, x int, y float64, color uint8) {
	t.Helper()
	if s.Pool.Insert(Grain{X: x, Y: y, Color: color, Speed: 1, Origin: x}, MaxGrains) < 0 {
		t.Fatal("pool rejected test grain")
	}
	s.Busy[x] = true
	s.InAir++
}

func TestStickySettleScenario(t *testing.T) {
	const h = 20
	s := NewState(10, h)
	req := SpawnRequest{Autofill: true, Guided: true, PointerX: 5, Speed: 1}
	if !TrySpawn(s, pcore.NewRNG(1), solidSampler(13), req, MaxGrains) {
		t.Fatal("spawn at column 5 failed")
	}
	if !s.Busy[5] {
		t.Fatal("spawn should mark column 5 occupied")
	}

	sim := &Simulator{Model: DirectModel{}, Recompute: NoRecompute{}}
	for tick := 1; tick < h; tick++ {
		sim.Step(s, true)
		if s.InAir != 1 {
			t.Fatalf("grain settled early at tick %d", tick)
		}
	}
	if n := sim.Step(s, true); n != 1 {
		t.Fatalf("expected the grain to settle on tick %d, settled %d", h, n)
	}

	if got := s.Heights.Altitude(5); got != h-1 {
		t.Fatalf("altitude[5] = %d, want %d", got, h-1)
	}
	if got := s.Beach.At(5, h-1); got != 13 {
		t.Fatalf("beach pixel = %d, want 13", got)
	}
	if s.InAir != 0 || s.InBeach != 1 {
		t.Fatalf("counters inAir=%d inBeach=%d, want 0/1", s.InAir, s.InBeach)
	}
	if s.Busy[5] || s.Pool.Len() != 0 {
		t.Fatal("settle should clear occupancy and the slot")
	}
}

func TestSpillWalksRightDownStaircase(t *testing.T) {
	s := NewState(10, 10)
	for col, alt := range []int{7, 7, 7, 7, 7, 7, 8, 9, 10, 10} {
		s.Heights.SetAltitude(col, alt)
	}
	placeGrain(t, s, 5, 6.5, 9)
	s.Busy[6] = true
	s.Busy[7] = true

	sim := &Simulator{Model: DirectModel{}}
	if n := sim.Step(s, false); n != 1 {
		t.Fatalf("expected one settle, got %d", n)
	}
	if got := s.Heights.Altitude(8); got != 9 {
		t.Fatalf("altitude[8] = %d, want 9", got)
	}
	if got := s.Beach.At(8, 9); got != 9 {
		t.Fatalf("grain should rest at (8,9), pixel = %d", got)
	}
	if s.Heights.Altitude(5) != 7 {
		t.Fatal("origin column must keep its altitude after a spill")
	}
	for col := 5; col <= 8; col++ {
		if s.Busy[col] {
			t.Fatalf("column %d still occupied after the spill passed it", col)
		}
	}
}

func TestSpillFallsBackToLeft(t *testing.T) {
	s := NewState(10, 10)
	for col, alt := range []int{9, 9, 9, 9, 8, 7, 7, 7, 7, 7} {
		s.Heights.SetAltitude(col, alt)
	}
	placeGrain(t, s, 5, 6.5, 9)

	sim := &Simulator{Model: DirectModel{}}
	sim.Step(s, false)
	if got := s.Heights.Altitude(3); got != 8 {
		t.Fatalf("altitude[3] = %d, want 8", got)
	}
	if got := s.Heights.Altitude(4); got != 8 {
		t.Fatalf("altitude[4] changed to %d", got)
	}
}

func TestStickyIgnoresLowerNeighbours(t *testing.T) {
	s := NewState(6, 10)
	s.Heights.SetAltitude(2, 5)
	placeGrain(t, s, 2, 4.5, 9)
	(&Simulator{}).Step(s, true)
	if got := s.Heights.Altitude(2); got != 4 {
		t.Fatalf("altitude[2] = %d, want 4", got)
	}
}

func TestSettleClampsAtTopRow(t *testing.T) {
	s := NewState(4, 4)
	s.Heights.SetAltitude(1, 0)
	placeGrain(t, s, 1, 0, 9)
	(&Simulator{}).Step(s, true)
	if got := s.Heights.Altitude(1); got != 0 {
		t.Fatalf("altitude[1] = %d, want 0", got)
	}
	if s.InBeach != 1 {
		t.Fatal("grain should settle on a full column")
	}
}

func TestSpawnRetryBound(t *testing.T) {
	s := NewState(8, 8)
	for i := range s.Busy {
		s.Busy[i] = true
	}
	rng := &countingRand{r: pcore.NewRNG(4)}
	req := SpawnRequest{Autofill: true, Jitter: true, Spread: 4}
	if TrySpawn(s, rng, solidSampler(1), req, MaxGrains) {
		t.Fatal("spawn should fail when every column is occupied")
	}
	if rng.calls > 2*SpawnAttempts {
		t.Fatalf("spawn drew %d random numbers, more than %d attempts allow", rng.calls, SpawnAttempts)
	}

	offGrid := SpawnRequest{Guided: true, PointerX: -50}
	if TrySpawn(s, rng, solidSampler(1), offGrid, MaxGrains) {
		t.Fatal("spawn with the pointer off the grid must fail")
	}
}

func TestSpawnRejectsFilledColumn(t *testing.T) {
	s := NewState(8, 8)
	s.Heights.SetAltitude(3, 2)
	req := SpawnRequest{Guided: true, PointerX: 3, PointerY: 5}
	if TrySpawn(s, pcore.NewRNG(1), solidSampler(1), req, MaxGrains) {
		t.Fatal("spawn below the surface should be rejected")
	}
	if s.InAir != 0 || s.Busy[3] {
		t.Fatal("a rejected spawn must not change state")
	}
}

func TestSpawnRespectsCapacity(t *testing.T) {
	s := NewState(8, 8)
	rng := pcore.NewRNG(1)
	for col := 0; col < 2; col++ {
		req := SpawnRequest{Autofill: true, Guided: true, PointerX: col}
		if !TrySpawn(s, rng, solidSampler(1), req, 2) {
			t.Fatalf("spawn %d should fit", col)
		}
	}
	req := SpawnRequest{Autofill: true, Guided: true, PointerX: 5}
	if TrySpawn(s, rng, solidSampler(1), req, 2) {
		t.Fatal("third spawn should exceed capacity")
	}
	if s.Busy[5] {
		t.Fatal("a spawn refused for capacity must not mark the column")
	}
}

type recordingSampler struct{ x, y int }

func (r *recordingSampler) ColorAt(x, y int) uint8 {
	r.x, r.y = x, y
	return 7
}

func TestSpawnSamplesAboveSurface(t *testing.T) {
	s := NewState(8, 8)
	s.Heights.SetAltitude(2, 5)
	s.Heights.SetAltitude(4, 0)
	rec := &recordingSampler{}

	TrySpawn(s, pcore.NewRNG(1), rec, SpawnRequest{Autofill: true, Guided: true, PointerX: 2}, MaxGrains)
	if rec.x != 2 || rec.y != 4 {
		t.Fatalf("sampled (%d,%d), want (2,4)", rec.x, rec.y)
	}
	TrySpawn(s, pcore.NewRNG(1), rec, SpawnRequest{Autofill: true, Guided: true, PointerX: 4}, MaxGrains)
	if rec.y != 0 {
		t.Fatalf("sample row on a full column = %d, want 0", rec.y)
	}
}

func testConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seed = 42
	cfg.Params.RampTicks = 0
	cfg.Params.Recompute = RecomputeLocal
	return cfg
}

func TestConservationAndCapacity(t *testing.T) {
	cfg := testConfig(40, 60)
	cfg.Params.GrainCeiling = 25
	sand := New(cfg)

	for tick := 0; tick < 500; tick++ {
		before := sand.State().Total()
		sand.Step()
		st := sand.State()
		delta := st.Total() - before
		if delta < 0 || delta > 1 {
			t.Fatalf("tick %d: total changed by %d", tick, delta)
		}
		if st.Pool.Len() > sand.Capacity() || st.Pool.Len() > MaxGrains {
			t.Fatalf("tick %d: %d grains in flight, capacity %d", tick, st.Pool.Len(), sand.Capacity())
		}
		if st.InAir != st.Pool.Len() {
			t.Fatalf("tick %d: inAir=%d but pool holds %d", tick, st.InAir, st.Pool.Len())
		}
	}
	if _, inBeach := sand.Counts(); inBeach == 0 {
		t.Fatal("expected grains to settle within 500 ticks")
	}
}

func TestCapacityFollowsRamp(t *testing.T) {
	cfg := testConfig(64, 40)
	cfg.Params.RampTicks = 120
	cfg.Params.RampCurve = "linear"
	sand := New(cfg)

	if sand.Capacity() != 0 {
		t.Fatalf("capacity at tick 0 = %d, want 0", sand.Capacity())
	}
	for tick := 0; tick < 200; tick++ {
		sand.Step()
		if n := sand.State().Pool.Len(); n > sand.Capacity() {
			t.Fatalf("tick %d: %d grains in flight exceed capacity %d", tick, n, sand.Capacity())
		}
	}
	if sand.Capacity() != MaxGrains {
		t.Fatalf("capacity after ramp = %d, want %d", sand.Capacity(), MaxGrains)
	}
}

func TestStickyAltitudeMonotone(t *testing.T) {
	sand := New(testConfig(24, 50))
	prev := slices.Clone(sand.Altitudes())
	for tick := 0; tick < 600; tick++ {
		sand.Step()
		cur := sand.Altitudes()
		for col := range cur {
			if cur[col] > prev[col] {
				t.Fatalf("tick %d: altitude[%d] rose from %d to %d", tick, col, prev[col], cur[col])
			}
		}
		copy(prev, cur)
	}
}

func TestSpillConservesVolume(t *testing.T) {
	cfg := testConfig(16, 60)
	cfg.Params.Sticky = false
	sand := New(cfg)
	st := sand.State()
	for tick := 0; tick < 400; tick++ {
		before := st.Heights.Filled()
		settledBefore := st.InBeach
		sand.Step()
		if got, want := st.Heights.Filled()-before, st.InBeach-settledBefore; got != want {
			t.Fatalf("tick %d: filled cells grew by %d for %d settles", tick, got, want)
		}
	}
}

func scriptedInput(tick int) Input {
	in := Input{PointerX: (tick * 7) % 48, PointerY: 10, PointerIn: true}
	switch {
	case tick%97 == 0:
		in.ToggleJitter = true
	case tick%53 == 0:
		in.ToggleSticky = true
	case tick%41 == 0:
		in.ToggleGuided = true
	}
	if tick > 100 && tick < 110 {
		in.PaintHeld = true
	}
	return in
}

func TestDeterministicGivenSeed(t *testing.T) {
	run := func() *Sand {
		sand := New(testConfig(48, 40))
		for tick := 0; tick < 400; tick++ {
			sand.SetInput(scriptedInput(tick))
			sand.Step()
		}
		return sand
	}
	a, b := run(), run()
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("beach surfaces diverged")
	}
	if !slices.Equal(a.Altitudes(), b.Altitudes()) {
		t.Fatal("height fields diverged")
	}
	if !slices.Equal(a.Colliders(), b.Colliders()) {
		t.Fatal("collider masks diverged")
	}
}

func TestCeilingClampRaisesFlash(t *testing.T) {
	sand := New(testConfig(10, 10))
	sand.SetInput(Input{CeilingUp: true})
	sand.Step()
	if got := sand.Params().GrainCeiling; got != MaxGrains {
		t.Fatalf("ceiling = %d, want %d", got, MaxGrains)
	}
	if !sand.TakeFlash() {
		t.Fatal("clamping the ceiling should raise the flash flag")
	}
	if sand.TakeFlash() {
		t.Fatal("flash flag must be one-shot")
	}
	if !sand.CeilingVisible() {
		t.Fatal("ceiling should be shown after a change")
	}

	sand.SetInput(Input{CeilingDown: true})
	sand.Step()
	if got := sand.Params().GrainCeiling; got != MaxGrains-CeilingStep {
		t.Fatalf("ceiling = %d, want %d", got, MaxGrains-CeilingStep)
	}
	if sand.TakeFlash() {
		t.Fatal("an in-range change must not flash")
	}

	sand.SetCeiling(-40)
	if sand.Params().GrainCeiling != 1 || !sand.TakeFlash() {
		t.Fatal("ceiling below 1 should clamp to 1 and flash")
	}
}

func TestPauseStopsAdvance(t *testing.T) {
	sand := New(testConfig(20, 20))
	for i := 0; i < 5; i++ {
		sand.Step()
	}
	snapshot := slices.Clone(sand.Cells())
	inAir, inBeach := sand.Counts()

	sand.SetInput(Input{TogglePause: true})
	sand.Step()
	for i := 0; i < 30; i++ {
		sand.Step()
	}
	a, b := sand.Counts()
	if a != inAir || b != inBeach || !slices.Equal(snapshot, sand.Cells()) {
		t.Fatal("paused field should not change")
	}
}

func TestRestartResetsField(t *testing.T) {
	sand := New(testConfig(20, 20))
	for i := 0; i < 100; i++ {
		sand.Step()
	}
	sand.SetInput(Input{Restart: true})
	sand.Step()
	st := sand.State()
	if st.Total() != 0 || st.Pool.Len() != 0 {
		t.Fatal("restart should clear every grain")
	}
	for col, a := range sand.Altitudes() {
		if a != st.H {
			t.Fatalf("altitude[%d] = %d after restart", col, a)
		}
	}
	for _, b := range st.Busy {
		if b {
			t.Fatal("restart should clear occupancy")
		}
	}
}

func TestRegisteredPresets(t *testing.T) {
	sim, err := core.New("canola-spill", map[string]string{"w": "32", "h": "24"})
	if err != nil {
		t.Fatal(err)
	}
	sand, ok := sim.(*Sand)
	if !ok {
		t.Fatalf("unexpected sim type %T", sim)
	}
	if sand.Params().Sticky {
		t.Fatal("spill preset should disable sticky")
	}
	if got := sand.Size(); got.W != 32 || got.H != 24 {
		t.Fatalf("size = %+v, want 32x24", got)
	}
	if _, err := core.New("nope", nil); err == nil {
		t.Fatal("expected an error for an unknown sim")
	}
}

func TestNewPreset(t *testing.T) {
	s, err := NewPreset("canola-reaction", testConfig(16, 12), solidSampler(5))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "canola-reaction" || s.Params().Model != ModelReaction {
		t.Fatalf("preset = %s/%s", s.Name(), s.Params().Model)
	}
	if _, err := NewPreset("canola-lava", testConfig(16, 12), nil); err == nil {
		t.Fatal("expected an error for an unknown preset")
	}
}

func TestPanelSettersClampLikeKeyboard(t *testing.T) {
	sand := New(testConfig(10, 10))
	if !sand.SetIntParameter("ceiling", MaxGrains+CeilingStep) {
		t.Fatal("ceiling should be settable")
	}
	if sand.Params().GrainCeiling != MaxGrains || !sand.TakeFlash() {
		t.Fatal("a panel ceiling past the pool should clamp and flash")
	}
	sand.SetIntParameter("ceiling", 120)
	if sand.TakeFlash() {
		t.Fatal("an in-range panel change must not flash")
	}

	tests := []struct{ in, want int }{{-3, 0}, {7, 7}, {99, maxPanelSpread}}
	for _, tc := range tests {
		sand.SetIntParameter("spread", tc.in)
		if got := sand.Params().Spread; got != tc.want {
			t.Fatalf("spread(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
	if sand.SetIntParameter("width", 5) {
		t.Fatal("unknown keys should be rejected")
	}
}
