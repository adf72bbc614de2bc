package canola

import "canola/internal/core"

const (
	// MaxGrains is the hard capacity of the in-flight grain pool.
	MaxGrains = 300
	// SpawnAttempts bounds the column search of a single spawn.
	SpawnAttempts = 100
	// CeilingStep is the amount one ceiling adjustment moves the grain ceiling.
	CeilingStep = 10
)

// Decision codes stored in the collider mask.
const (
	CodeFlat         uint8 = 0
	CodeStable       uint8 = 1
	CodeDeflectRight uint8 = 2
	CodeDeflectLeft  uint8 = 3
	CodeUnknown      uint8 = 8
)

// BeachBackground is the palette index of an empty beach pixel. Grains may
// carry the same index, so emptiness is read from State.Sand, not the color.
const BeachBackground uint8 = 1

// HeightField records, per column, the row of the topmost beach pixel. A
// column with no sand reports the grid height.
type HeightField struct {
	alt []int
	h   int
}

func newHeightField(w, h int) *HeightField {
	hf := &HeightField{alt: make([]int, w), h: h}
	hf.reset()
	return hf
}

func (hf *HeightField) reset() {
	for i := range hf.alt {
		hf.alt[i] = hf.h
	}
}

// Width returns the number of columns.
func (hf *HeightField) Width() int { return len(hf.alt) }

// Altitude returns the surface row of col. Columns outside the field read as
// empty.
func (hf *HeightField) Altitude(col int) int {
	if col < 0 || col >= len(hf.alt) {
		return hf.h
	}
	return hf.alt[col]
}

// SetAltitude moves the surface of col to row. Out-of-range columns are
// ignored.
func (hf *HeightField) SetAltitude(col, row int) {
	if col < 0 || col >= len(hf.alt) {
		return
	}
	hf.alt[col] = row
}

// Values exposes the per-column altitudes.
func (hf *HeightField) Values() []int { return hf.alt }

// Filled returns the number of sand rows summed over every column.
func (hf *HeightField) Filled() int {
	total := 0
	for _, a := range hf.alt {
		total += hf.h - a
	}
	return total
}

// State is the complete mutable simulation state. It is owned by a single
// tick driver and handed by reference to the spawn, reaction and advance
// routines.
type State struct {
	W, H int

	Heights   *HeightField
	Busy      []bool
	Beach     *core.ByteGrid
	Sand      *core.ByteGrid
	Colliders *core.ByteGrid
	Pool      *Pool

	InAir   int
	InBeach int
}

// NewState allocates an empty field of the given size.
func NewState(w, h int) *State {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	s := &State{
		W:         w,
		H:         h,
		Heights:   newHeightField(w, h),
		Busy:      make([]bool, w),
		Beach:     core.NewByteGrid(w, h),
		Sand:      core.NewByteGrid(w, h),
		Colliders: core.NewByteGrid(w, h),
		Pool:      NewPool(),
	}
	s.ResetField()
	return s
}

// ResetField empties the beach, the height field and the occupancy flags and
// drops every in-flight grain. The collider mask is left alone.
func (s *State) ResetField() {
	s.Heights.reset()
	s.Beach.Fill(BeachBackground)
	s.Sand.Clear()
	for i := range s.Busy {
		s.Busy[i] = false
	}
	s.Pool.Clear()
	s.InAir = 0
	s.InBeach = 0
}

// PutSand paints a settled grain of the given color at (x, y).
func (s *State) PutSand(x, y int, color uint8) {
	s.Beach.Set(x, y, color)
	s.Sand.Set(x, y, 1)
}

// HasSand reports whether a grain has settled at (x, y).
func (s *State) HasSand(x, y int) bool { return s.Sand.At(x, y) != 0 }

// Total returns the number of grains ever admitted since the last reset.
func (s *State) Total() int { return s.InAir + s.InBeach }

func (s *State) busy(col int) bool {
	return col >= 0 && col < len(s.Busy) && s.Busy[col]
}

func (s *State) setBusy(col int, v bool) {
	if col < 0 || col >= len(s.Busy) {
		return
	}
	s.Busy[col] = v
}
