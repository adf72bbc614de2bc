package canola

type cell struct{ x, y int }

// Solver classifies collider cells into decision codes. Single edits spread
// through an explicit worklist guarded by a per-edit visited stamp, so the
// work of one edit never exceeds the grid size.
type Solver struct {
	w, h    int
	queue   []cell
	visited []uint32
	gen     uint32
}

// NewSolver allocates a solver for a w×h grid.
func NewSolver(w, h int) *Solver {
	return &Solver{w: w, h: h, visited: make([]uint32, w*h)}
}

// CodeAt returns the decision code at (x, y). Cells outside the grid read as
// FLAT.
func CodeAt(s *State, x, y int) uint8 {
	return s.Colliders.At(x, y)
}

// classify evaluates one cell and writes its new code. It reports whether the
// cell turned into a fresh DEFLECT_RIGHT, which is the only outcome that
// spreads to neighbours during a single edit.
func (sv *Solver) classify(s *State, x, y int, single bool) bool {
	if !s.Colliders.In(x, y) {
		return false
	}
	code := s.Colliders.At(x, y)
	if code == CodeFlat {
		if !s.HasSand(x, y) {
			return false
		}
		code = CodeUnknown
	}
	if !single && code != CodeUnknown {
		return false
	}

	switch {
	case CodeAt(s, x+1, y) == CodeFlat:
		s.Colliders.Set(x, y, CodeDeflectRight)
		return single && code == CodeUnknown
	case CodeAt(s, x-1, y) == CodeFlat:
		s.Colliders.Set(x, y, CodeDeflectLeft)
	default:
		s.Colliders.Set(x, y, CodeStable)
	}
	return false
}

// Edit re-evaluates the given cells and whatever their fresh classifications
// spread to.
func (sv *Solver) Edit(s *State, cells ...cell) {
	sv.gen++
	if sv.gen == 0 {
		for i := range sv.visited {
			sv.visited[i] = 0
		}
		sv.gen = 1
	}
	sv.queue = sv.queue[:0]
	for _, c := range cells {
		sv.push(c.x, c.y)
	}
	for i := 0; i < len(sv.queue); i++ {
		c := sv.queue[i]
		if !sv.classify(s, c.x, c.y, true) {
			continue
		}
		sv.push(c.x-1, c.y-1)
		sv.push(c.x-1, c.y)
		sv.push(c.x+1, c.y-1)
		sv.push(c.x, c.y-1)
		sv.push(c.x+1, c.y)
	}
}

func (sv *Solver) push(x, y int) {
	if x < 0 || x >= sv.w || y < 0 || y >= sv.h {
		return
	}
	idx := y*sv.w + x
	if sv.visited[idx] == sv.gen {
		return
	}
	sv.visited[idx] = sv.gen
	sv.queue = append(sv.queue, cell{x, y})
}

// RecomputeRegion sweeps the inclusive rectangle row-major once, classifying
// every UNKNOWN cell without spreading.
func (sv *Solver) RecomputeRegion(s *State, x0, y0, x1, y1 int) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= s.W {
		x1 = s.W - 1
	}
	if y1 >= s.H {
		y1 = s.H - 1
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			sv.classify(s, x, y, false)
		}
	}
}

// RecomputeAll sweeps the whole grid.
func (sv *Solver) RecomputeAll(s *State) {
	sv.RecomputeRegion(s, 0, 0, s.W-1, s.H-1)
}

// Recomputer refreshes decision codes after a grain settles at (x, y).
type Recomputer interface {
	AfterSettle(s *State, x, y int)
}

// FullRecompute sweeps the entire grid on every settle.
type FullRecompute struct{ Solver *Solver }

// AfterSettle implements Recomputer.
func (r FullRecompute) AfterSettle(s *State, x, y int) { r.Solver.RecomputeAll(s) }

// LocalRecompute only sweeps the 3×3 neighbourhood of the settle point.
type LocalRecompute struct{ Solver *Solver }

// AfterSettle implements Recomputer.
func (r LocalRecompute) AfterSettle(s *State, x, y int) {
	r.Solver.RecomputeRegion(s, x-1, y-1, x+1, y+1)
}

// NoRecompute leaves the collider mask untouched.
type NoRecompute struct{}

// AfterSettle implements Recomputer.
func (NoRecompute) AfterSettle(*State, int, int) {}

// PaintObstacle stamps a disc of UNKNOWN cells and classifies the newly
// covered ones.
func (sv *Solver) PaintObstacle(s *State, cx, cy, radius int) {
	var fresh []cell
	s.Colliders.Disc(cx, cy, radius, func(x, y int) {
		if s.Colliders.At(x, y) != CodeFlat {
			return
		}
		s.Colliders.Set(x, y, CodeUnknown)
		fresh = append(fresh, cell{x, y})
	})
	if len(fresh) > 0 {
		sv.Edit(s, fresh...)
	}
}

// EraseObstacle clears a disc back to FLAT and re-evaluates coded cells that
// border the cleared area.
func (sv *Solver) EraseObstacle(s *State, cx, cy, radius int) {
	cleared := false
	s.Colliders.Disc(cx, cy, radius, func(x, y int) {
		if s.Colliders.At(x, y) == CodeFlat {
			return
		}
		s.Colliders.Set(x, y, CodeFlat)
		cleared = true
	})
	if !cleared {
		return
	}
	var border []cell
	s.Colliders.Disc(cx, cy, radius+1, func(x, y int) {
		if s.Colliders.At(x, y) != CodeFlat {
			border = append(border, cell{x, y})
		}
	})
	if len(border) > 0 {
		sv.Edit(s, border...)
	}
}
