package canola

// Model decides where a grain moves during one tick and whether it comes to
// rest. When settled is true, (x, y) is the resting cell.
type Model interface {
	Advance(s *State, g *Grain, sticky bool) (x, y int, settled bool)
}

// DirectModel compares the grain's row with the column altitude. Landing
// grains either stick in place or spill sideways toward lower neighbours.
type DirectModel struct{}

// Advance implements Model.
func (DirectModel) Advance(s *State, g *Grain, sticky bool) (int, int, bool) {
	g.Y += g.Speed
	h := s.Heights
	if g.Y < float64(h.Altitude(g.X)) {
		return 0, 0, false
	}

	restX := g.X
	restY := h.Altitude(restX) - 1
	if !sticky {
		right := false
		for restX < s.W-1 && h.Altitude(restX+1) > restY+1 {
			right = true
			s.setBusy(restX, false)
			restX++
			restY = h.Altitude(restX) - 1
		}
		if !right {
			for restX > 0 && h.Altitude(restX-1) > restY+1 {
				s.setBusy(restX, false)
				restX--
				restY = h.Altitude(restX) - 1
			}
		}
	}
	if restY < 0 {
		restY = 0
	}
	return restX, restY, true
}

// ReactionModel steers grains by the decision code of the cell beneath them.
// DEFLECT_RIGHT and DEFLECT_LEFT shift the grain one column as it drops,
// STABLE stops it in place. A grain also stops on the sand surface, at the
// bottom edge, or when the deflection target is blocked or off the grid.
type ReactionModel struct{}

// Advance implements Model.
func (ReactionModel) Advance(s *State, g *Grain, sticky bool) (int, int, bool) {
	x, y := g.X, int(g.Y)
	nextY := y + 1
	alt := s.Heights.Altitude(x)
	if nextY >= alt || nextY >= s.H {
		restY := alt - 1
		if y < restY {
			restY = y
		}
		if restY < 0 {
			restY = 0
		}
		return x, restY, true
	}

	nextX := x
	switch CodeAt(s, x, nextY) {
	case CodeStable:
		return x, y, true
	case CodeDeflectRight:
		nextX = x + 1
	case CodeDeflectLeft:
		nextX = x - 1
	}
	if nextX != x {
		if nextX < 0 || nextX >= s.W || CodeAt(s, nextX, nextY) != CodeFlat || nextY >= s.Heights.Altitude(nextX) {
			return x, y, true
		}
	}
	g.X = nextX
	g.Y = float64(nextY)
	return 0, 0, false
}

// Simulator advances every in-flight grain once per tick.
type Simulator struct {
	Model     Model
	Recompute Recomputer
}

// Step advances all occupied slots in ascending slot order and returns the
// number of grains that settled.
func (sim *Simulator) Step(s *State, sticky bool) int {
	model := sim.Model
	if model == nil {
		model = DirectModel{}
	}
	settled := 0
	for i := 0; i < MaxGrains; i++ {
		g, ok := s.Pool.Get(i)
		if !ok {
			continue
		}
		x, y, done := model.Advance(s, g, sticky)
		if !done {
			continue
		}
		sim.settle(s, i, *g, x, y)
		settled++
	}
	return settled
}

func (sim *Simulator) settle(s *State, slot int, g Grain, x, y int) {
	s.PutSand(x, y, g.Color)
	if y < s.Heights.Altitude(x) {
		s.Heights.SetAltitude(x, y)
	}
	s.setBusy(g.Origin, false)
	s.setBusy(x, false)
	s.Pool.Remove(slot)
	s.InAir--
	s.InBeach++
	if sim.Recompute != nil {
		sim.Recompute.AfterSettle(s, x, y)
	}
}
