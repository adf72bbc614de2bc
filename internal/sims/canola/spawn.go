package canola

// Rand is the subset of a random source the spawner draws from.
type Rand interface {
	IntN(n int) int
}

// Sampler picks the palette index of a new grain from a reference image.
type Sampler interface {
	ColorAt(x, y int) uint8
}

// SpawnRequest carries the per-tick spawn policy and pointer position.
type SpawnRequest struct {
	Autofill bool
	Guided   bool
	Jitter   bool
	Spread   int
	PointerX int
	PointerY int
	Speed    float64
}

// TrySpawn admits one grain into the pool if a free column with headroom can
// be found and fewer than capacity grains are in flight. Every failure is a
// silent no-op.
func TrySpawn(s *State, rng Rand, sampler Sampler, req SpawnRequest, capacity int) bool {
	row := req.PointerY
	if req.Autofill {
		row = 0
	}

	col, ok := pickColumn(s, rng, req)
	if !ok {
		return false
	}
	alt := s.Heights.Altitude(col)
	if alt < row {
		return false
	}

	colorRow := alt - 1
	if colorRow < 0 {
		colorRow = 0
	}
	var color uint8
	if sampler != nil {
		color = sampler.ColorAt(col, colorRow)
	}
	speed := req.Speed
	if speed <= 0 {
		speed = 1
	}
	g := Grain{X: col, Y: float64(row), Color: color, Speed: speed, Origin: col}
	if s.Pool.Insert(g, capacity) < 0 {
		return false
	}
	s.setBusy(col, true)
	s.InAir++
	return true
}

func pickColumn(s *State, rng Rand, req SpawnRequest) (int, bool) {
	spread := req.Spread
	if spread < 0 {
		spread = 0
	}
	for attempt := 0; attempt < SpawnAttempts; attempt++ {
		col := req.PointerX
		if !req.Guided {
			col = rng.IntN(s.W)
		}
		if req.Jitter {
			col += rng.IntN(spread+1) - spread/2
		}
		if col < 0 || col >= s.W {
			continue
		}
		if s.busy(col) {
			continue
		}
		return col, true
	}
	return 0, false
}
