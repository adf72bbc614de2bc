package canola

// Grain is a single falling particle.
type Grain struct {
	X      int
	Y      float64
	Color  uint8
	Speed  float64
	Origin int
}

// Pool is a fixed-capacity slot array of in-flight grains. Slots are reused
// and always filled lowest-index first.
type Pool struct {
	slots [MaxGrains]Grain
	live  [MaxGrains]bool
	n     int
}

// NewPool returns an empty pool.
func NewPool() *Pool { return &Pool{} }

// Len returns the number of occupied slots.
func (p *Pool) Len() int { return p.n }

// Insert stores g in the first empty slot provided fewer than limit slots are
// occupied. It returns the slot index, or -1 when the pool is at capacity.
func (p *Pool) Insert(g Grain, limit int) int {
	if limit > MaxGrains {
		limit = MaxGrains
	}
	if p.n >= limit {
		return -1
	}
	for i := range p.live {
		if p.live[i] {
			continue
		}
		p.slots[i] = g
		p.live[i] = true
		p.n++
		return i
	}
	return -1
}

// Get returns the grain in slot i.
func (p *Pool) Get(i int) (*Grain, bool) {
	if i < 0 || i >= MaxGrains || !p.live[i] {
		return nil, false
	}
	return &p.slots[i], true
}

// Remove clears slot i.
func (p *Pool) Remove(i int) {
	if i < 0 || i >= MaxGrains || !p.live[i] {
		return
	}
	p.live[i] = false
	p.slots[i] = Grain{}
	p.n--
}

// Clear empties every slot.
func (p *Pool) Clear() {
	for i := range p.live {
		p.live[i] = false
		p.slots[i] = Grain{}
	}
	p.n = 0
}

// Each calls fn for every occupied slot in ascending slot order.
func (p *Pool) Each(fn func(i int, g *Grain)) {
	for i := range p.live {
		if p.live[i] {
			fn(i, &p.slots[i])
		}
	}
}
