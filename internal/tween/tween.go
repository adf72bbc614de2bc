// Package tween provides tick-driven timed values: a scalar that eases from a
// start value to a target over a number of ticks, and a boolean that flips
// once a duration has elapsed. Both are queried, never awaited.
package tween

// Clock reports the number of ticks elapsed since some fixed origin.
type Clock interface {
	Ticks() int64
}

// Value eases from a start value to a target over a fixed number of ticks.
type Value struct {
	clock    Clock
	from     float64
	to       float64
	duration int64
	delay    int64
	curve    Curve
	start    int64
}

// Option customizes a Value.
type Option func(*Value)

// From sets the start value. The default is 0.
func From(v float64) Option {
	return func(tv *Value) { tv.from = v }
}

// Delay holds the value at its start for the given number of ticks.
func Delay(ticks int64) Option {
	return func(tv *Value) {
		if ticks > 0 {
			tv.delay = ticks
		}
	}
}

// New starts a Value heading for target over duration ticks using the named
// curve. Unknown curve names fall back to linear.
func New(clock Clock, target float64, duration int64, curve string, opts ...Option) *Value {
	c, ok := CurveByName(curve)
	if !ok {
		c = linear
	}
	v := &Value{clock: clock, to: target, duration: duration, curve: c}
	for _, opt := range opts {
		opt(v)
	}
	v.Reset()
	return v
}

// Reset restarts the transition from the current tick.
func (v *Value) Reset() {
	v.start = v.clock.Ticks()
}

// Progress returns the linear progress in [0, 1].
func (v *Value) Progress() float64 {
	elapsed := v.clock.Ticks() - v.start - v.delay
	if elapsed < 0 {
		return 0
	}
	if v.duration <= 0 || elapsed >= v.duration {
		return 1
	}
	return float64(elapsed) / float64(v.duration)
}

// Value returns the current interpolated scalar.
func (v *Value) Value() float64 {
	p := v.Progress()
	if p >= 1 {
		return v.to
	}
	return v.from + (v.to-v.from)*v.curve(p)
}

// Done reports whether the transition has reached its target.
func (v *Value) Done() bool { return v.Progress() >= 1 }

// Target returns the value the transition ends at.
func (v *Value) Target() float64 { return v.to }

// Bool is false until its duration has elapsed since the last Reset.
type Bool struct {
	clock    Clock
	duration int64
	start    int64
}

// NewBool starts a Bool that elapses after duration ticks.
func NewBool(clock Clock, duration int64) *Bool {
	b := &Bool{clock: clock, duration: duration}
	b.Reset()
	return b
}

// Reset restarts the countdown.
func (b *Bool) Reset() { b.start = b.clock.Ticks() }

// Elapsed reports whether the duration has passed.
func (b *Bool) Elapsed() bool {
	return b.clock.Ticks()-b.start >= b.duration
}
