package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const chimeRate = beep.SampleRate(44100)

// chime plays a short tone when the grain ceiling is clamped. A nil chime is
// silent.
type chime struct{}

func newChime() (*chime, error) {
	if err := speaker.Init(chimeRate, chimeRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &chime{}, nil
}

func (c *chime) Play() {
	if c == nil {
		return
	}
	sine, err := generators.SineTone(chimeRate, 880)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(chimeRate.N(80*time.Millisecond), sine))
}

func (c *chime) Close() {
	if c == nil {
		return
	}
	speaker.Close()
}
