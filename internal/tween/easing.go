package tween

import "math"

// Curve maps normalized progress t in [0, 1] to eased progress. Most curves
// stay within [0, 1]; back and elastic curves overshoot briefly.
type Curve func(t float64) float64

// Curve names accepted by CurveByName.
const (
	Linear         = "linear"
	EaseInQuad     = "easeInQuad"
	EaseOutQuad    = "easeOutQuad"
	EaseInCubic    = "easeInCubic"
	EaseOutCubic   = "easeOutCubic"
	EaseInOutCubic = "easeInOutCubic"
	EaseInOutQuart = "easeInOutQuart"
	EaseInExpo     = "easeInExpo"
	EaseOutExpo    = "easeOutExpo"
	EaseOutBack    = "easeOutBack"
	EaseOutElastic = "easeOutElastic"
)

var curves = map[string]Curve{
	Linear:         linear,
	EaseInQuad:     inQuad,
	EaseOutQuad:    outQuad,
	EaseInCubic:    inCubic,
	EaseOutCubic:   outCubic,
	EaseInOutCubic: inOutCubic,
	EaseInOutQuart: inOutQuart,
	EaseInExpo:     inExpo,
	EaseOutExpo:    outExpo,
	EaseOutBack:    outBack,
	EaseOutElastic: outElastic,
}

// CurveByName looks up a curve. Unknown names report false.
func CurveByName(name string) (Curve, bool) {
	c, ok := curves[name]
	return c, ok
}

func linear(t float64) float64 { return t }

func inQuad(t float64) float64 { return t * t }

func outQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

func inCubic(t float64) float64 { return t * t * t }

func outCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func inOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func inOutQuart(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

func inExpo(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

func outExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func outBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

func outElastic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const c4 = 2 * math.Pi / 3
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}
