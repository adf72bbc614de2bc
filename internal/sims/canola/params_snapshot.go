package canola

import (
	"strconv"

	"canola/internal/core"
)

// Parameters implements core.ParameterProvider.
func (s *Sand) Parameters() core.ParameterSnapshot {
	p := s.params
	inAir, inBeach := s.Counts()
	groups := []core.ParameterGroup{
		{
			Name: "Field",
			Params: []core.Parameter{
				intParam("w", "Width", s.state.W),
				intParam("h", "Height", s.state.H),
				int64Param("seed", "Seed", s.cfg.Seed),
				stringParam("model", "Settle model", p.Model),
				stringParam("recompute", "Collider recompute", p.Recompute),
			},
		},
		{
			Name: "Spawning",
			Params: []core.Parameter{
				boolParam("sticky", "Sticky", p.Sticky),
				boolParam("jitter", "Jitter", p.Jitter),
				intParam("spread", "Spread", p.Spread),
				boolParam("guided", "Guided", p.Guided),
				boolParam("autofill", "Autofill", p.Autofill),
				intParam("ceiling", "Grain ceiling", p.GrainCeiling),
				intParam("capacity", "Capacity now", s.Capacity()),
			},
		},
		{
			Name: "Grains",
			Params: []core.Parameter{
				intParam("in_air", "In air", inAir),
				intParam("in_beach", "In beach", inBeach),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls implements core.ParameterControlsProvider.
func (s *Sand) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "ceiling", Label: "Grain ceiling", Type: core.ParamTypeInt, Step: CeilingStep, Min: 1, Max: MaxGrains, HasMin: true, HasMax: true},
		{Key: "spread", Label: "Spread", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: maxPanelSpread, HasMin: true, HasMax: true},
		{Key: "sticky", Label: "Sticky", Type: core.ParamTypeBool},
		{Key: "jitter", Label: "Jitter", Type: core.ParamTypeBool},
		{Key: "guided", Label: "Guided", Type: core.ParamTypeBool},
		{Key: "autofill", Label: "Autofill", Type: core.ParamTypeBool},
	}
}

// maxPanelSpread bounds the spread reachable from the parameter panel.
const maxPanelSpread = 32

// SetIntParameter implements core.IntParameterSetter. Values are taken
// unclamped: a ceiling outside [1, MaxGrains] clamps and raises the flash
// just like the keyboard path.
func (s *Sand) SetIntParameter(key string, value int) bool {
	switch key {
	case "ceiling":
		s.SetCeiling(value)
	case "spread":
		s.params.Spread = min(max(value, 0), maxPanelSpread)
	default:
		return false
	}
	return true
}

// SetBoolParameter implements core.BoolParameterSetter.
func (s *Sand) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "sticky":
		s.params.Sticky = value
	case "jitter":
		s.params.Jitter = value
	case "guided":
		s.params.Guided = value
	case "autofill":
		s.params.Autofill = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
