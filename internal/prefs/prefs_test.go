package prefs

import (
	"errors"
	"testing"

	"canola/internal/sims/canola"
)

type memStore struct {
	data    map[string][]byte
	failing bool
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (s *memStore) key(object, property string) string { return object + "/" + property }

func (s *memStore) ObjectPropExists(object, property string) bool {
	_, ok := s.data[s.key(object, property)]
	return ok
}

func (s *memStore) LoadObjectProp(object, property string) ([]byte, error) {
	if s.failing {
		return nil, errors.New("disk on fire")
	}
	return s.data[s.key(object, property)], nil
}

func (s *memStore) SaveObjectProp(object, property string, data []byte) error {
	s.data[s.key(object, property)] = append([]byte(nil), data...)
	return nil
}

func defaults() Preferences {
	return FromParams(canola.DefaultConfig().Params)
}

func TestRoundTripThroughStore(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, defaults())
	if err := m.Load(); err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if m.Get() != defaults() {
		t.Fatal("empty store should yield defaults")
	}
	if m.Saved() != nil {
		t.Fatal("nothing was saved yet")
	}

	p := m.Get()
	p.Sticky = false
	p.GrainCeiling = 120
	m.Set(p)
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewManager(store, defaults())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.Get(); got.Sticky || got.GrainCeiling != 120 {
		t.Fatalf("reloaded preferences = %+v", got)
	}
	if saved := reloaded.Saved(); saved == nil || saved.GrainCeiling != 120 {
		t.Fatalf("Saved() = %+v", saved)
	}
}

func TestLoadFailuresFallBackToDefaults(t *testing.T) {
	store := newMemStore()
	store.data["prefs/field"] = []byte("sticky: [not a bool")
	m := NewManager(store, defaults())
	if err := m.Load(); err == nil {
		t.Fatal("expected an unmarshal error")
	}
	if m.Get() != defaults() {
		t.Fatal("bad data should leave defaults in place")
	}

	store.failing = true
	if err := m.Load(); err == nil {
		t.Fatal("expected a load error")
	}
}

func TestMemoryOnlyManager(t *testing.T) {
	m := NewManager(nil, defaults())
	if m.Persistent() {
		t.Fatal("nil store should not be persistent")
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestApplyKeepsEngineSettings(t *testing.T) {
	base := canola.DefaultConfig().Params
	base.Model = canola.ModelReaction
	pr := Preferences{Sticky: false, Jitter: false, Guided: true, Autofill: false, Spread: 2, GrainCeiling: 50}
	got := pr.Apply(base)
	if got.Model != canola.ModelReaction || got.FallSpeed != base.FallSpeed {
		t.Fatal("Apply must not touch engine settings")
	}
	if got.Sticky || got.Jitter || !got.Guided || got.Autofill || got.Spread != 2 || got.GrainCeiling != 50 {
		t.Fatalf("Apply result = %+v", got)
	}
}

func TestApplyClampsCeiling(t *testing.T) {
	base := canola.DefaultConfig().Params
	tests := []struct {
		name    string
		ceiling int
		want    int
	}{
		{"above pool", 500, canola.MaxGrains},
		{"negative", -4, 1},
		{"unset", 0, base.GrainCeiling},
		{"in range", 42, 42},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Preferences{GrainCeiling: tc.ceiling}.Apply(base)
			if got.GrainCeiling != tc.want {
				t.Fatalf("ceiling = %d, want %d", got.GrainCeiling, tc.want)
			}
		})
	}
}
