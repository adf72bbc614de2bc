// Package prefs persists the user's field toggles between sessions. Only
// preferences are stored; the beach itself is never saved.
package prefs

import (
	"fmt"
	"log"

	"canola/internal/sims/canola"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefsObject   = "prefs"
	prefsProperty = "field"
)

// Preferences are the toggles a user can change while the field runs.
type Preferences struct {
	Sticky       bool `yaml:"sticky"`
	Jitter       bool `yaml:"jitter"`
	Guided       bool `yaml:"guided"`
	Autofill     bool `yaml:"autofill"`
	Spread       int  `yaml:"spread"`
	GrainCeiling int  `yaml:"grainCeiling"`
}

// FromParams extracts the persisted subset of p.
func FromParams(p canola.Params) Preferences {
	return Preferences{
		Sticky:       p.Sticky,
		Jitter:       p.Jitter,
		Guided:       p.Guided,
		Autofill:     p.Autofill,
		Spread:       p.Spread,
		GrainCeiling: p.GrainCeiling,
	}
}

// Apply overlays the preferences onto p. A zero ceiling keeps p's value;
// any other ceiling is clamped to the pool size.
func (pr Preferences) Apply(p canola.Params) canola.Params {
	p.Sticky = pr.Sticky
	p.Jitter = pr.Jitter
	p.Guided = pr.Guided
	p.Autofill = pr.Autofill
	if pr.Spread >= 0 {
		p.Spread = pr.Spread
	}
	if pr.GrainCeiling != 0 {
		p.GrainCeiling = canola.ClampCeiling(pr.GrainCeiling)
	}
	return p
}

// Store is the key/value backend preferences are written to. *gdata.Manager
// satisfies it.
type Store interface {
	ObjectPropExists(object, property string) bool
	LoadObjectProp(object, property string) ([]byte, error)
	SaveObjectProp(object, property string, data []byte) error
}

// Manager loads and saves Preferences. A Manager without a store keeps
// preferences in memory only.
type Manager struct {
	store    Store
	defaults Preferences
	current  Preferences
	loaded   bool
}

// Open creates a Manager backed by the per-user gdata directory of appName.
// When the store cannot be opened the returned Manager still works in memory
// and the error explains why.
func Open(appName string, defaults Preferences) (*Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewManager(nil, defaults), fmt.Errorf("failed to open preference store: %w", err)
	}
	return NewManager(m, defaults), nil
}

// NewManager wraps store. A nil store selects memory-only mode.
func NewManager(store Store, defaults Preferences) *Manager {
	return &Manager{store: store, defaults: defaults, current: defaults}
}

// Load reads saved preferences, falling back to the defaults when nothing has
// been saved or the data is unreadable.
func (m *Manager) Load() error {
	m.current = m.defaults
	m.loaded = false
	if m.store == nil || !m.store.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := m.store.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	loaded := m.defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	m.current = loaded
	m.loaded = true
	log.Printf("[prefs] loaded preferences")
	return nil
}

// Save writes the current preferences. It is a no-op in memory-only mode.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.current)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := m.store.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Get returns the current preferences.
func (m *Manager) Get() Preferences { return m.current }

// Saved returns the preferences read by the last Load, or nil when nothing
// was read.
func (m *Manager) Saved() *Preferences {
	if !m.loaded {
		return nil
	}
	p := m.current
	return &p
}

// Set replaces the current preferences in memory.
func (m *Manager) Set(p Preferences) { m.current = p }

// Persistent reports whether the manager has a backing store.
func (m *Manager) Persistent() bool { return m.store != nil }
