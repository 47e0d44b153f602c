package layer

import (
	"fmt"
	"sort"
	"sync"
)

// Manager owns a set of layers and produces their merged view. The
// merge result is cached and recomputed only after a layer changes.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer
	merged map[string]any
	dirty  bool
}

// NewManager creates an empty layer manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// Add registers a layer. Layer names must be unique.
func (m *Manager) Add(l *Layer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.layers {
		if existing.Name == l.Name {
			return fmt.Errorf("layer %q already registered", l.Name)
		}
	}

	m.layers = append(m.layers, l)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
	m.dirty = true
	return nil
}

// Remove drops a layer by name. Removing an unknown layer is a no-op.
func (m *Manager) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.layers {
		if l.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			m.dirty = true
			return
		}
	}
}

// Get returns a layer by name.
func (m *Manager) Get(name string) (*Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Replace swaps the data of an existing layer and invalidates the
// merge cache.
func (m *Manager) Replace(name string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.layers {
		if l.Name == name {
			if data == nil {
				data = make(map[string]any)
			}
			l.Data = data
			m.dirty = true
			return nil
		}
	}
	return fmt.Errorf("layer %q not registered", name)
}

// Set writes a value into a named layer by dot-separated path.
func (m *Manager) Set(name, path string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.layers {
		if l.Name == name {
			l.Set(path, value)
			m.dirty = true
			return nil
		}
	}
	return fmt.Errorf("layer %q not registered", name)
}

// Merged returns the merged view of all layers, lowest priority first.
// The returned map is shared; callers must not mutate it.
func (m *Manager) Merged() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty {
		merged := make(map[string]any)
		for _, l := range m.layers {
			merged = DeepMerge(merged, l.Data)
		}
		m.merged = merged
		m.dirty = false
	}
	return m.merged
}

// Lookup retrieves a value from the merged view by dot-separated path.
func (m *Manager) Lookup(path string) (any, bool) {
	return GetByPath(m.Merged(), path)
}

// Names returns the registered layer names in priority order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.layers))
	for i, l := range m.layers {
		names[i] = l.Name
	}
	return names
}
