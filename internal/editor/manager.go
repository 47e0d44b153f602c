package editor

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Manager tracks open buffers and the active one.
type Manager struct {
	mu      sync.RWMutex
	buffers map[string]*Buffer // display name -> buffer
	active  *Buffer
	order   []string // open order, for listings
	counter int      // for unique scratch names
}

// NewManager creates an empty buffer manager.
func NewManager() *Manager {
	return &Manager{
		buffers: make(map[string]*Buffer),
	}
}

// Open reads a file into a buffer and makes it active.
// Returns the existing buffer if the file is already open.
func (m *Manager) Open(path string) (*Buffer, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := filepath.Base(absPath)
	if buf, exists := m.buffers[name]; exists && buf.Path == absPath {
		m.active = buf
		return buf, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	buf := NewBuffer(absPath, content)
	// Disambiguate if another open file shares the base name.
	if _, taken := m.buffers[buf.Name]; taken {
		buf.Name = buf.Name + " (" + strconv.Itoa(m.counter+1) + ")"
		m.counter++
	}
	m.buffers[buf.Name] = buf
	m.order = append(m.order, buf.Name)
	m.active = buf
	return buf, nil
}

// CreateScratch creates a new scratch buffer and makes it active.
func (m *Manager) CreateScratch() *Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++
	buf := NewScratchBuffer()
	if m.counter > 1 {
		buf.Name = "Untitled-" + strconv.Itoa(m.counter)
	}
	m.buffers[buf.Name] = buf
	m.order = append(m.order, buf.Name)
	m.active = buf
	return buf
}

// Active returns the currently active buffer, or nil.
func (m *Manager) Active() *Buffer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Lookup returns an open buffer by display name.
func (m *Manager) Lookup(name string) (*Buffer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.buffers[name]
	return buf, ok
}

// IsValid reports whether name refers to an open buffer.
func (m *Manager) IsValid(name string) bool {
	_, ok := m.Lookup(name)
	return ok
}

// Count returns the number of open buffers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.buffers)
}

// Names returns the display names of open buffers in open order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}
