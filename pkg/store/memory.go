package store

import (
	"sync"

	"github.com/almas-industries/techplan/pkg/core/model"
)

// Memory is the in-memory appointment store. It keeps records in the order they
// were supplied and hands out copies only.
type Memory struct {
	mu      sync.RWMutex
	dataset *Dataset
	techs   map[string]model.Technician
}

// NewMemory creates a store holding a copy of ds
func NewMemory(ds *Dataset) *Memory {
	m := &Memory{}
	m.Replace(ds)
	return m
}

// Replace swaps the whole content of the store
func (m *Memory) Replace(ds *Dataset) {
	cloned := ds.Clone()
	techs := make(map[string]model.Technician, len(cloned.Technicians))
	for _, t := range cloned.Technicians {
		techs[t.ID] = t
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.dataset = cloned
	m.techs = techs
}

// Snapshot returns a copy of the full dataset
func (m *Memory) Snapshot() *Dataset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dataset.Clone()
}

// Technician looks up a technician by id
func (m *Memory) Technician(id string) (model.Technician, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.techs[id]
	return t, ok
}
