package engine

import (
	"maps"
	"sync"

	"github.com/ariel-frischer/errbell/internal/detect"
)

// Workspace holds the latest diagnostics per resource as reported by a host
// that pushes changes instead of answering queries.
type Workspace struct {
	mu        sync.RWMutex
	resources detect.Diagnostics
}

// NewWorkspace creates an empty Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{resources: make(detect.Diagnostics)}
}

// Update replaces the diagnostics of every resource in d. A resource with an
// empty list is removed.
func (w *Workspace) Update(d detect.Diagnostics) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for uri, diags := range d {
		if len(diags) == 0 {
			delete(w.resources, uri)
			continue
		}
		w.resources[uri] = append([]detect.Diagnostic(nil), diags...)
	}
}

// Diagnostics returns a copy of the whole workspace.
func (w *Workspace) Diagnostics() detect.Diagnostics {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return maps.Clone(w.resources)
}
