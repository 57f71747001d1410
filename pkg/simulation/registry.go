package simulation

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/picogrid/mdp-sim/pkg/mdp"
)

// ErrUnknownFlag is returned when a name does not correspond to any step kind
var ErrUnknownFlag = errors.New("flag does not correspond to any simulation step")

// PathSource supplies the MDP file path configured under a flag name
type PathSource interface {
	Path(name string) (string, bool)
}

// PathMap is a PathSource backed by a plain map
type PathMap map[string]string

// Path implements PathSource
func (m PathMap) Path(name string) (string, bool) {
	p, ok := m[name]
	return p, ok && p != ""
}

// Registry maps flag names to step kinds
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Kind),
	}
}

// Register routes name to kind
func (r *Registry) Register(name string, kind Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid step kind %d", int(kind))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[name]; exists {
		return fmt.Errorf("flag %s already registered", name)
	}

	r.kinds[name] = kind
	return nil
}

// Get returns the step kind registered under name
func (r *Registry) Get(name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind, exists := r.kinds[name]
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFlag, name)
	}
	return kind, nil
}

// List returns all registered names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select loads the step registered under name from the path src holds for it
func (r *Registry) Select(name string, src PathSource) (*Step, error) {
	kind, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	path, ok := src.Path(name)
	if !ok {
		return nil, fmt.Errorf("%w: no path configured for %s", mdp.ErrMissingFile, name)
	}

	return Load(kind, path)
}

// DefaultRegistry knows every step kind under both its source attribute
// and its CLI flag
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, k := range Kinds() {
		_ = r.Register(k.SourceAttr(), k)
		_ = r.Register(k.Flag(), k)
	}
	return r
}

// Select loads a step through DefaultRegistry
func Select(name string, src PathSource) (*Step, error) {
	return DefaultRegistry.Select(name, src)
}
