package numtheory

import (
	"fmt"
	"sort"
	"sync"
)

// extraFinders holds strategies contributed by optional build-tagged files.
var extraFinders = map[string]OrderFinder{}

// Factory is a registry of named order-finding strategies.
type Factory interface {
	// Get returns the finder registered under name.
	Get(name string) (OrderFinder, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns a copy of the registry.
	GetAll() map[string]OrderFinder
	// Register adds or replaces a finder.
	Register(name string, finder OrderFinder)
}

// DefaultFactory is the standard, concurrency-safe Factory implementation.
type DefaultFactory struct {
	mu      sync.RWMutex
	finders map[string]OrderFinder
}

// NewDefaultFactory returns a factory pre-populated with the built-in
// strategies: "naive", "bigint", "carmichael", plus "gmp" when built with
// the gmp tag.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{finders: map[string]OrderFinder{
		"naive":      RepeatedMultiplication{},
		"bigint":     BigRepeatedMultiplication{},
		"carmichael": CarmichaelReduction{},
	}}
	for name, finder := range extraFinders {
		f.finders[name] = finder
	}
	return f
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns a process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

// Get implements Factory.
func (f *DefaultFactory) Get(name string) (OrderFinder, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	finder, ok := f.finders[name]
	if !ok {
		return nil, fmt.Errorf("unknown order finder %q (available: %v)", name, f.listLocked())
	}
	return finder, nil
}

// List implements Factory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listLocked()
}

func (f *DefaultFactory) listLocked() []string {
	names := make([]string, 0, len(f.finders))
	for name := range f.finders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll implements Factory.
func (f *DefaultFactory) GetAll() map[string]OrderFinder {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]OrderFinder, len(f.finders))
	for name, finder := range f.finders {
		all[name] = finder
	}
	return all
}

// Register implements Factory.
func (f *DefaultFactory) Register(name string, finder OrderFinder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finders[name] = finder
}
