package transport

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds a transport without arguments.
type Constructor func() Transport

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{
		"null": func() Transport { return NewNull() },
	}
)

// Register makes a transport constructor available by name, so configuration
// can refer to a transport type as a plain string.
// It panics if ctor is nil or the name is already registered.
func Register(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if ctor == nil {
		panic("transport: Register constructor is nil")
	}
	if _, dup := registry[name]; dup {
		panic("transport: Register called twice for " + name)
	}
	registry[name] = ctor
}

// Lookup builds the transport registered under name.
func Lookup(name string) (Transport, error) {
	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, name)
	}
	return ctor(), nil
}

// Registered returns the sorted list of registered transport names.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
