package auth

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/saturnines/graphql-client/pkg/errors"
)

// Registry maps auth scheme names to header value prefixes
type Registry struct {
	schemes map[string]string
	mutex   sync.RWMutex
}

// NewRegistry creates a registry holding a copy of schemes
func NewRegistry(schemes map[string]string) *Registry {
	registry := &Registry{
		schemes: make(map[string]string, len(schemes)),
	}

	for name, prefix := range schemes {
		registry.Register(name, prefix)
	}
	return registry
}

// Register adds or replaces a scheme
func (r *Registry) Register(name, prefix string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.schemes[name] = prefix
}

// Prefix returns the prefix for a scheme, or ErrConfiguration if it is unknown
func (r *Registry) Prefix(name string) (string, error) {
	r.mutex.RLock()
	prefix, exists := r.schemes[name]
	r.mutex.RUnlock()

	if !exists {
		return "", errors.WrapError(
			fmt.Errorf("unsupported auth scheme: %q (known: %s)", name, strings.Join(r.Names(), ", ")),
			errors.ErrConfiguration,
			"invalid graphql client auth scheme",
		)
	}

	return prefix, nil
}

// Names returns the registered scheme names, sorted
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
