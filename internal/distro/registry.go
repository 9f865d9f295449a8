package distro

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultDistro is used when neither the command line nor the settings name
// a distribution.
const DefaultDistro = Alpine

var (
	mu        sync.RWMutex
	providers = make(map[ID]Provider)
)

// Register adds p to the set of known distributions. Providers register
// themselves from init.
func Register(p Provider) {
	mu.Lock()
	providers[p.ID()] = p
	mu.Unlock()
}

// Get returns the provider for id.
func Get(id ID) (Provider, error) {
	mu.RLock()
	p, ok := providers[id]
	mu.RUnlock()
	if !ok {
		return nil, &ErrUnknownDistro{ID: id}
	}
	return p, nil
}

// GetDefault returns the provider for DefaultDistro.
func GetDefault() (Provider, error) {
	return Get(DefaultDistro)
}

// DefaultID returns DefaultDistro.
func DefaultID() ID {
	return DefaultDistro
}

// IsRegistered reports whether a provider exists for id.
func IsRegistered(id ID) bool {
	_, err := Get(id)
	return err == nil
}

// ParseID resolves user input such as " Ubuntu" to a registered ID.
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if !IsRegistered(id) {
		return "", &ErrUnknownDistro{ID: ID(s)}
	}
	return id, nil
}

// List returns the registered IDs in menu order.
func List() []ID {
	all := ListProviders()
	ids := make([]ID, len(all))
	for i, p := range all {
		ids[i] = p.ID()
	}
	return ids
}

// ListProviders returns the registered providers in menu order: the default
// distribution first, the rest by ID.
func ListProviders() []Provider {
	mu.RLock()
	all := make([]Provider, 0, len(providers))
	for _, p := range providers {
		all = append(all, p)
	}
	mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].ID(), all[j].ID()
		if (a == DefaultDistro) != (b == DefaultDistro) {
			return a == DefaultDistro
		}
		return a < b
	})
	return all
}

// ErrUnknownDistro is returned for a distribution nobody registered.
type ErrUnknownDistro struct {
	ID ID
}

func (e *ErrUnknownDistro) Error() string {
	names := make([]string, 0, 2)
	for _, id := range List() {
		names = append(names, string(id))
	}
	return fmt.Sprintf("unknown distro %q (available: %s)", e.ID, strings.Join(names, ", "))
}
