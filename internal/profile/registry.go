package profile

import (
	"fmt"
	"strings"
	"sync"
)

// Registry keeps profiles in declaration order and guards access with a RWMutex.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	profiles map[string]Profile
}

// NewRegistry registers profiles in the given order.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	r := &Registry{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates and stores a copy of p.
func (r *Registry) Register(p Profile) error {
	p = p.normalize()
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProfile, p.Name)
	}
	for _, name := range r.order {
		other := r.profiles[name]
		if other.Prefix != p.Prefix && (strings.HasPrefix(other.Prefix, p.Prefix) || strings.HasPrefix(p.Prefix, other.Prefix)) {
			return fmt.Errorf("%w: %q (%s) overlaps %q (%s)", ErrPrefixCollision, p.Name, p.Prefix, other.Name, other.Prefix)
		}
	}

	r.profiles[p.Name] = p.clone()
	r.order = append(r.order, p.Name)
	return nil
}

// Get returns a copy of the named profile.
func (r *Registry) Get(name string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p.clone(), nil
}

// List returns copies of all profiles in declaration order.
func (r *Registry) List() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Profile, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.profiles[name].clone())
	}
	return out
}

// Names returns the registered profile names in declaration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}
