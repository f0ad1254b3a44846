package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/eugenenazirov/layered-settings/internal/settings"
)

// DefaultPrefix is the environment prefix used when a profile declares none.
const DefaultPrefix = "MYAPP_"

// Profile is an immutable bundle of everything needed to resolve and bind one
// settings object. Files are listed in ascending priority.
type Profile struct {
	Name       string
	Prefix     string
	Files      []string
	Schema     settings.Schema
	AllowExtra bool
}

// Validate checks that the profile can be used for resolution and binding.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProfile)
	}
	if len(p.Schema) == 0 {
		return fmt.Errorf("%w: profile %q has no schema", ErrInvalidProfile, p.Name)
	}
	if err := p.Schema.Check(); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return nil
}

func (p Profile) clone() Profile {
	p.Files = slices.Clone(p.Files)
	p.Schema = slices.Clone(p.Schema)
	for i := range p.Schema {
		p.Schema[i].Members = slices.Clone(p.Schema[i].Members)
	}
	return p
}

// normalize fills the default prefix and uppercases it.
func (p Profile) normalize() Profile {
	if p.Prefix == "" {
		p.Prefix = DefaultPrefix
	}
	p.Prefix = strings.ToUpper(p.Prefix)
	return p
}
