package settings

import (
	"fmt"
	"sort"
	"strings"
)

// View is the merged key/value input to Bind. Keys are uppercased.
type View interface {
	Lookup(key string) (string, bool)
	Keys() []string
}

// ExtraView is implemented by views that also carry keys eligible only as
// extras. Such keys never satisfy a schema field.
type ExtraView interface {
	View
	ExtraKeys() []string
	LookupExtra(key string) (string, bool)
}

// MapView adapts a plain map to View. Keys must already be uppercased.
type MapView map[string]string

// Lookup returns the value stored under key.
func (m MapView) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the map keys, sorted.
func (m MapView) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bind coerces and validates view against schema in schema order and returns
// the first failure as a *FieldError. When allowExtra is true, view keys not
// consumed by the schema are kept on the result as untyped extras; otherwise
// they are dropped. Keys offered through ExtraView are added after that and
// never replace a field or an extra already taken from the view.
func Bind(view View, schema Schema, allowExtra bool) (*Settings, error) {
	if err := schema.Check(); err != nil {
		return nil, err
	}

	s := &Settings{
		fields: make([]string, 0, len(schema)),
		kinds:  make(map[string]Kind, len(schema)),
		values: make(map[string]any, len(schema)),
		extras: make(map[string]string),
	}
	consumed := make(map[string]struct{}, len(schema))

	for _, spec := range schema {
		value, err := bindField(view, spec)
		if err != nil {
			return nil, err
		}
		consumed[spec.Key()] = struct{}{}

		s.fields = append(s.fields, spec.Name)
		s.kinds[spec.Name] = spec.Kind
		s.values[spec.Name] = value
	}

	if allowExtra {
		for _, key := range view.Keys() {
			if _, ok := consumed[key]; ok {
				continue
			}
			raw, _ := view.Lookup(key)
			s.extras[key] = raw
		}

		if ev, ok := view.(ExtraView); ok {
			for _, key := range ev.ExtraKeys() {
				if _, ok := consumed[key]; ok {
					continue
				}
				if _, ok := s.extras[key]; ok {
					continue
				}
				raw, _ := ev.LookupExtra(key)
				s.extras[key] = raw
			}
		}
	}

	return s, nil
}

func bindField(view View, spec FieldSpec) (any, error) {
	raw, present := view.Lookup(spec.Key())
	if present && spec.BlankIsAbsent && strings.TrimSpace(raw) == "" {
		present = false
	}

	var (
		value any
		err   error
	)
	switch {
	case present:
		value, err = spec.coerce(raw)
	case spec.Required():
		err = &FieldError{Field: spec.Name, Err: ErrMissingField}
	default:
		value, err = spec.defaultValue()
	}
	if err != nil {
		return nil, err
	}

	if spec.Validate == nil {
		return value, nil
	}

	validated, err := spec.Validate(value)
	if err != nil {
		return nil, &FieldError{Field: spec.Name, Err: ErrValidation, Cause: err}
	}
	if !spec.accepts(validated) {
		return nil, &FieldError{
			Field: spec.Name,
			Err:   ErrValidation,
			Cause: fmt.Errorf("validator returned %T for %s field", validated, spec.Kind),
		}
	}
	return validated, nil
}
