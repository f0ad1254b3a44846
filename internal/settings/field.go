package settings

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind is the target type of a field.
type Kind int

const (
	// KindString keeps the raw value as is.
	KindString Kind = iota
	// KindSecret wraps the raw value in a Secret.
	KindSecret
	// KindBool accepts true/false, 1/0, yes/no and on/off in any case.
	KindBool
	// KindInt parses a base-10 integer, optionally bounded by Min and Max.
	KindInt
	// KindEnum matches the value case-insensitively against Members.
	KindEnum
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindSecret:
		return "secret"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindEnum:
		return "enum"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Validator runs after coercion, or on the default when the field is absent.
// It receives and must return a value of the field's Go type: string, Secret,
// bool, or int (enum members are strings).
type Validator func(value any) (any, error)

// FieldSpec declares one field of a schema. Build it with the constructors
// below; the With* methods return modified copies.
type FieldSpec struct {
	Name          string
	Kind          Kind
	Default       any
	Bounded       bool
	Min           int
	Max           int
	Members       []string
	BlankIsAbsent bool
	Validate      Validator
}

// String declares a plain string field.
func String(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindString}
}

// SecretString declares a field whose value is wrapped in a Secret.
func SecretString(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindSecret}
}

// Bool declares a boolean field.
func Bool(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindBool}
}

// Int declares an integer field bounded to [lo, hi].
func Int(name string, lo, hi int) FieldSpec {
	return FieldSpec{Name: name, Kind: KindInt, Bounded: true, Min: lo, Max: hi}
}

// UnboundedInt declares an integer field without range checks.
func UnboundedInt(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindInt}
}

// Enum declares a field restricted to members; matching is case-insensitive.
func Enum(name string, members ...string) FieldSpec {
	upper := make([]string, len(members))
	for i, m := range members {
		upper[i] = strings.ToUpper(m)
	}
	return FieldSpec{Name: name, Kind: KindEnum, Members: upper}
}

// WithDefault makes the field optional.
func (f FieldSpec) WithDefault(value any) FieldSpec {
	f.Default = value
	return f
}

// WithValidator attaches a custom validator.
func (f FieldSpec) WithValidator(v Validator) FieldSpec {
	f.Validate = v
	return f
}

// BlankAsAbsent treats an empty or whitespace-only raw value as if the key
// were not set, so the default applies.
func (f FieldSpec) BlankAsAbsent() FieldSpec {
	f.BlankIsAbsent = true
	return f
}

// Key is the uppercased view key the field is read from.
func (f FieldSpec) Key() string {
	return strings.ToUpper(f.Name)
}

// Required reports whether the field has no default.
func (f FieldSpec) Required() bool {
	return f.Default == nil
}

var (
	trueValues  = []string{"true", "1", "yes", "on"}
	falseValues = []string{"false", "0", "no", "off"}
)

func (f FieldSpec) coerce(raw string) (any, error) {
	switch f.Kind {
	case KindString:
		return raw, nil
	case KindSecret:
		return NewSecret(raw), nil
	case KindBool:
		normalized := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case slices.Contains(trueValues, normalized):
			return true, nil
		case slices.Contains(falseValues, normalized):
			return false, nil
		}
		return nil, &FieldError{Field: f.Name, Raw: raw, Err: ErrInvalidBoolean}
	case KindInt:
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &FieldError{Field: f.Name, Raw: raw, Err: ErrInvalidInteger}
		}
		if fieldErr := f.checkRange(value); fieldErr != nil {
			fieldErr.Raw = raw
			return nil, fieldErr
		}
		return value, nil
	case KindEnum:
		normalized := strings.ToUpper(strings.TrimSpace(raw))
		if slices.Contains(f.Members, normalized) {
			return normalized, nil
		}
		return nil, &FieldError{Field: f.Name, Raw: raw, Allowed: slices.Clone(f.Members), Err: ErrInvalidEnum}
	}
	return nil, fmt.Errorf("%w: field %q has unknown kind %s", ErrInvalidSchema, f.Name, f.Kind)
}

func (f FieldSpec) checkRange(value int) *FieldError {
	if !f.Bounded || (value >= f.Min && value <= f.Max) {
		return nil
	}
	return &FieldError{Field: f.Name, Value: value, Min: f.Min, Max: f.Max, Err: ErrOutOfRange}
}

// defaultValue normalises Default to the field's Go type.
func (f FieldSpec) defaultValue() (any, error) {
	switch f.Kind {
	case KindString:
		if v, ok := f.Default.(string); ok {
			return v, nil
		}
	case KindSecret:
		switch v := f.Default.(type) {
		case Secret:
			return v, nil
		case string:
			return NewSecret(v), nil
		}
	case KindBool:
		if v, ok := f.Default.(bool); ok {
			return v, nil
		}
	case KindInt:
		if v, ok := f.Default.(int); ok {
			if f.checkRange(v) != nil {
				return nil, fmt.Errorf("%w: field %q default %d not in [%d, %d]", ErrInvalidSchema, f.Name, v, f.Min, f.Max)
			}
			return v, nil
		}
	case KindEnum:
		if v, ok := f.Default.(string); ok {
			upper := strings.ToUpper(v)
			if !slices.Contains(f.Members, upper) {
				return nil, fmt.Errorf("%w: field %q default %q is not a member", ErrInvalidSchema, f.Name, v)
			}
			return upper, nil
		}
	}
	return nil, fmt.Errorf("%w: field %q default has type %T, want %s", ErrInvalidSchema, f.Name, f.Default, f.Kind)
}

func (f FieldSpec) accepts(value any) bool {
	switch f.Kind {
	case KindString, KindEnum:
		_, ok := value.(string)
		return ok
	case KindSecret:
		_, ok := value.(Secret)
		return ok
	case KindBool:
		_, ok := value.(bool)
		return ok
	case KindInt:
		_, ok := value.(int)
		return ok
	}
	return false
}

// Schema is an ordered list of field declarations.
type Schema []FieldSpec

// Check verifies the schema is internally consistent: unique non-empty
// names (case-insensitive), sane bounds, enum members, and well-typed defaults.
func (s Schema) Check() error {
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: field with empty name", ErrInvalidSchema)
		}
		if _, dup := seen[f.Key()]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Key()] = struct{}{}

		if f.Kind == KindInt && f.Bounded && f.Min > f.Max {
			return fmt.Errorf("%w: field %q has min %d > max %d", ErrInvalidSchema, f.Name, f.Min, f.Max)
		}
		if f.Kind == KindEnum && len(f.Members) == 0 {
			return fmt.Errorf("%w: enum field %q has no members", ErrInvalidSchema, f.Name)
		}
		if f.Default != nil {
			if _, err := f.defaultValue(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Lookup returns the field declared under name (case-insensitive).
func (s Schema) Lookup(name string) (FieldSpec, bool) {
	key := strings.ToUpper(name)
	for _, f := range s {
		if f.Key() == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}
