package settings

import (
	"maps"
	"sort"
	"strconv"

	"go.uber.org/zap/zapcore"
)

// Settings is the immutable result of a successful Bind.
type Settings struct {
	fields []string
	kinds  map[string]Kind
	values map[string]any
	extras map[string]string
}

// Fields returns schema field names in declaration order followed by extra
// keys in sorted order.
func (s *Settings) Fields() []string {
	names := make([]string, 0, len(s.fields)+len(s.extras))
	names = append(names, s.fields...)
	return append(names, s.extraKeys()...)
}

// Get returns the typed value of a schema field.
func (s *Settings) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// String returns a string field, or "" if name is not a string field.
func (s *Settings) String(name string) string {
	v, _ := s.values[name].(string)
	return v
}

// Secret returns a secret field.
func (s *Settings) Secret(name string) Secret {
	v, _ := s.values[name].(Secret)
	return v
}

// Bool returns a boolean field, or false if name is not a boolean field.
func (s *Settings) Bool(name string) bool {
	v, _ := s.values[name].(bool)
	return v
}

// Int returns an integer field, or 0 if name is not an integer field.
func (s *Settings) Int(name string) int {
	v, _ := s.values[name].(int)
	return v
}

// Enum returns the matched enum member (uppercase).
func (s *Settings) Enum(name string) string {
	if s.kinds[name] != KindEnum {
		return ""
	}
	return s.String(name)
}

// Extra returns an extra value retained because the profile allows extras.
func (s *Settings) Extra(key string) (string, bool) {
	v, ok := s.extras[key]
	return v, ok
}

// Extras returns a copy of all extra values.
func (s *Settings) Extras() map[string]string {
	return maps.Clone(s.extras)
}

// Render converts every field and extra to a string. Secret fields render as
// Redacted unless maskSecrets is false.
func (s *Settings) Render(maskSecrets bool) map[string]string {
	out := make(map[string]string, len(s.values)+len(s.extras))
	for _, name := range s.fields {
		out[name] = renderValue(s.values[name], maskSecrets)
	}
	for key, value := range s.extras {
		out[key] = value
	}
	return out
}

// MarshalLogObject emits the masked rendering in field order.
func (s *Settings) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	rendered := s.Render(true)
	for _, name := range s.Fields() {
		enc.AddString(name, rendered[name])
	}
	return nil
}

func (s *Settings) extraKeys() []string {
	keys := make([]string, 0, len(s.extras))
	for key := range s.extras {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func renderValue(value any, maskSecrets bool) string {
	switch v := value.(type) {
	case Secret:
		if maskSecrets {
			return Redacted
		}
		return v.Reveal()
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
