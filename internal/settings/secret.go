package settings

import (
	"crypto/subtle"
	"fmt"
	"io"
	"strconv"
)

// Redacted replaces secret values in every rendering that is not an explicit reveal.
const Redacted = "**********"

// Secret holds a sensitive string. Printing, logging, or marshalling a Secret
// yields Redacted; only Reveal returns the underlying value.
type Secret struct {
	value string
}

// NewSecret wraps value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Reveal returns the underlying value.
func (s Secret) Reveal() string {
	return s.value
}

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool {
	return s.value == ""
}

// Equal compares the underlying values in constant time.
func (s Secret) Equal(other Secret) bool {
	return subtle.ConstantTimeCompare([]byte(s.value), []byte(other.value)) == 1
}

// String returns Redacted.
func (s Secret) String() string {
	return Redacted
}

// GoString returns Redacted so %#v does not print the value.
func (s Secret) GoString() string {
	return "settings.Secret(" + strconv.Quote(Redacted) + ")"
}

// Format covers every fmt verb so no format string reaches the value.
func (s Secret) Format(f fmt.State, verb rune) {
	switch {
	case verb == 'v' && f.Flag('#'):
		_, _ = io.WriteString(f, s.GoString())
	case verb == 'q':
		_, _ = io.WriteString(f, strconv.Quote(Redacted))
	default:
		_, _ = io.WriteString(f, Redacted)
	}
}

// MarshalText encodes Redacted. JSON output uses it too.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(Redacted), nil
}

// MarshalYAML encodes Redacted.
func (s Secret) MarshalYAML() (any, error) {
	return Redacted, nil
}
