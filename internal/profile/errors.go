package profile

import "errors"

var (
	// ErrUnknownProfile is returned when a profile name is not registered.
	ErrUnknownProfile = errors.New("unknown profile")
	// ErrDuplicateProfile is returned when a profile name is registered twice.
	ErrDuplicateProfile = errors.New("profile already registered")
	// ErrPrefixCollision is returned when one prefix strictly extends another,
	// so the shorter profile would also see the longer profile's variables.
	ErrPrefixCollision = errors.New("ambiguous profile prefix")
	// ErrInvalidProfile is returned when a profile definition is incomplete.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrUnknownSchema is returned when a catalog references an unregistered schema.
	ErrUnknownSchema = errors.New("unknown schema")
)
