package apacai

import (
	"errors"
	"fmt"
)

var (
	// ErrAttributeMissing is returned when reading a key the object does not hold.
	ErrAttributeMissing = errors.New("attribute missing")

	// ErrEmptyString is returned when assigning "" through the validated write path.
	// Empty strings are interpreted as nil in requests, use Unset or nil instead.
	ErrEmptyString = errors.New("cannot set an empty string")

	// ErrDeleteUnsupported is returned by Delete, entries cannot be removed through the item path.
	ErrDeleteUnsupported = errors.New("delete is not supported")

	// ErrInvalidResponseMS is returned when a response latency is not an integer.
	ErrInvalidResponseMS = errors.New("invalid response_ms")

	// ErrInvalidSnapshot is returned when a durable snapshot cannot be decoded.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrNotMapping is returned when an object is refreshed or constructed from a value
	// that is not a mapping.
	ErrNotMapping = errors.New("expected a mapping")

	// ErrUnknownKind is returned when a snapshot names a kind that is not registered.
	ErrUnknownKind = errors.New("unknown object kind")
)

// KeyError ties an error to the key it was raised for.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	if errors.Is(e.Err, ErrEmptyString) {
		return fmt.Sprintf("you cannot set %s to an empty string, we interpret empty strings as nil in requests; set %s to nil or unset it instead", e.Key, e.Key)
	}
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}
