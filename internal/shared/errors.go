package shared

import "errors"

// Error kinds shared by every domain. Domain errors wrap one of these so callers
// (HTTP boundary, queue consumers) can branch with errors.Is without knowing the domain.
var (
	// ErrNullValue - a required field was missing or empty
	ErrNullValue = errors.New("required value is missing")

	// ErrInvalidValue - a field is present but outside its allowed bounds
	ErrInvalidValue = errors.New("value is invalid")

	// ErrAlreadyExists - a uniqueness constraint was violated
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrNotFound - lookup by id failed
	ErrNotFound = errors.New("entity not found")

	// ErrAttachedEntity - deletion refused because other entities are still attached
	ErrAttachedEntity = errors.New("entity has attached entities")
)

// Kind returns the shared error kind wrapped by err, or nil if err carries none.
func Kind(err error) error {
	for _, kind := range []error{ErrNullValue, ErrInvalidValue, ErrAlreadyExists, ErrNotFound, ErrAttachedEntity} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NewError creates a domain error with its own message that still matches kind
// under errors.Is.
func NewError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}
