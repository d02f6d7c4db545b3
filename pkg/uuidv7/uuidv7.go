package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 per RFC 9562 (time-ordered, millisecond precision).
func New() (uuid.UUID, error) {
	return uuid.NewV7()
}

// NewString returns a UUIDv7 string. It falls back to a random v4 when the
// entropy source fails so callers that only need a correlation id never error.
func NewString() string {
	u, err := New()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}
