package domain

import "errors"

// The only two error kinds the API surfaces: every failure a caller can act on
// is either an attempt to create an entity that already exists or a reference
// to an entity that does not. Layers wrap them with fmt.Errorf("...: %w", err).
var (
	ErrConflict = errors.New("already exists")
	ErrNotFound = errors.New("not found")
)
