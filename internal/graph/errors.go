package graph

import "errors"

var (
	// ErrDuplicateID is returned when a forest contains the same id twice.
	ErrDuplicateID = errors.New("duplicate node id")
	// ErrMissingRoot is returned when the reserved root is absent from the top level.
	ErrMissingRoot = errors.New("root node missing from top level")
	// ErrEmptyID is returned when a forest contains a node without an id.
	ErrEmptyID = errors.New("node without id")
)
