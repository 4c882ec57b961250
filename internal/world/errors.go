package world

import "errors"

// Configuration errors. Returned by NewGrid; not recoverable.
var ErrInvalidGrid = errors.New("invalid grid parameters")

// Contract violations. Correct callers never see these.
var (
	ErrInvalidKind        = errors.New("invalid entity kind")
	ErrInvalidK           = errors.New("k must be a positive integer")
	ErrInvalidRadius      = errors.New("actor radius must be positive")
	ErrInvalidZone        = errors.New("invalid zone index range")
	ErrZoneOutsideGrid    = errors.New("zone is not inside the grid")
	ErrInvalidContainment = errors.New("invalid containment mode")
	ErrDetached           = errors.New("entity is not attached to a grid")
	ErrAttached           = errors.New("entity is already attached to a grid")
)
