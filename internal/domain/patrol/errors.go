package patrol

import "errors"

var (
	ErrPatrolNotFound    = errors.New("patrol not found")
	ErrInvalidRouteOrder = errors.New("route point orders must be unique and 1..N")
)
