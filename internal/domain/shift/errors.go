package shift

import "errors"

var (
	ErrShiftNotFound = errors.New("shift not found")
	ErrNameExists    = errors.New("shift name already exists")
)
