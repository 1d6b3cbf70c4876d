package checkpoint

import "errors"

var (
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrTagUIDExists       = errors.New("nfc tag uid already registered")
)
