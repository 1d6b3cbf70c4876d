package guard

import "errors"

var (
	ErrGuardNotFound     = errors.New("guard not found")
	ErrUnknownBiometric  = errors.New("no guard registered for this biometric id")
	ErrEmailExists       = errors.New("email already registered")
	ErrBiometricIDExists = errors.New("biometric id already registered")
)
