package core

import (
	"errors"
)

var (
	ErrNotInitialized     = errors.New("subsystem not initialized")
	ErrAlreadyInitialized = errors.New("subsystem already initialized")
	ErrInvalidPreset      = errors.New("invalid bubble preset")
	ErrUnknownPreset      = errors.New("unknown bubble preset")
	ErrUnknownNoise       = errors.New("unknown noise kind")
	ErrInvalidConfig      = errors.New("invalid configuration")
)
