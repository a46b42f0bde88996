package ai

import "errors"

var (
	// ErrInvalidDevice is returned for a device name other than cpu, gpu or auto.
	ErrInvalidDevice = errors.New("invalid device")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("ai config")
)
