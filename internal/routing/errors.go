package routing

import "errors"

var (
	ErrUnknownDevice = errors.New("unknown device")
	ErrNotAHost      = errors.New("device is not a host")
)
