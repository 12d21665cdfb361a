package addressing

import "errors"

var (
	ErrAddressSpaceExhausted = errors.New("address space exhausted")
	ErrInvalidPrefix         = errors.New("prefix must be an IPv4 network with at least two usable hosts")
)
