package packet

import "errors"

var (
	ErrUnknownProtocol  = errors.New("unknown protocol")
	ErrInvalidTTL       = errors.New("ttl must be between 1 and 255")
	ErrHeaderTooLong    = errors.New("header exceeds 15 words")
	ErrPayloadTooLarge  = errors.New("datagram exceeds 65535 bytes")
	ErrInvalidAddress   = errors.New("address is not IPv4")
	ErrMalformedHeader  = errors.New("malformed IPv4 header")
	ErrChecksumMismatch = errors.New("header checksum mismatch")
)
