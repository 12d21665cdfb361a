package packet

import (
	"fmt"
	"net/netip"
	"slices"

	"gonetsim/internal/random"
)

const DefaultTTL = 64

// Options carries the per-datagram header settings. The zero value is not
// encodable: start from DefaultOptions and override fields.
type Options struct {
	Protocol  Protocol
	TOS       uint8
	TTL       uint8
	Flags     Flags
	IPOptions []byte
}

// DefaultOptions is a TCP datagram with TTL 64 and DF set.
func DefaultOptions() Options {
	return Options{
		Protocol: DefaultProtocol,
		TTL:      DefaultTTL,
		Flags:    FlagDontFragment,
	}
}

// Encoder builds IPv4 datagrams. The identification field of every
// datagram is drawn from its random source.
type Encoder struct {
	rnd random.Source
}

func NewEncoder(rnd random.Source) *Encoder {
	return &Encoder{rnd: rnd}
}

// Build assembles a datagram with its checksum filled in. Nothing is
// returned on error.
func (e *Encoder) Build(src, dst netip.Addr, payload []byte, opts Options) (*Datagram, error) {
	if !src.Is4() {
		return nil, fmt.Errorf("%w: source %s", ErrInvalidAddress, src)
	}
	if !dst.Is4() {
		return nil, fmt.Errorf("%w: destination %s", ErrInvalidAddress, dst)
	}

	if _, err := ProtocolNumber(int(opts.Protocol)); err != nil {
		return nil, err
	}
	if opts.TTL == 0 {
		return nil, ErrInvalidTTL
	}

	ipOpts := pad(opts.IPOptions)
	words := MinHeaderWords + len(ipOpts)/4
	if words > MaxHeaderWords {
		return nil, fmt.Errorf("%w: %d words with %d option bytes", ErrHeaderTooLong, words, len(opts.IPOptions))
	}
	total := words*4 + len(payload)
	if total > MaxTotalLength {
		return nil, fmt.Errorf("%w: total length %d", ErrPayloadTooLarge, total)
	}

	d := &Datagram{
		Header: Header{
			Version:     Version,
			IHL:         uint8(words),
			TOS:         opts.TOS,
			TotalLength: uint16(total),
			ID:          uint16(e.rnd.Uint32() >> 16),
			Flags:       opts.Flags & 0x7,
			TTL:         opts.TTL,
			Protocol:    opts.Protocol,
			Src:         src,
			Dst:         dst,
			Options:     ipOpts,
		},
		Payload: slices.Clone(payload),
	}
	d.Checksum = Checksum(d.Header.Marshal())
	return d, nil
}

// Encode returns the wire bytes of a datagram: header, options, payload.
func (e *Encoder) Encode(src, dst netip.Addr, payload []byte, opts Options) ([]byte, error) {
	d, err := e.Build(src, dst, payload, opts)
	if err != nil {
		return nil, err
	}
	return d.Marshal(), nil
}

// pad right-fills options with zeros up to a 32-bit boundary.
func pad(opts []byte) []byte {
	if len(opts) == 0 {
		return nil
	}
	n := (len(opts) + 3) &^ 3
	out := make([]byte, n)
	copy(out, opts)
	return out
}
