// Package packet builds IPv4 datagrams byte for byte, checksum included.
package packet

import (
	"encoding/binary"
	"fmt"
	"net"
	"net/netip"
	"slices"
	"strings"

	"github.com/gopacket/gopacket/layers"
)

const (
	Version = 4

	// MinHeaderWords is the header length without options, in 32-bit words.
	MinHeaderWords = 5
	// MaxHeaderWords is the largest value the 4-bit IHL field can carry.
	MaxHeaderWords = 15
	MaxTotalLength = 0xffff

	minHeaderLen = MinHeaderWords * 4
)

// Header is an IPv4 header. Options are stored already padded to a multiple
// of four bytes.
type Header struct {
	Version        uint8
	IHL            uint8
	TOS            uint8
	TotalLength    uint16
	ID             uint16
	Flags          Flags
	FragmentOffset uint16
	TTL            uint8
	Protocol       Protocol
	Checksum       uint16
	Src            netip.Addr
	Dst            netip.Addr
	Options        []byte
}

// Datagram is a header followed by its payload.
type Datagram struct {
	Header
	Payload []byte
}

// Len is the header length in bytes.
func (h *Header) Len() int {
	return int(h.IHL) * 4
}

// DiffServ is the upper six bits of the type-of-service byte.
func (h *Header) DiffServ() uint8 {
	return h.TOS >> 2
}

// ECN is the lower two bits of the type-of-service byte.
func (h *Header) ECN() uint8 {
	return h.TOS & 0x3
}

// marshal writes the header into b, which must hold h.Len() bytes.
func (h *Header) marshal(b []byte) {
	b[0] = h.Version<<4 | h.IHL
	b[1] = h.TOS
	binary.BigEndian.PutUint16(b[2:4], h.TotalLength)
	binary.BigEndian.PutUint16(b[4:6], h.ID)
	binary.BigEndian.PutUint16(b[6:8], uint16(h.Flags&0x7)<<13|h.FragmentOffset&0x1fff)
	b[8] = h.TTL
	b[9] = uint8(h.Protocol)
	binary.BigEndian.PutUint16(b[10:12], h.Checksum)
	src, dst := h.Src.As4(), h.Dst.As4()
	copy(b[12:16], src[:])
	copy(b[16:20], dst[:])
	copy(b[minHeaderLen:], h.Options)
}

// Marshal returns the header bytes as currently set, checksum included.
func (h *Header) Marshal() []byte {
	b := make([]byte, h.Len())
	h.marshal(b)
	return b
}

// Marshal returns the wire form of the datagram.
func (d *Datagram) Marshal() []byte {
	b := make([]byte, d.Len()+len(d.Payload))
	d.marshal(b)
	copy(b[d.Len():], d.Payload)
	return b
}

// Layer converts the header to a gopacket layer for dumping. Options are
// left out because they are kept as raw bytes rather than parsed TLVs.
func (h *Header) Layer() *layers.IPv4 {
	return &layers.IPv4{
		Version:    h.Version,
		IHL:        h.IHL,
		TOS:        h.TOS,
		Length:     h.TotalLength,
		Id:         h.ID,
		Flags:      layers.IPv4Flag(h.Flags),
		FragOffset: h.FragmentOffset,
		TTL:        h.TTL,
		Protocol:   layers.IPProtocol(h.Protocol),
		Checksum:   h.Checksum,
		SrcIP:      net.IP(h.Src.AsSlice()),
		DstIP:      net.IP(h.Dst.AsSlice()),
	}
}

// Describe renders every header field, one per line.
func (h *Header) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version (4 bits): %d\n", h.Version)
	fmt.Fprintf(&sb, "Header Length (4 bits): %d words = %d bytes\n", h.IHL, h.Len())
	fmt.Fprintf(&sb, "Type of Service (8 bits): %d\n", h.TOS)
	fmt.Fprintf(&sb, "   DiffServ (6 bits): %d\n", h.DiffServ())
	fmt.Fprintf(&sb, "   ECN (2 bits): %d\n", h.ECN())
	fmt.Fprintf(&sb, "Total Length (16 bits): %d bytes\n", h.TotalLength)
	fmt.Fprintf(&sb, "Identification (16 bits): %d\n", h.ID)
	fmt.Fprintf(&sb, "Flags (3 bits): %s (Reserved: %d, DF: %d, MF: %d)\n",
		h.Flags, h.Flags>>2&1, h.Flags>>1&1, h.Flags&1)
	fmt.Fprintf(&sb, "Fragment Offset (13 bits): %d\n", h.FragmentOffset)
	fmt.Fprintf(&sb, "Time To Live (8 bits): %d\n", h.TTL)
	fmt.Fprintf(&sb, "Protocol (8 bits): %d (%s)\n", uint8(h.Protocol), h.Protocol)
	fmt.Fprintf(&sb, "Header Checksum (16 bits): 0x%04x\n", h.Checksum)
	fmt.Fprintf(&sb, "Source Address (32 bits): %s\n", h.Src)
	fmt.Fprintf(&sb, "Destination Address (32 bits): %s\n", h.Dst)
	if len(h.Options) > 0 {
		fmt.Fprintf(&sb, "Options: %x (%d bytes, padded to 32-bit boundary)\n", h.Options, len(h.Options))
	} else {
		sb.WriteString("Options: none\n")
	}
	return sb.String()
}

// Decode parses a datagram produced by Encode. The header checksum must
// verify and the total length must fit in b; bytes past the total length
// are ignored.
func Decode(b []byte) (*Datagram, error) {
	if len(b) < minHeaderLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedHeader, len(b))
	}

	h := Header{
		Version: b[0] >> 4,
		IHL:     b[0] & 0x0f,
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: version %d", ErrMalformedHeader, h.Version)
	}
	if h.IHL < MinHeaderWords || h.Len() > len(b) {
		return nil, fmt.Errorf("%w: header length %d words", ErrMalformedHeader, h.IHL)
	}

	h.TOS = b[1]
	h.TotalLength = binary.BigEndian.Uint16(b[2:4])
	if int(h.TotalLength) < h.Len() || int(h.TotalLength) > len(b) {
		return nil, fmt.Errorf("%w: total length %d", ErrMalformedHeader, h.TotalLength)
	}
	if !Verify(b[:h.Len()]) {
		return nil, ErrChecksumMismatch
	}

	h.ID = binary.BigEndian.Uint16(b[4:6])
	ff := binary.BigEndian.Uint16(b[6:8])
	h.Flags = Flags(ff >> 13)
	h.FragmentOffset = ff & 0x1fff
	h.TTL = b[8]
	h.Protocol = Protocol(b[9])
	h.Checksum = binary.BigEndian.Uint16(b[10:12])
	h.Src = netip.AddrFrom4([4]byte(b[12:16]))
	h.Dst = netip.AddrFrom4([4]byte(b[16:20]))
	if h.Len() > minHeaderLen {
		h.Options = slices.Clone(b[minHeaderLen:h.Len()])
	}

	return &Datagram{
		Header:  h,
		Payload: slices.Clone(b[h.Len():h.TotalLength]),
	}, nil
}
