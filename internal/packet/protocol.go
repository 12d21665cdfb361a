package packet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gopacket/gopacket/layers"
)

// Protocol is the IPv4 protocol number of the carried payload.
type Protocol uint8

const (
	ProtocolICMP = Protocol(layers.IPProtocolICMPv4)
	ProtocolTCP  = Protocol(layers.IPProtocolTCP)
	ProtocolUDP  = Protocol(layers.IPProtocolUDP)

	// DefaultProtocol is what callers fall back to when ParseProtocol fails.
	DefaultProtocol = ProtocolTCP
)

// Name lookup order matters for prefix matching ("TCP/IP" resolves to TCP).
var protocolNames = []struct {
	name  string
	proto Protocol
}{
	{"TCP", ProtocolTCP},
	{"UDP", ProtocolUDP},
	{"ICMP", ProtocolICMP},
}

func (p Protocol) String() string {
	for _, n := range protocolNames {
		if n.proto == p {
			return n.name
		}
	}
	return layers.IPProtocol(p).String()
}

// ParseProtocol resolves a protocol name or number. Names are matched
// case-insensitively, either exactly or as a prefix of the input. Numbers
// are accepted only for the protocols named above.
func ParseProtocol(s string) (Protocol, error) {
	p := strings.ToUpper(strings.TrimSpace(s))
	for _, n := range protocolNames {
		if p == n.name {
			return n.proto, nil
		}
	}
	for _, n := range protocolNames {
		if strings.HasPrefix(p, n.name) {
			return n.proto, nil
		}
	}

	num, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProtocol, s)
	}
	return ProtocolNumber(num)
}

// ProtocolNumber validates a numeric protocol.
func ProtocolNumber(n int) (Protocol, error) {
	for _, p := range protocolNames {
		if int(p.proto) == n {
			return p.proto, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownProtocol, n)
}

// Flags holds the 3-bit IPv4 flags field: reserved, DF, MF.
type Flags uint8

const (
	FlagMoreFragments = Flags(layers.IPv4MoreFragments)
	FlagDontFragment  = Flags(layers.IPv4DontFragment)
	FlagReserved      = Flags(layers.IPv4EvilBit)
)

// ParseFlags maps "DF" and "MF", in any case, to their bit. Anything else
// yields no flags.
func ParseFlags(s string) Flags {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DF":
		return FlagDontFragment
	case "MF":
		return FlagMoreFragments
	}
	return 0
}

func (f Flags) String() string {
	return fmt.Sprintf("%03b", uint8(f)&0x7)
}
