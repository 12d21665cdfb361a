// Package addressing hands out sequential IPv4 addresses from a base network.
package addressing

import (
	"fmt"
	"net"
	"net/netip"

	"go4.org/netipx"
)

// DefaultPrefix is the class-C sized pool every topology draws from unless
// configured otherwise.
var DefaultPrefix = netip.MustParsePrefix("192.168.1.0/24")

// Allocator issues host addresses in ascending order starting at the first
// address after the network address. The network and broadcast addresses are
// never issued. An Allocator is not safe for concurrent use; each build owns
// its own.
type Allocator struct {
	prefix    netip.Prefix
	broadcast netip.Addr
	next      netip.Addr
	issued    int
}

func NewAllocator(prefix netip.Prefix) (*Allocator, error) {
	if !prefix.IsValid() || !prefix.Addr().Is4() || prefix.Bits() > 30 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPrefix, prefix)
	}

	prefix = prefix.Masked()
	return &Allocator{
		prefix:    prefix,
		broadcast: netipx.PrefixLastIP(prefix),
		next:      prefix.Addr().Next(),
	}, nil
}

// Allocate returns the next unused address.
func (a *Allocator) Allocate() (netip.Addr, error) {
	if a.next == a.broadcast {
		return netip.Addr{}, fmt.Errorf("%w: all %d usable addresses of %s issued",
			ErrAddressSpaceExhausted, a.Usable(), a.prefix)
	}

	addr := a.next
	a.next = a.next.Next()
	a.issued++
	return addr, nil
}

func (a *Allocator) Prefix() netip.Prefix {
	return a.prefix
}

func (a *Allocator) Issued() int {
	return a.issued
}

// Usable is the number of addresses the pool can issue in total.
func (a *Allocator) Usable() int {
	return 1<<(32-a.prefix.Bits()) - 2
}

func (a *Allocator) Network() netip.Addr {
	return a.prefix.Addr()
}

func (a *Allocator) Broadcast() netip.Addr {
	return a.broadcast
}

// Mask returns the prefix mask in dotted-quad form.
func (a *Allocator) Mask() string {
	return net.IP(netipx.PrefixIPNet(a.prefix).Mask).String()
}
