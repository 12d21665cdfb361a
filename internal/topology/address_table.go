package topology

import (
	"fmt"
	"iter"
	"net/netip"
	"slices"
	"strings"
)

// AddressTable maps device IDs to their addresses in allocation order.
type AddressTable struct {
	order  []string
	addrs  map[string]netip.Addr
	owners map[netip.Addr]string
}

// AddressEntry is one row of an AddressTable.
type AddressEntry struct {
	Device  string
	Address netip.Addr
}

func newAddressTable() *AddressTable {
	return &AddressTable{
		addrs:  map[string]netip.Addr{},
		owners: map[netip.Addr]string{},
	}
}

func (t *AddressTable) assign(id string, addr netip.Addr) error {
	if owner, taken := t.owners[addr]; taken {
		return fmt.Errorf("%w: address %s already assigned to %s", ErrInvalidTopologyRequest, addr, owner)
	}

	t.order = append(t.order, id)
	t.addrs[id] = addr
	t.owners[addr] = id
	return nil
}

func (t *AddressTable) Lookup(id string) (netip.Addr, bool) {
	addr, ok := t.addrs[id]
	return addr, ok
}

// Owner returns the device an address was assigned to.
func (t *AddressTable) Owner(addr netip.Addr) (string, bool) {
	id, ok := t.owners[addr]
	return id, ok
}

func (t *AddressTable) Len() int {
	return len(t.order)
}

// All iterates device/address pairs in allocation order.
func (t *AddressTable) All() iter.Seq2[string, netip.Addr] {
	return func(yield func(string, netip.Addr) bool) {
		for _, id := range t.order {
			if !yield(id, t.addrs[id]) {
				return
			}
		}
	}
}

// Entries returns the table rows in allocation order.
func (t *AddressTable) Entries() []AddressEntry {
	out := make([]AddressEntry, 0, len(t.order))
	for id, addr := range t.All() {
		out = append(out, AddressEntry{Device: id, Address: addr})
	}
	return out
}

// Sorted returns the table rows ordered by device ID.
func (t *AddressTable) Sorted() []AddressEntry {
	out := t.Entries()
	slices.SortFunc(out, func(a, b AddressEntry) int {
		return strings.Compare(a.Device, b.Device)
	})
	return out
}
