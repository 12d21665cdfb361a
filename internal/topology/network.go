package topology

import (
	"maps"
	"net/netip"
	"slices"
)

// Network is the immutable result of a successful build.
type Network struct {
	ID     string
	Prefix netip.Prefix

	devices       []Device
	index         map[string]int
	routers       []string
	subnets       []Subnet
	subnetIndex   map[string]int
	routerSubnets map[string][]string
	links         []Link
	graph         *Graph
	table         *AddressTable
	spec          Specification
}

// Specification summarises a network the way the address plan is reported.
type Specification struct {
	Class         string
	Network       netip.Addr
	Mask          string
	Broadcast     netip.Addr
	Routers       int
	Subnets       int
	ActiveSubnets int
	Hosts         int
	Addresses     int
	Links         int
}

// Devices returns every device in allocation order.
func (n *Network) Devices() []Device {
	return slices.Clone(n.devices)
}

func (n *Network) Device(id string) (Device, bool) {
	i, ok := n.index[id]
	if !ok {
		return Device{}, false
	}
	return n.devices[i], true
}

// DevicesByRole returns the devices of one role in allocation order.
func (n *Network) DevicesByRole(role Role) []Device {
	var out []Device
	for _, d := range n.devices {
		if d.Role == role {
			out = append(out, d)
		}
	}
	return out
}

// Routers returns router IDs in registration order.
func (n *Network) Routers() []string {
	return slices.Clone(n.routers)
}

// Subnets returns subnets in router-major assignment order.
func (n *Network) Subnets() []Subnet {
	out := make([]Subnet, len(n.subnets))
	for i, s := range n.subnets {
		s.Hosts = slices.Clone(s.Hosts)
		out[i] = s
	}
	return out
}

func (n *Network) Subnet(name string) (Subnet, bool) {
	i, ok := n.subnetIndex[name]
	if !ok {
		return Subnet{}, false
	}
	s := n.subnets[i]
	s.Hosts = slices.Clone(s.Hosts)
	return s, true
}

// RouterSubnets maps each router to the subnet names it owns.
func (n *Network) RouterSubnets() map[string][]string {
	out := maps.Clone(n.routerSubnets)
	for r, list := range out {
		out[r] = slices.Clone(list)
	}
	return out
}

// Links returns links in creation order.
func (n *Network) Links() []Link {
	return slices.Clone(n.links)
}

func (n *Network) Graph() *Graph {
	return n.graph
}

func (n *Network) Addresses() *AddressTable {
	return n.table
}

func (n *Network) Spec() Specification {
	return n.spec
}

// classOf returns the classful network class of an IPv4 address.
func classOf(addr netip.Addr) string {
	first := addr.As4()[0]
	switch {
	case first < 128:
		return "A"
	case first < 192:
		return "B"
	case first < 224:
		return "C"
	case first < 240:
		return "D"
	}
	return "E"
}
