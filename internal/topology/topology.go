package topology

import (
	"fmt"
	"net/netip"
)

type Role string

const (
	RoleCentralSwitch     Role = "central-switch"
	RoleAggregationRouter Role = "aggregation-router"
	RoleEdgeSwitch        Role = "edge-switch"
	RoleHost              Role = "host"
)

type Medium string

const (
	MediumFiber      Medium = "fiber"
	MediumCopperPair Medium = "copper-pair"
)

const (
	FiberCapacity  = "1 Gbps"
	CopperCapacity = "100 Mbps"

	// DefaultSubnetMask is the class-C mask every subnet carries.
	DefaultSubnetMask = "255.255.255.0"

	CentralSwitchID = "central"
)

// RouterID names the i-th aggregation router, counting from 1.
func RouterID(i int) string {
	return fmt.Sprintf("a%d", i)
}

// EdgeSwitchID names the edge switch serving a subnet.
func EdgeSwitchID(subnet string) string {
	return "switch-" + subnet
}

// HostID names the k-th host of a subnet, counting from 1.
func HostID(subnet string, k int) string {
	return fmt.Sprintf("%s-%d", subnet, k)
}

// Device is a node of the simulated network.
type Device struct {
	ID      string
	Role    Role
	Address netip.Addr
}

// Link is an undirected edge between two devices.
type Link struct {
	A        string
	B        string
	Medium   Medium
	Capacity string
}

// Subnet is a named group of hosts behind one edge switch and one router.
// A subnet with zero capacity is defined but inactive and has no hosts.
type Subnet struct {
	Name     string
	Capacity int
	Router   string
	Mask     string
	Switch   string
	Hosts    []string
}

func (s Subnet) Active() bool {
	return s.Capacity > 0
}

// SubnetSpec is one subnet definition of a build request.
type SubnetSpec struct {
	Name     string
	Capacity int
}

// Request describes the network to synthesize.
type Request struct {
	Routers int
	Subnets []SubnetSpec
}

// topology accumulates devices and links while a build is in progress. It is
// discarded when the build fails, so nothing partial escapes.
type topology struct {
	devices []Device
	index   map[string]int
	links   []Link
	graph   *Graph
	table   *AddressTable
}

func newTopology() *topology {
	return &topology{
		index: map[string]int{},
		graph: newGraph(),
		table: newAddressTable(),
	}
}

func (t *topology) addDevice(id string, role Role, addr netip.Addr) error {
	if _, exists := t.index[id]; exists {
		return fmt.Errorf("%w: device id %q is already taken", ErrInvalidTopologyRequest, id)
	}
	if err := t.table.assign(id, addr); err != nil {
		return err
	}

	t.index[id] = len(t.devices)
	t.devices = append(t.devices, Device{ID: id, Role: role, Address: addr})
	t.graph.addNode(id, role)
	return nil
}

func (t *topology) addLink(a, b string, medium Medium, capacity string) error {
	if err := t.graph.addEdge(a, b); err != nil {
		return fmt.Errorf("link %s-%s: %w", a, b, err)
	}

	t.links = append(t.links, Link{
		A:        a,
		B:        b,
		Medium:   medium,
		Capacity: capacity,
	})
	return nil
}
