package topology

import (
	"fmt"
	"net/netip"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gonetsim/internal/addressing"
	"gonetsim/internal/random"
	"gonetsim/internal/subnet"
)

type Builder struct {
	prefix netip.Prefix
	rnd    random.Source
	log    logrus.FieldLogger
}

type Option func(*Builder)

// WithPrefix sets the pool addresses are drawn from.
func WithPrefix(p netip.Prefix) Option {
	return func(b *Builder) { b.prefix = p }
}

// WithRandom sets the source used to shuffle subnets across routers.
func WithRandom(rnd random.Source) Option {
	return func(b *Builder) { b.rnd = rnd }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(b *Builder) { b.log = log }
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		prefix: addressing.DefaultPrefix,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rnd == nil {
		b.rnd = random.NewStream("topology")
	}
	return b
}

// build holds the state of one Build call.
type build struct {
	*topology
	alloc *addressing.Allocator
	log   logrus.FieldLogger
}

// Build synthesizes the hierarchical network described by req. It either
// returns a complete network or an error; no partial state is kept.
func (b *Builder) Build(req Request) (*Network, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	alloc, err := addressing.NewAllocator(b.prefix)
	if err != nil {
		return nil, fmt.Errorf("address pool: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate network id: %w", err)
	}

	bld := &build{
		topology: newTopology(),
		alloc:    alloc,
		log:      b.log.WithField("network", id.String()),
	}

	// Core devices
	if err := bld.register(CentralSwitchID, RoleCentralSwitch); err != nil {
		return nil, err
	}
	routers := make([]string, req.Routers)
	for i := range routers {
		routers[i] = RouterID(i + 1)
		if err := bld.register(routers[i], RoleAggregationRouter); err != nil {
			return nil, err
		}
	}

	// Spread subnets over routers
	specs := make(map[string]SubnetSpec, len(req.Subnets))
	var active, inactive []string
	for _, s := range req.Subnets {
		specs[s.Name] = s
		if s.Capacity > 0 {
			active = append(active, s.Name)
		} else {
			inactive = append(inactive, s.Name)
		}
	}
	assigned := subnet.Distribute(routers, active, inactive, b.rnd)

	// Edge switches and hosts, router-major
	var subnets []Subnet
	for _, r := range routers {
		for _, name := range assigned[r] {
			sn, err := bld.buildSubnet(r, specs[name])
			if err != nil {
				return nil, fmt.Errorf("build subnet %s: %w", name, err)
			}
			subnets = append(subnets, sn)
		}
	}

	// Links
	for _, r := range routers {
		if err := bld.addLink(CentralSwitchID, r, MediumFiber, FiberCapacity); err != nil {
			return nil, err
		}
	}
	for _, sn := range subnets {
		if err := bld.addLink(sn.Router, sn.Switch, MediumCopperPair, CopperCapacity); err != nil {
			return nil, err
		}
	}
	for _, sn := range subnets {
		for _, h := range sn.Hosts {
			if err := bld.addLink(sn.Switch, h, MediumCopperPair, CopperCapacity); err != nil {
				return nil, err
			}
		}
	}
	bld.graph.seal()

	nw := bld.finish(id.String(), routers, subnets, assigned)
	bld.log.WithFields(logrus.Fields{
		"devices": len(nw.devices),
		"links":   len(nw.links),
		"subnets": len(nw.subnets),
	}).Info("topology built")
	return nw, nil
}

func validate(req Request) error {
	if req.Routers < 1 {
		return fmt.Errorf("%w: need at least one router, got %d", ErrInvalidTopologyRequest, req.Routers)
	}

	seen := make(map[string]bool, len(req.Subnets))
	for i, s := range req.Subnets {
		if s.Name == "" {
			return fmt.Errorf("%w: subnet #%d has no name", ErrInvalidTopologyRequest, i+1)
		}
		if s.Capacity < 0 {
			return fmt.Errorf("%w: subnet %s has negative capacity %d", ErrInvalidTopologyRequest, s.Name, s.Capacity)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateSubnetName, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// register allocates an address for a new device and adds it to the graph.
func (b *build) register(id string, role Role) error {
	addr, err := b.alloc.Allocate()
	if err != nil {
		return fmt.Errorf("register %s: %w", id, err)
	}
	if err := b.addDevice(id, role, addr); err != nil {
		return err
	}

	b.log.WithFields(logrus.Fields{
		"device":  id,
		"role":    role,
		"address": addr,
	}).Debug("address assigned")
	return nil
}

// buildSubnet registers the edge switch of a subnet and, when the subnet is
// active, its hosts.
func (b *build) buildSubnet(router string, spec SubnetSpec) (Subnet, error) {
	sn := Subnet{
		Name:     spec.Name,
		Capacity: spec.Capacity,
		Router:   router,
		Mask:     DefaultSubnetMask,
		Switch:   EdgeSwitchID(spec.Name),
		Hosts:    make([]string, 0, spec.Capacity),
	}

	if err := b.register(sn.Switch, RoleEdgeSwitch); err != nil {
		return Subnet{}, err
	}
	for k := 1; k <= spec.Capacity; k++ {
		host := HostID(spec.Name, k)
		if err := b.register(host, RoleHost); err != nil {
			return Subnet{}, err
		}
		sn.Hosts = append(sn.Hosts, host)
	}

	if !sn.Active() {
		b.log.WithField("subnet", sn.Name).Debug("subnet defined without hosts")
	}
	return sn, nil
}

func (b *build) finish(id string, routers []string, subnets []Subnet, assigned map[string][]string) *Network {
	nw := &Network{
		ID:            id,
		Prefix:        b.alloc.Prefix(),
		devices:       b.devices,
		index:         b.index,
		routers:       routers,
		subnets:       subnets,
		subnetIndex:   make(map[string]int, len(subnets)),
		routerSubnets: assigned,
		links:         b.links,
		graph:         b.graph,
		table:         b.table,
	}

	hosts, active := 0, 0
	for i, sn := range subnets {
		nw.subnetIndex[sn.Name] = i
		hosts += len(sn.Hosts)
		if sn.Active() {
			active++
		}
	}

	nw.spec = Specification{
		Class:         classOf(b.alloc.Network()),
		Network:       b.alloc.Network(),
		Mask:          b.alloc.Mask(),
		Broadcast:     b.alloc.Broadcast(),
		Routers:       len(routers),
		Subnets:       len(subnets),
		ActiveSubnets: active,
		Hosts:         hosts,
		Addresses:     b.alloc.Issued(),
		Links:         len(b.links),
	}
	return nw
}
