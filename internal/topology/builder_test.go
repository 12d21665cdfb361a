package topology

import (
	"errors"
	"net/netip"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"gonetsim/internal/addressing"
	"gonetsim/internal/random"
)

func newTestBuilder(seed uint64) *Builder {
	logger, _ := logtest.NewNullLogger()
	return NewBuilder(WithRandom(random.New(seed)), WithLogger(logger))
}

func TestBuildTwoRouterScenario(t *testing.T) {
	nw, err := newTestBuilder(1).Build(Request{
		Routers: 2,
		Subnets: []SubnetSpec{{Name: "e1", Capacity: 3}, {Name: "e2", Capacity: 0}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if got := nw.Addresses().Len(); got != 8 {
		t.Errorf("addresses issued: got %d, want 8", got)
	}
	if got := nw.Spec().Addresses; got != 8 {
		t.Errorf("spec addresses: got %d, want 8", got)
	}

	g := nw.Graph()
	if d := g.Degree(EdgeSwitchID("e1")); d != 4 {
		t.Errorf("switch-e1 degree: got %d, want 4", d)
	}
	if d := g.Degree(EdgeSwitchID("e2")); d != 1 {
		t.Errorf("switch-e2 degree: got %d, want 1", d)
	}

	owners := 0
	for _, list := range nw.RouterSubnets() {
		for _, s := range list {
			if s == "e1" {
				owners++
			}
		}
	}
	if owners != 1 {
		t.Errorf("e1 owned by %d routers", owners)
	}

	e1, ok := nw.Subnet("e1")
	if !ok {
		t.Fatal("subnet e1 missing")
	}
	if want := []string{"e1-1", "e1-2", "e1-3"}; !slices.Equal(e1.Hosts, want) {
		t.Errorf("e1 hosts: got %v, want %v", e1.Hosts, want)
	}
	if e1.Mask != DefaultSubnetMask {
		t.Errorf("e1 mask: got %s", e1.Mask)
	}
	if !g.HasEdge(e1.Router, e1.Switch) {
		t.Errorf("router %s not linked to %s", e1.Router, e1.Switch)
	}
	for _, id := range []string{"e2-1", "e2-0"} {
		if _, ok := nw.Device(id); ok {
			t.Errorf("inactive subnet produced host %s", id)
		}
	}
}

func TestBuildAddressOrder(t *testing.T) {
	// A single router pins the subnet order: active first, then inactive.
	b := NewBuilder(WithRandom(&random.Fixed{}), WithLogger(logrus.New()))
	nw, err := b.Build(Request{
		Routers: 1,
		Subnets: []SubnetSpec{{Name: "e1", Capacity: 2}, {Name: "e2", Capacity: 0}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []AddressEntry{
		{"central", netip.MustParseAddr("192.168.1.1")},
		{"a1", netip.MustParseAddr("192.168.1.2")},
		{"switch-e1", netip.MustParseAddr("192.168.1.3")},
		{"e1-1", netip.MustParseAddr("192.168.1.4")},
		{"e1-2", netip.MustParseAddr("192.168.1.5")},
		{"switch-e2", netip.MustParseAddr("192.168.1.6")},
	}
	if got := nw.Addresses().Entries(); !slices.Equal(got, want) {
		t.Errorf("address table:\n got %v\nwant %v", got, want)
	}
}

func TestBuildLinks(t *testing.T) {
	nw, err := newTestBuilder(2).Build(Request{
		Routers: 2,
		Subnets: []SubnetSpec{{Name: "e1", Capacity: 2}, {Name: "e2", Capacity: 1}, {Name: "e3", Capacity: 0}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var fiber, copper int
	for _, l := range nw.Links() {
		switch l.Medium {
		case MediumFiber:
			fiber++
			if l.A != CentralSwitchID || l.Capacity != FiberCapacity {
				t.Errorf("unexpected fiber link %+v", l)
			}
		case MediumCopperPair:
			copper++
			if l.Capacity != CopperCapacity {
				t.Errorf("unexpected copper link %+v", l)
			}
		}
	}
	// 2 core links; 3 router-switch links plus 3 host links.
	if fiber != 2 || copper != 6 {
		t.Errorf("got %d fiber and %d copper links", fiber, copper)
	}
	if nw.Spec().Links != 8 {
		t.Errorf("spec links: got %d", nw.Spec().Links)
	}
}

func TestBuildGraphProperties(t *testing.T) {
	// Four routers, and no router or edge switch that also ends up with
	// degree four.
	nw, err := newTestBuilder(3).Build(Request{
		Routers: 4,
		Subnets: []SubnetSpec{
			{Name: "e1", Capacity: 4},
			{Name: "e2", Capacity: 1},
			{Name: "e3", Capacity: 0},
			{Name: "e4", Capacity: 5},
			{Name: "e5", Capacity: 0},
			{Name: "e6", Capacity: 0},
			{Name: "e7", Capacity: 6},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	g := nw.Graph()
	if !g.Connected() {
		t.Fatal("graph is not connected")
	}
	for _, id := range g.Nodes() {
		if role, _ := g.Role(id); role != RoleCentralSwitch && g.Degree(id) == 4 {
			t.Errorf("%s (%s) has the central switch degree", id, role)
		}
	}
	if g.Degree(CentralSwitchID) != 4 {
		t.Errorf("central degree: got %d", g.Degree(CentralSwitchID))
	}

	for _, sn := range nw.Subnets() {
		want := 1 + sn.Capacity
		if got := g.Degree(sn.Switch); got != want {
			t.Errorf("%s degree: got %d, want %d", sn.Switch, got, want)
		}
		for _, h := range sn.Hosts {
			if role, _ := g.Role(h); role != RoleHost {
				t.Errorf("%s role %s", h, role)
			}
		}
	}

	hosts := 4 + 1 + 5 + 6
	wantAddrs := 1 + 4 + 7 + hosts
	if got := nw.Addresses().Len(); got != wantAddrs {
		t.Errorf("addresses: got %d, want %d", got, wantAddrs)
	}
	if len(nw.DevicesByRole(RoleHost)) != hosts || nw.Spec().Hosts != hosts {
		t.Errorf("host count mismatch")
	}
	if nw.Spec().ActiveSubnets != 4 || nw.Spec().Subnets != 7 {
		t.Errorf("subnet counts: %+v", nw.Spec())
	}

	seen := map[netip.Addr]string{}
	for id, addr := range nw.Addresses().All() {
		if prev, dup := seen[addr]; dup {
			t.Fatalf("%s and %s share %s", prev, id, addr)
		}
		seen[addr] = id
		if !nw.Prefix.Contains(addr) {
			t.Errorf("%s outside pool", addr)
		}
	}
}

func TestBuildIsSeedDeterministic(t *testing.T) {
	req := Request{
		Routers: 3,
		Subnets: []SubnetSpec{{"e1", 1}, {"e2", 2}, {"e3", 0}, {"e4", 3}, {"e5", 1}},
	}
	first, err := newTestBuilder(77).Build(req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := newTestBuilder(77).Build(req)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !slices.Equal(first.Addresses().Entries(), second.Addresses().Entries()) {
		t.Error("address tables differ for equal seeds")
	}
	if first.ID == second.ID {
		t.Error("network ids should be unique per build")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"no routers", Request{Routers: 0}, ErrInvalidTopologyRequest},
		{"negative capacity", Request{Routers: 1, Subnets: []SubnetSpec{{"e1", -1}}}, ErrInvalidTopologyRequest},
		{"empty name", Request{Routers: 1, Subnets: []SubnetSpec{{"", 1}}}, ErrInvalidTopologyRequest},
		{"duplicate", Request{Routers: 2, Subnets: []SubnetSpec{{"e1", 1}, {"e1", 0}}}, ErrDuplicateSubnetName},
		{"id collision", Request{Routers: 1, Subnets: []SubnetSpec{{"switch", 1}, {"1", 0}}}, ErrInvalidTopologyRequest},
		{"exhausted", Request{Routers: 1, Subnets: []SubnetSpec{{"big", 252}}}, addressing.ErrAddressSpaceExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nw, err := newTestBuilder(1).Build(tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if nw != nil {
				t.Error("failed build returned a network")
			}
		})
	}
}

func TestBuildFillsPoolExactly(t *testing.T) {
	nw, err := newTestBuilder(1).Build(Request{Routers: 1, Subnets: []SubnetSpec{{"big", 251}}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	last, _ := nw.Addresses().Lookup("big-251")
	if last.String() != "192.168.1.254" {
		t.Errorf("last host got %s", last)
	}
}

func TestBuildCustomPrefix(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	b := NewBuilder(
		WithPrefix(netip.MustParsePrefix("10.20.0.0/16")),
		WithRandom(random.New(1)),
		WithLogger(logger),
	)
	nw, err := b.Build(Request{Routers: 1, Subnets: []SubnetSpec{{"e1", 1}}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	spec := nw.Spec()
	if spec.Class != "A" || spec.Mask != "255.255.0.0" || spec.Broadcast.String() != "10.20.255.255" {
		t.Errorf("unexpected spec %+v", spec)
	}
	if addr, _ := nw.Addresses().Lookup(CentralSwitchID); addr.String() != "10.20.0.1" {
		t.Errorf("central got %s", addr)
	}
}

func TestBuildLogsSummary(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	nw, err := NewBuilder(WithRandom(random.New(1)), WithLogger(logger)).
		Build(Request{Routers: 1, Subnets: []SubnetSpec{{"e1", 1}}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	last := hook.LastEntry()
	if last == nil || last.Message != "topology built" {
		t.Fatalf("unexpected last entry %+v", last)
	}
	if last.Data["network"] != nw.ID {
		t.Errorf("network field: got %v", last.Data["network"])
	}
	// central, router, switch, host
	debug := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "address assigned" {
			debug++
		}
	}
	if debug != 4 {
		t.Errorf("got %d address entries, want 4", debug)
	}
}

func TestNetworkAccessorsReturnCopies(t *testing.T) {
	nw, err := newTestBuilder(1).Build(Request{Routers: 1, Subnets: []SubnetSpec{{"e1", 2}}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	subs := nw.Subnets()
	subs[0].Hosts[0] = "mutated"
	rs := nw.RouterSubnets()
	rs["a1"][0] = "mutated"
	nodes := nw.Graph().Neighbors(EdgeSwitchID("e1"))
	nodes[0] = "mutated"

	if sn, _ := nw.Subnet("e1"); sn.Hosts[0] != "e1-1" {
		t.Error("subnet hosts leaked")
	}
	if nw.RouterSubnets()["a1"][0] != "e1" {
		t.Error("router subnets leaked")
	}
	if nw.Graph().Neighbors(EdgeSwitchID("e1"))[0] != "a1" {
		t.Error("adjacency leaked")
	}
}
