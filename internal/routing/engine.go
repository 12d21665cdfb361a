// Package routing answers host-to-host reachability queries over a built
// network graph.
//
// Paths are unweighted shortest paths: every link costs the same whatever its
// medium. Among equal-length paths the engine returns the one a breadth-first
// search finds first when neighbours are visited in lexicographic ID order.
package routing

import (
	"fmt"
	"math"
	"net/netip"
	"slices"
	"strings"

	"gonetsim/internal/random"
	"gonetsim/internal/topology"
)

// PacketsPerPing is the number of echo requests a simulated ping reports.
const PacketsPerPing = 4

const (
	minLatencyMS = 1.0
	maxLatencyMS = 100.0
)

// Graph is the read-only view of the topology the engine searches.
type Graph interface {
	Role(id string) (topology.Role, bool)
	Neighbors(id string) []string
}

// AddressBook resolves device IDs to addresses.
type AddressBook interface {
	Lookup(id string) (netip.Addr, bool)
}

type Status int

const (
	StatusReachable Status = iota
	StatusNoRouteAvailable
)

func (s Status) String() string {
	switch s {
	case StatusReachable:
		return "reachable"
	case StatusNoRouteAvailable:
		return "no route available"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Hop is a device on a path together with its address.
type Hop struct {
	Device  string
	Address netip.Addr
}

func (h Hop) String() string {
	return fmt.Sprintf("%s (%s)", h.Device, h.Address)
}

type PingResult struct {
	Source      Hop
	Destination Hop
	Status      Status
	Sent        int
	Received    int
	// LossPercent is the share of lost packets, 0 to 100.
	LossPercent float64
	// LatencyMS is the simulated mean round-trip time in milliseconds.
	LatencyMS float64
}

func (r PingResult) String() string {
	if r.Status != StatusReachable {
		return fmt.Sprintf("Ping from %s to %s: failed (%s)", r.Source.Device, r.Destination.Device, r.Status)
	}
	return fmt.Sprintf("Ping from %s to %s:\n  Packets: %d sent, %d received, %g%% loss\n  Average time: %.2f ms",
		r.Source, r.Destination, r.Sent, r.Received, r.LossPercent, r.LatencyMS)
}

type TracerouteResult struct {
	Source      Hop
	Destination Hop
	Status      Status
	// Hops is the path from Source to Destination, both included.
	Hops []Hop
}

func (r TracerouteResult) String() string {
	if r.Status != StatusReachable {
		return fmt.Sprintf("Traceroute from %s to %s: %s", r.Source.Device, r.Destination.Device, r.Status)
	}

	var sb strings.Builder
	sb.WriteString("Traceroute:")
	for i, h := range r.Hops {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, h)
	}
	return sb.String()
}

// Engine runs simulated diagnostics. It never mutates the graph it is given.
type Engine struct {
	rnd random.Source
}

// NewEngine returns an engine drawing simulated latencies from rnd.
func NewEngine(rnd random.Source) *Engine {
	return &Engine{rnd: rnd}
}

// Ping reports whether dst is reachable from src. An unreachable destination
// is a normal result with StatusNoRouteAvailable, not an error.
func (e *Engine) Ping(g Graph, book AddressBook, src, dst string) (PingResult, error) {
	from, to, err := endpoints(g, book, src, dst)
	if err != nil {
		return PingResult{}, fmt.Errorf("ping: %w", err)
	}

	res := PingResult{Source: from, Destination: to}
	if ShortestPath(g, src, dst) == nil {
		res.Status = StatusNoRouteAvailable
		return res, nil
	}

	res.Status = StatusReachable
	res.Sent = PacketsPerPing
	res.Received = PacketsPerPing
	res.LatencyMS = e.latency()
	return res, nil
}

// Traceroute lists every device on the shortest path from src to dst.
func (e *Engine) Traceroute(g Graph, book AddressBook, src, dst string) (TracerouteResult, error) {
	from, to, err := endpoints(g, book, src, dst)
	if err != nil {
		return TracerouteResult{}, fmt.Errorf("traceroute: %w", err)
	}

	res := TracerouteResult{Source: from, Destination: to}
	path := ShortestPath(g, src, dst)
	if path == nil {
		res.Status = StatusNoRouteAvailable
		return res, nil
	}

	res.Status = StatusReachable
	res.Hops = make([]Hop, len(path))
	for i, id := range path {
		addr, _ := book.Lookup(id)
		res.Hops[i] = Hop{Device: id, Address: addr}
	}
	return res, nil
}

// latency draws uniformly from [1, 100] ms, rounded to two decimals.
func (e *Engine) latency() float64 {
	ms := minLatencyMS + e.rnd.Float64()*(maxLatencyMS-minLatencyMS)
	return math.Round(ms*100) / 100
}

func endpoints(g Graph, book AddressBook, src, dst string) (Hop, Hop, error) {
	from, err := endpoint(g, book, src)
	if err != nil {
		return Hop{}, Hop{}, err
	}
	to, err := endpoint(g, book, dst)
	if err != nil {
		return Hop{}, Hop{}, err
	}
	return from, to, nil
}

// endpoint resolves a diagnostic endpoint. Membership is decided by the
// address book; only hosts may originate or answer diagnostics.
func endpoint(g Graph, book AddressBook, id string) (Hop, error) {
	addr, ok := book.Lookup(id)
	if !ok {
		return Hop{}, fmt.Errorf("%w: %q", ErrUnknownDevice, id)
	}
	role, ok := g.Role(id)
	if !ok {
		return Hop{}, fmt.Errorf("%w: %q is not part of the graph", ErrUnknownDevice, id)
	}
	if role != topology.RoleHost {
		return Hop{}, fmt.Errorf("%w: %q is a %s", ErrNotAHost, id, role)
	}
	return Hop{Device: id, Address: addr}, nil
}

// ShortestPath returns the device IDs from src to dst inclusive, or nil if
// dst cannot be reached. Neighbours are expanded in lexicographic order and
// the first path to reach a node wins.
func ShortestPath(g Graph, src, dst string) []string {
	if src == dst {
		return []string{src}
	}

	parent := map[string]string{src: ""}
	queue := []string{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		next := slices.Clone(g.Neighbors(cur))
		slices.Sort(next)
		for _, n := range next {
			if _, seen := parent[n]; seen {
				continue
			}
			parent[n] = cur
			if n == dst {
				return unwind(parent, src, dst)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func unwind(parent map[string]string, src, dst string) []string {
	path := []string{dst}
	for cur := dst; cur != src; {
		cur = parent[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}
