package topology

import (
	"errors"
	"slices"
)

var (
	errUnknownNode   = errors.New("unknown node")
	errSelfLoop      = errors.New("self loop")
	errParallelEdges = errors.New("devices already linked")
)

// Graph is the undirected device graph of a built network. It is never
// mutated after Build returns and is safe for concurrent readers.
type Graph struct {
	order []string
	roles map[string]Role
	adj   map[string][]string
}

func newGraph() *Graph {
	return &Graph{
		roles: map[string]Role{},
		adj:   map[string][]string{},
	}
}

func (g *Graph) addNode(id string, role Role) {
	g.order = append(g.order, id)
	g.roles[id] = role
	g.adj[id] = nil
}

func (g *Graph) addEdge(a, b string) error {
	if _, ok := g.roles[a]; !ok {
		return errUnknownNode
	}
	if _, ok := g.roles[b]; !ok {
		return errUnknownNode
	}
	if a == b {
		return errSelfLoop
	}
	if slices.Contains(g.adj[a], b) {
		return errParallelEdges
	}

	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
	return nil
}

// seal orders every adjacency list so neighbour iteration is lexicographic.
func (g *Graph) seal() {
	for _, n := range g.adj {
		slices.Sort(n)
	}
}

// Nodes returns device IDs in registration order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

func (g *Graph) Len() int {
	return len(g.order)
}

func (g *Graph) Role(id string) (Role, bool) {
	r, ok := g.roles[id]
	return r, ok
}

// Neighbors returns the devices linked to id in lexicographic order.
func (g *Graph) Neighbors(id string) []string {
	return slices.Clone(g.adj[id])
}

func (g *Graph) Degree(id string) int {
	return len(g.adj[id])
}

func (g *Graph) HasEdge(a, b string) bool {
	_, found := slices.BinarySearch(g.adj[a], b)
	return found
}

// Connected reports whether every node is reachable from every other.
func (g *Graph) Connected() bool {
	if len(g.order) == 0 {
		return true
	}

	seen := map[string]bool{g.order[0]: true}
	queue := []string{g.order[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.adj[cur] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == len(g.order)
}
