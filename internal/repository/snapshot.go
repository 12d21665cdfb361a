package repository

import (
	"net/netip"
	"time"

	"gonetsim/internal/topology"
)

// Snapshot is the exported, renderer-facing form of a built network.
type Snapshot struct {
	ID            string              `json:"id"`
	CreatedAt     string              `json:"created_at"`
	Prefix        string              `json:"prefix"`
	Spec          Spec                `json:"spec"`
	Devices       []Device            `json:"devices"`
	Links         []Link              `json:"links"`
	Subnets       []Subnet            `json:"subnets"`
	RouterSubnets map[string][]string `json:"router_subnets"`
}

type Spec struct {
	Class         string     `json:"class"`
	Network       netip.Addr `json:"network"`
	Mask          string     `json:"mask"`
	Broadcast     netip.Addr `json:"broadcast"`
	Routers       int        `json:"routers"`
	Subnets       int        `json:"subnets"`
	ActiveSubnets int        `json:"active_subnets"`
	Hosts         int        `json:"hosts"`
	Addresses     int        `json:"addresses"`
	Links         int        `json:"links"`
}

type Device struct {
	ID      string     `json:"id"`
	Role    string     `json:"role"`
	Address netip.Addr `json:"address"`
}

type Link struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Medium   string `json:"medium"`
	Capacity string `json:"capacity"`
}

type Subnet struct {
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Router   string   `json:"router"`
	Mask     string   `json:"mask"`
	Switch   string   `json:"switch"`
	Hosts    []string `json:"hosts,omitempty"`
}

// NewSnapshot copies everything a renderer needs out of nw.
func NewSnapshot(nw *topology.Network) *Snapshot {
	s := nw.Spec()
	snap := &Snapshot{
		ID:        nw.ID,
		CreatedAt: time.Now().Format(time.RFC3339),
		Prefix:    nw.Prefix.String(),
		Spec: Spec{
			Class:         s.Class,
			Network:       s.Network,
			Mask:          s.Mask,
			Broadcast:     s.Broadcast,
			Routers:       s.Routers,
			Subnets:       s.Subnets,
			ActiveSubnets: s.ActiveSubnets,
			Hosts:         s.Hosts,
			Addresses:     s.Addresses,
			Links:         s.Links,
		},
		RouterSubnets: nw.RouterSubnets(),
	}

	for _, d := range nw.Devices() {
		snap.Devices = append(snap.Devices, Device{ID: d.ID, Role: string(d.Role), Address: d.Address})
	}
	for _, l := range nw.Links() {
		snap.Links = append(snap.Links, Link{A: l.A, B: l.B, Medium: string(l.Medium), Capacity: l.Capacity})
	}
	for _, sn := range nw.Subnets() {
		snap.Subnets = append(snap.Subnets, Subnet{
			Name:     sn.Name,
			Capacity: sn.Capacity,
			Router:   sn.Router,
			Mask:     sn.Mask,
			Switch:   sn.Switch,
			Hosts:    sn.Hosts,
		})
	}
	return snap
}
