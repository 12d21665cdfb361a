package main

import (
	"flag"
	"fmt"
	"strings"

	"gonetsim/internal/topology"
)

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	cfgPath := fs.String("c", "", "network config file")
	parseArgs(fs, args, 0, "build -c <file>")

	cfg := loadConfig(*cfgPath)
	nw := buildNetwork(cfg, cfg.Logger())
	printNetwork(nw)
}

func printNetwork(nw *topology.Network) {
	spec := nw.Spec()
	fmt.Printf("Network %s\n\n", nw.ID)
	fmt.Println("Specification:")
	fmt.Printf("  Class:              %s\n", spec.Class)
	fmt.Printf("  Network address:    %s\n", spec.Network)
	fmt.Printf("  Default mask:       %s\n", spec.Mask)
	fmt.Printf("  Broadcast address:  %s\n", spec.Broadcast)
	fmt.Printf("  Routers:            %d\n", spec.Routers)
	fmt.Printf("  Subnets:            %d (%d active)\n", spec.Subnets, spec.ActiveSubnets)
	fmt.Printf("  Hosts:              %d\n", spec.Hosts)
	fmt.Printf("  Addresses issued:   %d\n", spec.Addresses)
	fmt.Println()

	fmt.Printf("%-24s  %-20s  %s\n", "DEVICE", "ROLE", "ADDRESS")
	for _, d := range nw.Devices() {
		fmt.Printf("%-24s  %-20s  %s\n", d.ID, d.Role, d.Address)
	}
	fmt.Println()

	assigned := nw.RouterSubnets()
	for _, r := range nw.Routers() {
		names := assigned[r]
		if len(names) == 0 {
			fmt.Printf("Router %s: no subnets\n", r)
			continue
		}
		fmt.Printf("Router %s: %s\n", r, strings.Join(names, ", "))
	}
	for _, sn := range nw.Subnets() {
		state := "inactive"
		if sn.Active() {
			state = fmt.Sprintf("%d hosts", sn.Capacity)
		}
		fmt.Printf("  %-12s  via %-8s  mask %s  %s\n", sn.Name, sn.Router, sn.Mask, state)
	}
	fmt.Println()

	fmt.Printf("%-24s  %-24s  %-12s  %s\n", "FROM", "TO", "MEDIUM", "CAPACITY")
	for _, l := range nw.Links() {
		fmt.Printf("%-24s  %-24s  %-12s  %s\n", l.A, l.B, l.Medium, l.Capacity)
	}
}
