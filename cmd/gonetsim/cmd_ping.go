package main

import (
	"flag"
	"fmt"
	"os"

	"gonetsim/internal/routing"
)

func cmdPing(args []string) {
	fs := flag.NewFlagSet("ping", flag.ExitOnError)
	cfgPath := fs.String("c", "", "network config file")
	hosts := parseArgs(fs, args, 2, "ping -c <file> <src-host> <dst-host>")

	cfg := loadConfig(*cfgPath)
	log := cfg.Logger()
	nw := buildNetwork(cfg, log)

	res, err := routing.NewEngine(source(cfg, "latency")).Ping(nw.Graph(), nw.Addresses(), hosts[0], hosts[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(res)
	if res.Status != routing.StatusReachable {
		os.Exit(1)
	}
}

func cmdTraceroute(args []string) {
	fs := flag.NewFlagSet("traceroute", flag.ExitOnError)
	cfgPath := fs.String("c", "", "network config file")
	hosts := parseArgs(fs, args, 2, "traceroute -c <file> <src-host> <dst-host>")

	cfg := loadConfig(*cfgPath)
	log := cfg.Logger()
	nw := buildNetwork(cfg, log)

	res, err := routing.NewEngine(source(cfg, "latency")).Traceroute(nw.Graph(), nw.Addresses(), hosts[0], hosts[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(res)
	if res.Status != routing.StatusReachable {
		os.Exit(1)
	}
}
