package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		cmdBuild(args)
	case "ping":
		cmdPing(args)
	case "traceroute", "trace":
		cmdTraceroute(args)
	case "datagram", "dgram":
		cmdDatagram(args)
	case "export":
		cmdExport(args)
	case "ls", "list":
		cmdList(args)
	case "rm", "remove":
		cmdRemove(args)
	case "cleanup":
		cmdCleanup(args)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("gonetsim - Hierarchical IP Network Simulator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gonetsim build -c <file>                   Build a network and print its address plan")
	fmt.Println("  gonetsim ping -c <file> <src> <dst>        Ping between two hosts")
	fmt.Println("  gonetsim traceroute -c <file> <src> <dst>  Trace the path between two hosts")
	fmt.Println("  gonetsim datagram [flags]                  Encode an IPv4 datagram")
	fmt.Println("  gonetsim export -c <file> [-dir <dir>]     Build and export a JSON snapshot")
	fmt.Println("  gonetsim ls [-dir <dir>]                   List exported snapshots")
	fmt.Println("  gonetsim rm [-dir <dir>] <id>              Remove an exported snapshot")
	fmt.Println("  gonetsim cleanup [-dir <dir>]              Remove all exported snapshots")
	fmt.Println("  gonetsim help                              Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  gonetsim build -c net.yaml")
	fmt.Println("  gonetsim ping -c net.yaml e1-1 e2-3")
	fmt.Println("  gonetsim datagram -c net.yaml -src e1-1 -dst e2-1 -proto udp -payload hello")
	fmt.Println("  gonetsim datagram -src 10.0.0.1 -dst 10.0.0.2 -options 9404")
	fmt.Println("  gonetsim rm 0192")
}
