package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"net/netip"
	"os"

	"github.com/gopacket/gopacket"
	"github.com/sirupsen/logrus"

	"gonetsim/internal/packet"
	"gonetsim/internal/topology"
)

func cmdDatagram(args []string) {
	fs := flag.NewFlagSet("datagram", flag.ExitOnError)
	cfgPath := fs.String("c", "", "network config file; enables host names for -src and -dst")
	src := fs.String("src", "", "source address or host")
	dst := fs.String("dst", "", "destination address or host")
	proto := fs.String("proto", "TCP", "protocol name or number (TCP, UDP, ICMP)")
	tos := fs.Uint("tos", 0, "type of service")
	ttl := fs.Uint("ttl", packet.DefaultTTL, "time to live")
	flags := fs.String("flags", "DF", "DF, MF or none")
	options := fs.String("options", "", "IP options as hex")
	payload := fs.String("payload", "", "payload text")
	parseArgs(fs, args, 0, "datagram [flags]")

	if *src == "" || *dst == "" {
		fs.Usage()
		os.Exit(1)
	}
	if *tos > 0xff || *ttl > 0xff {
		logrus.Fatalf("tos and ttl must fit in one byte")
	}

	p, err := packet.ParseProtocol(*proto)
	if err != nil {
		logrus.WithError(err).Warnf("Falling back to %s", packet.DefaultProtocol)
		p = packet.DefaultProtocol
	}
	ipOpts, err := hex.DecodeString(*options)
	if err != nil {
		logrus.Fatalf("Invalid options: %v", err)
	}

	cfg := loadConfig(*cfgPath)
	var nw *topology.Network
	if *cfgPath != "" {
		nw = buildNetwork(cfg, cfg.Logger())
	}
	srcAddr := resolve(nw, *src)
	dstAddr := resolve(nw, *dst)

	enc := packet.NewEncoder(source(cfg, "identification"))
	d, err := enc.Build(srcAddr, dstAddr, []byte(*payload), packet.Options{
		Protocol:  p,
		TOS:       uint8(*tos),
		TTL:       uint8(*ttl),
		Flags:     packet.ParseFlags(*flags),
		IPOptions: ipOpts,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	b := d.Marshal()
	fmt.Printf("Datagram (%d bytes):\n", len(b))
	fmt.Print(hex.Dump(b))
	fmt.Println()
	fmt.Print(d.Describe())
	fmt.Println()
	fmt.Println(gopacket.LayerString(d.Layer()))
}

// resolve accepts a literal address or, when a network was built, a
// device ID.
func resolve(nw *topology.Network, s string) netip.Addr {
	if addr, err := netip.ParseAddr(s); err == nil {
		return addr
	}
	if nw != nil {
		if addr, ok := nw.Addresses().Lookup(s); ok {
			return addr
		}
	}
	logrus.Fatalf("Cannot resolve %q to an address", s)
	return netip.Addr{}
}
