package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"gonetsim/internal/repository"
)

func cmdList(args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	dir := fs.String("dir", repository.DefaultSnapshotDir, "snapshot directory")
	parseArgs(fs, args, 0, "ls [-dir <dir>]")

	repo, err := repository.NewSnapshotRepository(*dir)
	if err != nil {
		logrus.Fatalf("Failed to open snapshot directory: %v", err)
	}
	snaps, err := repo.List()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("%-12s  %-18s  %-8s  %-8s  %-8s  %s\n",
		"NETWORK ID", "PREFIX", "ROUTERS", "SUBNETS", "HOSTS", "CREATED")

	for _, s := range snaps {
		fmt.Printf("%-12s  %-18s  %-8d  %-8d  %-8d  %s\n",
			shortID(s.ID),
			s.Prefix,
			s.Spec.Routers,
			s.Spec.Subnets,
			s.Spec.Hosts,
			s.CreatedAt,
		)
	}
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
