package main

import (
	"flag"
	"fmt"

	"gonetsim/internal/repository"
)

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("c", "", "network config file")
	dir := fs.String("dir", repository.DefaultSnapshotDir, "snapshot directory")
	parseArgs(fs, args, 0, "export -c <file> [-dir <dir>]")

	cfg := loadConfig(*cfgPath)
	log := cfg.Logger()
	nw := buildNetwork(cfg, log)

	repo, err := repository.NewSnapshotRepository(*dir)
	if err != nil {
		log.Fatalf("Failed to open snapshot directory: %v", err)
	}
	snap, err := repo.Save(nw)
	if err != nil {
		log.Fatalf("Failed to export network: %v", err)
	}

	log.WithField("network", snap.ID).Debug("snapshot written")
	fmt.Printf("✓ Exported %s (%d devices, %d links) to %s\n", snap.ID, len(snap.Devices), len(snap.Links), repo.Dir())
}
