package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"gonetsim/internal/repository"
)

func cmdRemove(args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	dir := fs.String("dir", repository.DefaultSnapshotDir, "snapshot directory")
	rest := parseArgs(fs, args, 1, "rm [-dir <dir>] <network-id>")

	repo, err := repository.NewSnapshotRepository(*dir)
	if err != nil {
		logrus.Fatalf("Failed to open snapshot directory: %v", err)
	}

	snap, err := repo.FindByPrefix(rest[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Deleting snapshot %s...\n", shortID(snap.ID))
	if err := repo.Delete(snap.ID); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Deleted")
}

func cmdCleanup(args []string) {
	fs := flag.NewFlagSet("cleanup", flag.ExitOnError)
	dir := fs.String("dir", repository.DefaultSnapshotDir, "snapshot directory")
	parseArgs(fs, args, 0, "cleanup [-dir <dir>]")

	repo, err := repository.NewSnapshotRepository(*dir)
	if err != nil {
		logrus.Fatalf("Failed to open snapshot directory: %v", err)
	}
	snaps, err := repo.List()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if len(snaps) == 0 {
		fmt.Println("No snapshots to delete")
		return
	}

	fmt.Printf("Found %d snapshots to delete\n\n", len(snaps))
	for _, s := range snaps {
		fmt.Printf("Deleting snapshot %s...\n", shortID(s.ID))
		if err := repo.Delete(s.ID); err != nil {
			fmt.Printf("Error deleting snapshot: %v\n", err)
			continue
		}
		fmt.Println("  ✓ Deleted")
	}

	fmt.Println("\n✓ Cleanup complete!")
}
