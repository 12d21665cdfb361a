// Package repository exports built networks as JSON files for external
// renderers. Files are written and listed, never loaded back into a
// simulation.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonetsim/internal/topology"
)

const DefaultSnapshotDir = "/var/lib/gonetsim/snapshots"

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
)

type SnapshotRepository struct {
	dir string
}

func NewSnapshotRepository(dir string) (*SnapshotRepository, error) {
	if dir == "" {
		dir = DefaultSnapshotDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &SnapshotRepository{dir: dir}, nil
}

func (sr *SnapshotRepository) Dir() string {
	return sr.dir
}

// Save writes the network as <id>.json and returns what was written.
func (sr *SnapshotRepository) Save(nw *topology.Network) (*Snapshot, error) {
	if err := checkID(nw.ID); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	snap := NewSnapshot(nw)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot %s: %w", snap.ID, err)
	}
	if err := os.WriteFile(sr.path(snap.ID), data, 0644); err != nil {
		return nil, fmt.Errorf("write snapshot %s: %w", snap.ID, err)
	}
	return snap, nil
}

// FindByID reads <id>.json. The id stored in the file must match its name.
func (sr *SnapshotRepository) FindByID(id string) (*Snapshot, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(sr.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	if snap.ID != id {
		return nil, fmt.Errorf("%w: file %s.json holds id %q", ErrInvalidSnapshot, id, snap.ID)
	}
	return &snap, nil
}

// FindByPrefix resolves an abbreviated ID. It fails when the prefix matches
// no snapshot or more than one.
func (sr *SnapshotRepository) FindByPrefix(prefix string) (*Snapshot, error) {
	ids, err := sr.ids()
	if err != nil {
		return nil, err
	}

	var match string
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if match != "" {
			return nil, fmt.Errorf("snapshot prefix %q is ambiguous", prefix)
		}
		match = id
	}
	if match == "" {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, prefix)
	}
	return sr.FindByID(match)
}

// List returns every readable snapshot in the directory. Files that fail to
// decode are skipped.
func (sr *SnapshotRepository) List() ([]*Snapshot, error) {
	ids, err := sr.ids()
	if err != nil {
		return nil, err
	}

	var snaps []*Snapshot
	for _, id := range ids {
		snap, err := sr.FindByID(id)
		if err == nil {
			snaps = append(snaps, snap)
		}
	}
	return snaps, nil
}

func (sr *SnapshotRepository) Delete(id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	err := os.Remove(sr.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return err
}

func (sr *SnapshotRepository) ids() ([]string, error) {
	files, err := os.ReadDir(sr.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(file.Name(), ".json"))
	}
	return ids, nil
}

// checkID rejects ids that would name a file outside the snapshot directory.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: id %q", ErrInvalidSnapshot, id)
	}
	return nil
}

func (sr *SnapshotRepository) path(id string) string {
	return filepath.Join(sr.dir, id+".json")
}
