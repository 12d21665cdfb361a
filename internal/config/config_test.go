package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"gonetsim/internal/topology"
)

const sample = `
prefix: 10.0.0.0/24
seed: 42
log:
  level: debug
  format: json
routers: 2
subnets:
  - name: e1
    hosts: 3
  - hosts: 0
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 42 || cfg.Routers != 2 || cfg.Prefix != "10.0.0.0/24" {
		t.Errorf("unexpected config %+v", cfg)
	}
	// Unnamed subnets are numbered by position.
	if cfg.Subnets[1].Name != "e2" {
		t.Errorf("default name: got %q", cfg.Subnets[1].Name)
	}

	req := cfg.Request()
	want := []topology.SubnetSpec{{Name: "e1", Capacity: 3}, {Name: "e2", Capacity: 0}}
	if req.Routers != 2 || len(req.Subnets) != 2 || req.Subnets[0] != want[0] || req.Subnets[1] != want[1] {
		t.Errorf("request: got %+v", req)
	}

	log := cfg.Logger()
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level: got %s", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter: got %T", log.Formatter)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("routers: 1\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Prefix != "192.168.1.0/24" || cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Seed != 0 {
		t.Errorf("seed: got %d", cfg.Seed)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvSeed, "7")

	cfg, err := Parse([]byte("routers: 1\nseed: 3\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Seed != 7 || cfg.Log.Level != "warn" {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	t.Setenv(EnvSeed, "seven")
	if _, err := Parse([]byte("routers: 1\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"yaml":       "routers: [",
		"prefix":     "routers: 1\nprefix: 300.1.1.0/24\n",
		"level":      "routers: 1\nlog:\n  level: loud\n",
		"format":     "routers: 1\nlog:\n  format: xml\n",
		"no routers": "routers: 0\n",
		"hosts":      "routers: 1\nsubnets:\n  - name: e1\n    hosts: -2\n",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(in)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}
