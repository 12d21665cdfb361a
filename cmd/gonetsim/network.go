package main

import (
	"flag"
	"fmt"
	"hash/fnv"
	"os"

	"github.com/sirupsen/logrus"

	"gonetsim/internal/config"
	"gonetsim/internal/random"
	"gonetsim/internal/topology"
)

// loadConfig reads the file named by -c, or falls back to the built-in
// default network.
func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// source returns the generator one component draws from. Seed 0 gives the
// component its own stream; any other seed a PCG source seeded per component.
func source(cfg *config.Config, component string) random.Source {
	if cfg.Seed == 0 {
		return random.NewStream(component)
	}
	return random.New(cfg.Seed ^ componentSalt(component))
}

func componentSalt(component string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(component))
	return h.Sum64()
}

func buildNetwork(cfg *config.Config, log *logrus.Logger) *topology.Network {
	prefix, err := cfg.ParsePrefix()
	if err != nil {
		log.Fatalf("Invalid prefix: %v", err)
	}

	builder := topology.NewBuilder(
		topology.WithPrefix(prefix),
		topology.WithRandom(source(cfg, "topology")),
		topology.WithLogger(log),
	)
	nw, err := builder.Build(cfg.Request())
	if err != nil {
		log.Fatalf("Failed to build topology: %v", err)
	}
	return nw
}

// parseArgs parses fs and exits with usage when fewer than want positional
// arguments remain.
func parseArgs(fs *flag.FlagSet, args []string, want int, usage string) []string {
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: gonetsim %s\n", usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
	if fs.NArg() < want {
		fs.Usage()
		os.Exit(1)
	}
	return fs.Args()
}
