// Package config loads the YAML topology request consumed by the CLI.
package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"gonetsim/internal/addressing"
	"gonetsim/internal/topology"
)

const (
	EnvLogLevel = "GONETSIM_LOG_LEVEL"
	EnvSeed     = "GONETSIM_SEED"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config is the topology request file.
type Config struct {
	Prefix  string       `yaml:"prefix"`
	Seed    uint64       `yaml:"seed"`
	Log     Log          `yaml:"log"`
	Routers int          `yaml:"routers"`
	Subnets []SubnetConf `yaml:"subnets"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SubnetConf struct {
	Name  string `yaml:"name"`
	Hosts int    `yaml:"hosts"`
}

// Default returns a one router, one subnet network on the default pool.
func Default() *Config {
	return &Config{
		Prefix:  addressing.DefaultPrefix.String(),
		Log:     Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Routers: 1,
		Subnets: []SubnetConf{{Name: "e1", Hosts: 2}},
	}
}

// Load reads path, fills in defaults and applies environment overrides.
// The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Prefix == "" {
		c.Prefix = addressing.DefaultPrefix.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	for i := range c.Subnets {
		if c.Subnets[i].Name == "" {
			c.Subnets[i].Name = fmt.Sprintf("e%d", i+1)
		}
	}
}

func (c *Config) applyEnv() error {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.Log.Level = lvl
	}
	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvSeed, s)
		}
		c.Seed = seed
	}
	return nil
}

// Validate checks the fields the builder does not: pool syntax and log
// settings. Counts and names are checked again at build time.
func (c *Config) Validate() error {
	if _, err := c.ParsePrefix(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Routers < 1 {
		return fmt.Errorf("%w: routers must be at least 1, got %d", ErrInvalidConfig, c.Routers)
	}
	for _, s := range c.Subnets {
		if s.Hosts < 0 {
			return fmt.Errorf("%w: subnet %s has %d hosts", ErrInvalidConfig, s.Name, s.Hosts)
		}
	}
	return nil
}

func (c *Config) ParsePrefix() (netip.Prefix, error) {
	p, err := netip.ParsePrefix(c.Prefix)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: prefix: %v", ErrInvalidConfig, err)
	}
	return p, nil
}

// Request converts the file into a builder request.
func (c *Config) Request() topology.Request {
	req := topology.Request{
		Routers: c.Routers,
		Subnets: make([]topology.SubnetSpec, len(c.Subnets)),
	}
	for i, s := range c.Subnets {
		req.Subnets[i] = topology.SubnetSpec{Name: s.Name, Capacity: s.Hosts}
	}
	return req
}

// Logger returns a logrus logger configured from the log section.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		log.SetLevel(lvl)
	}
	if strings.EqualFold(c.Log.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
