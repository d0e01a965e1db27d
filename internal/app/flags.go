package app

import (
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/config"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/engine"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/sims"
)

// Config represents the command-line parameters shared by the hosts.
type Config struct {
	Sim      string
	Seed     int64
	Files    []string
	Set      map[string]string
	LogLevel string
	HUD      int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "majority", LogLevel: "info", HUD: 220, Set: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run ("+strings.Join(sims.Names(), ", ")+")")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset, 0 for the config or clock")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "log level: debug, info, warn, error")
	fs.IntVar(&c.HUD, "hud", c.HUD, "width of the parameter panel in pixels, 0 to hide")
	fs.Func("config", "CUE config file, repeatable; earlier files win", func(v string) error {
		c.Files = append(c.Files, v)
		return nil
	})
	fs.Func("set", "override a parameter as key=value, repeatable", func(v string) error {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return fmt.Errorf("want key=value, got %q", v)
		}
		c.Set[key] = value
		return nil
	})
}

// EngineConfig resolves the selected toy's configuration: defaults, then
// config files, then -set overrides, then -seed.
func (c *Config) EngineConfig() (sims.Toy, engine.Config, error) {
	toy, ok := sims.Lookup(c.Sim)
	if !ok {
		return sims.Toy{}, engine.Config{}, fmt.Errorf("unknown sim %q", c.Sim)
	}
	cfg := toy.Defaults()
	if len(c.Files) > 0 {
		var err error
		cfg, err = config.LoadEngine(config.NewEngineLoader(c.Files), c.Sim, cfg)
		if err != nil {
			return toy, cfg, err
		}
	}
	cfg, err := engine.FromMap(cfg, c.Set)
	if err != nil {
		return toy, cfg, err
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	return toy, cfg, cfg.Validate()
}

// Build resolves the configuration and constructs the toy.
func (c *Config) Build(opts ...engine.Option) (core.Sim, error) {
	toy, cfg, err := c.EngineConfig()
	if err != nil {
		return nil, err
	}
	return toy.Build(cfg, opts...)
}

// Overrides returns the -set pairs in key order, for logging.
func (c *Config) Overrides() []string {
	out := make([]string, 0, len(c.Set))
	for _, k := range slices.Sorted(maps.Keys(c.Set)) {
		out = append(out, k+"="+c.Set[k])
	}
	return out
}
