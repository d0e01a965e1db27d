// Package sims is the registry of hostable toys. Toy packages register
// themselves from init; hosts import them for side effects.
package sims

import (
	"fmt"
	"slices"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/engine"
)

// Toy describes one registered simulation.
type Toy struct {
	Name string
	// Defaults returns the toy's configuration before any file or flag
	// overrides.
	Defaults func() engine.Config
	// Build constructs the toy from a complete configuration.
	Build func(cfg engine.Config, opts ...engine.Option) (core.Sim, error)
}

var toys = map[string]Toy{}

// Register adds a toy under its name. Incomplete entries are ignored.
func Register(t Toy) {
	if t.Name == "" || t.Defaults == nil || t.Build == nil {
		return
	}
	toys[t.Name] = t
}

// Lookup returns the toy registered under name.
func Lookup(name string) (Toy, bool) {
	t, ok := toys[name]
	return t, ok
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(toys))
	for name := range toys {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the named toy from its defaults with flag-style overrides.
func New(name string, overrides map[string]string, opts ...engine.Option) (core.Sim, error) {
	t, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown sim %q", name)
	}
	cfg, err := engine.FromMap(t.Defaults(), overrides)
	if err != nil {
		return nil, err
	}
	return t.Build(cfg, opts...)
}
