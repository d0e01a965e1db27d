package config

import (
	"encoding/json"
	"fmt"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/engine"
)

// EngineSchema constrains the sims section of a config file. Fields mirror
// engine.Config; every one is optional and overrides the sim's defaults.
const EngineSchema = `
#Color: =~"^#([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$"

#Sim: {
	name?:               string
	size?:               int & >0
	states?:             int & >=2 & <=255
	scale?:              int & >0
	seed?:               int
	speed?:              number & >0
	radius?:             1 | 2
	inertia?:            number & >=0 & <=1
	jitter?:             number & >=0 & <=1
	influencePreset?:    "majority" | "conformist" | "tolerant" | "cyclic" | "oscillating"
	historyBias?:        number & >=0 & <=1
	seedStrategy?:       "uniform" | "patches" | "patches-smoothed" | "noise"
	patchSize?:          int & >0
	smoothPasses?:       int & >=0 & <=2
	noiseScale?:         number & >=0
	palette?:            [...#Color]
	outline?:            #Color
	stabilityWindow?:    int & >0
	stabilityThreshold?: number & >=0 & <=1
	minIslandSize?:      int & >0
}

sims?: [string]: #Sim
`

// LoadEngine overlays the "sims.<name>" entry of the loader's files onto
// base. A missing entry returns base unchanged. The result is validated.
func LoadEngine(loader Loader, name string, base engine.Config) (engine.Config, error) {
	cfg := base
	cfg.Palette = append([]string(nil), base.Palette...)
	found := false
	for value, err := range loader.IterCueValues("sims." + name) {
		if err != nil {
			return base, fmt.Errorf("load config for %q: %w", name, err)
		}
		raw, err := value.MarshalJSON()
		if err != nil {
			return base, fmt.Errorf("encode config for %q: %w", name, err)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return base, fmt.Errorf("decode config for %q: %w", name, err)
		}
		found = true
		break
	}
	if !found {
		return base, nil
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("config for %q: %w", name, err)
	}
	return cfg, nil
}

// NewEngineLoader returns a loader checking files against EngineSchema.
func NewEngineLoader(paths []string) Loader {
	return NewLoader(paths, EngineSchema)
}
