package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/app"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/logs"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/rule"
	_ "github.com/MindsEye69/information-ontology-site-sub000/internal/sims/homeostasis"
	_ "github.com/MindsEye69/information-ontology-site-sub000/internal/sims/majority"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/sweep"
)

func main() {
	cfg := app.NewConfig()
	cfg.Seed = 1337
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 400, "ticks to simulate per scenario")
	quiet := flag.Int("quiet", 10, "unchanged ticks that count as settled")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	presets := flag.String("presets", "majority,conformist,tolerant,cyclic,oscillating", "comma-separated influence presets")
	inertias := flag.String("inertia", "0,0.1,0.3", "comma-separated inertia values")
	jitters := flag.String("jitter", "0,0.001,0.01", "comma-separated jitter values")
	out := flag.String("out", "-", "YAML report path, - for stdout")
	flag.Parse()

	if !logs.ParseLevel(cfg.LogLevel) {
		logs.ParseLevel("info")
	}
	logger := logs.New(logs.Options{})

	if err := run(logger, cfg, *steps, *quiet, *workers, *presets, *inertias, *jitters, *out); err != nil {
		logger.Error("sweep failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg *app.Config, steps, quiet, workers int, presetList, inertiaList, jitterList, out string) error {
	_, base, err := cfg.EngineConfig()
	if err != nil {
		return err
	}

	var ps []rule.Preset
	for _, p := range strings.Split(presetList, ",") {
		preset := rule.Preset(strings.TrimSpace(p))
		if !preset.Valid() {
			return fmt.Errorf("unknown preset %q", p)
		}
		ps = append(ps, preset)
	}
	ins, err := parseFloats(inertiaList)
	if err != nil {
		return fmt.Errorf("inertia: %w", err)
	}
	js, err := parseFloats(jitterList)
	if err != nil {
		return fmt.Errorf("jitter: %w", err)
	}
	scenarios := sweep.Grid(ps, ins, js)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweeping", "scenarios", len(scenarios), "workers", workers, "steps", steps, "size", base.Size)
	start := time.Now()
	results, err := sweep.RunAll(ctx, base, scenarios, steps, quiet, workers)
	if err != nil {
		return err
	}

	ranked := sweep.Rank(results)
	for i := 0; i < len(ranked) && i < 5; i++ {
		res := ranked[i]
		logger.InfoContext(logs.WithSim(ctx, string(res.Scenario.Preset)), "top result",
			"rank", i+1,
			"scenario", res.Scenario.String(),
			"settled_at", res.SettledAt,
			"stable", res.StableFraction,
			"regions", res.Regions,
		)
	}
	logger.Info("sweep done", "elapsed", time.Since(start).Round(time.Millisecond))

	w := os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return sweep.WriteYAML(w, sweep.Report{Base: base, Steps: steps, Quiet: quiet, Results: ranked})
}

func parseFloats(list string) ([]float64, error) {
	var out []float64
	for _, s := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
