package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"cintel/internal/analytics"
	"cintel/internal/config"
	"cintel/internal/engine"
	"cintel/internal/logging"
	"cintel/internal/newsqueue"
	"cintel/internal/snapshot"
)

// app is the state shared by all subcommands once the root has initialised.
type app struct {
	cfg    config.Config
	logger *log.Logger
	engine *engine.Engine

	snapshotPath string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "cintel",
		Short:         "Query the competitive intelligence index",
		Long:          "cintel builds in-memory indexes over a company metrics snapshot and answers ranking, screening, analytics, autocomplete and news prioritisation queries.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.snapshotPath, "snapshot", "", "snapshot file (overrides CI_SNAPSHOT_PATH)")

	root.AddCommand(
		a.topCmd(),
		a.screenCmd(),
		a.aboveCmd(),
		a.analyticsCmd(),
		a.searchCmd(),
		a.newsCmd(),
		a.watchCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.snapshotPath != "" {
		cfg.SnapshotPath = a.snapshotPath
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.LogLevel, cfg.LogFormat)

	src, err := snapshot.NewFileSource("snapshot", cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("init snapshot source: %w", err)
	}

	a.engine, err = engine.New(src, engineOptions(cfg, a.logger))
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	return nil
}

// engineOptions maps the tuning section of the configuration onto the engine.
func engineOptions(cfg config.Config, logger *log.Logger) engine.Options {
	scoring := cfg.Tuning.Scoring
	levels := make(map[newsqueue.Category]float64, len(scoring.CategoryLevels))
	for name, level := range scoring.CategoryLevels {
		levels[newsqueue.Category(name)] = level
	}

	return engine.Options{
		Analytics: analytics.Options{
			MarketCapBuckets: cfg.Tuning.Analytics.MarketCapBuckets,
			BillionThreshold: cfg.Tuning.Analytics.BillionThreshold,
		},
		News: newsqueue.Options{
			DecayWindowDays: scoring.DecayWindowDays,
			RecencyWeight:   scoring.RecencyWeight,
			KeywordBoost:    scoring.KeywordBoost,
			BoostKeywords:   scoring.BoostKeywords,
			CategoryLevels:  levels,
		},
		Logger: logger,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
