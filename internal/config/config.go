package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config captures runtime configuration for the intelligence engine.
type Config struct {
	SnapshotPath    string
	NewsPath        string
	RefreshSchedule string
	LogLevel        string
	LogFormat       string
	MetricsAddr     string
	TopK            int
	Tuning          Tuning
}

// Tuning holds the scoring and analytics constants. It can be overridden by
// a TOML file referenced from CI_CONFIG_FILE.
type Tuning struct {
	Scoring   ScoringConfig   `toml:"scoring"`
	Analytics AnalyticsConfig `toml:"analytics"`
}

// ScoringConfig controls the news priority formula.
type ScoringConfig struct {
	DecayWindowDays float64            `toml:"decay_window_days"`
	RecencyWeight   float64            `toml:"recency_weight"`
	KeywordBoost    float64            `toml:"keyword_boost"`
	BoostKeywords   []string           `toml:"boost_keywords"`
	CategoryLevels  map[string]float64 `toml:"category_levels"`
}

// AnalyticsConfig controls the summary statistics.
type AnalyticsConfig struct {
	MarketCapBuckets []float64 `toml:"market_cap_buckets"`
	BillionThreshold float64   `toml:"billion_threshold"`
}

// DefaultTuning returns the built-in constants.
func DefaultTuning() Tuning {
	return Tuning{
		Scoring: ScoringConfig{
			DecayWindowDays: 100,
			RecencyWeight:   0.4,
			KeywordBoost:    20,
			BoostKeywords:   []string{"breaking", "urgent", "exclusive", "major", "significant"},
			CategoryLevels:  map[string]float64{"financial": 3, "product": 2},
		},
		Analytics: AnalyticsConfig{
			MarketCapBuckets: []float64{1e9, 1e10, 1e11},
			BillionThreshold: 1e9,
		},
	}
}

// FromEnv creates a configuration instance sourced from environment variables.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		SnapshotPath:    getEnv("CI_SNAPSHOT_PATH", "data/snapshot.json"),
		NewsPath:        getEnv("CI_NEWS_PATH", ""),
		RefreshSchedule: getEnv("CI_REFRESH_SCHEDULE", "@every 15m"),
		LogLevel:        getEnv("CI_LOG_LEVEL", "info"),
		LogFormat:       getEnv("CI_LOG_FORMAT", "console"),
		MetricsAddr:     getEnv("CI_METRICS_ADDR", ""),
		TopK:            10,
		Tuning:          DefaultTuning(),
	}

	if topK := os.Getenv("CI_TOP_K"); topK != "" {
		if _, err := fmt.Sscanf(topK, "%d", &cfg.TopK); err != nil {
			return Config{}, fmt.Errorf("parse CI_TOP_K: %w", err)
		}
	}

	if path := os.Getenv("CI_CONFIG_FILE"); path != "" {
		if err := cfg.Tuning.LoadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the values present in a TOML file onto t.
func (t *Tuning) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(raw, t); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the engine cannot work with.
func (c Config) Validate() error {
	if c.TopK <= 0 {
		return errors.New("config: CI_TOP_K must be positive")
	}
	s := c.Tuning.Scoring
	if s.DecayWindowDays <= 0 {
		return errors.New("config: decay_window_days must be positive")
	}
	if s.RecencyWeight < 0 || s.KeywordBoost < 0 {
		return errors.New("config: recency_weight and keyword_boost must not be negative")
	}
	buckets := c.Tuning.Analytics.MarketCapBuckets
	if !sort.Float64sAreSorted(buckets) {
		return errors.New("config: market_cap_buckets must be ascending")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
