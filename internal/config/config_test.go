package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CI_SNAPSHOT_PATH", "")
	t.Setenv("CI_TOP_K", "")
	t.Setenv("CI_CONFIG_FILE", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "data/snapshot.json", cfg.SnapshotPath)
	assert.Equal(t, "@every 15m", cfg.RefreshSchedule)
	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, 100.0, cfg.Tuning.Scoring.DecayWindowDays)
	assert.Equal(t, []float64{1e9, 1e10, 1e11}, cfg.Tuning.Analytics.MarketCapBuckets)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CI_SNAPSHOT_PATH", "/srv/snap.json")
	t.Setenv("CI_TOP_K", "25")
	t.Setenv("CI_CONFIG_FILE", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/srv/snap.json", cfg.SnapshotPath)
	assert.Equal(t, 25, cfg.TopK)
}

func TestFromEnvRejectsBadTopK(t *testing.T) {
	t.Setenv("CI_TOP_K", "many")
	t.Setenv("CI_CONFIG_FILE", "")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestTuningFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[scoring]
decay_window_days = 30
keyword_boost = 15

[scoring.category_levels]
financial = 4

[analytics]
market_cap_buckets = [1e8, 1e9]
`), 0o644))
	t.Setenv("CI_CONFIG_FILE", path)
	t.Setenv("CI_TOP_K", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.Tuning.Scoring.DecayWindowDays)
	assert.Equal(t, 15.0, cfg.Tuning.Scoring.KeywordBoost)
	assert.Equal(t, 0.4, cfg.Tuning.Scoring.RecencyWeight)
	assert.Equal(t, 4.0, cfg.Tuning.Scoring.CategoryLevels["financial"])
	assert.Equal(t, []float64{1e8, 1e9}, cfg.Tuning.Analytics.MarketCapBuckets)
}

func TestValidateRejectsUnsortedBuckets(t *testing.T) {
	cfg := Config{TopK: 5, Tuning: DefaultTuning()}
	cfg.Tuning.Analytics.MarketCapBuckets = []float64{1e10, 1e9}

	require.Error(t, cfg.Validate())

	cfg.Tuning = DefaultTuning()
	cfg.Tuning.Scoring.DecayWindowDays = 0
	require.Error(t, cfg.Validate())
}
