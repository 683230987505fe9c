package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/urls.txt", cfg.Dataset.URLsPath)
	assert.Equal(t, 20, cfg.Fetch.TimeoutSecs)
	assert.True(t, cfg.Render.Enabled)
	assert.Equal(t, 3, cfg.Render.ScrollPasses)
	assert.InDelta(t, 0.5, cfg.Extract.MinPrice, 0.001)
	assert.InDelta(t, 50.0, cfg.Extract.MaxPrice, 0.001)
	assert.InDelta(t, 4.0, cfg.Fallback.MinPrice, 0.001)
	assert.InDelta(t, 35.0, cfg.Fallback.MaxPrice, 0.001)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, "TR", cfg.Batch.Country)
	assert.Equal(t, "TRY", cfg.Batch.Currency)
	assert.Equal(t, "data/charging_prices.json", cfg.Output.DatasetPath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SARJTAKIP_BATCH_WORKERS", "7")
	t.Setenv("SARJTAKIP_LOG_LEVEL", "debug")
	t.Setenv("SARJTAKIP_UPLOAD_API_KEY", "gizli")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Batch.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "gizli", cfg.Upload.APIKey)
}

func TestDurationHelpers(t *testing.T) {
	fc := FetchConfig{TimeoutSecs: 20, IntervalMsec: 500}
	assert.Equal(t, "20s", fc.Timeout().String())
	assert.Equal(t, "500ms", fc.Interval().String())

	rc := RenderConfig{TimeoutSecs: 45}
	assert.Equal(t, "45s", rc.Timeout().String())
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "bogus"}))
}
