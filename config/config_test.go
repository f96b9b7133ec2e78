package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Import.SeedMockData)
	assert.Equal(t, 100, cfg.BatchProcessing.MaxBatchSize)
	assert.Equal(t, 3, cfg.BatchProcessing.MaxRetries)
	assert.Equal(t, time.Duration(0), cfg.Import.RefreshInterval)
	assert.False(t, cfg.Geocoding.Enabled)
	assert.Equal(t, 1000, cfg.Geocoding.DelayMS)
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SEED_MOCK_DATA", "false")
	t.Setenv("BATCH_MAX_SIZE", "25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("IMPORT_REFRESH_INTERVAL", "6h")
	t.Setenv("GEOCODE_MISSING", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Import.SeedMockData)
	assert.Equal(t, 25, cfg.BatchProcessing.MaxBatchSize)
	assert.Equal(t, 6*time.Hour, cfg.Import.RefreshInterval)
	assert.True(t, cfg.Geocoding.Enabled)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("BATCH_MAX_RETRIES", "many")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_LevelFallback(t *testing.T) {
	cfg := &Config{LogLevel: "loud"}
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
}

func TestMapView(t *testing.T) {
	tests := []struct {
		name           string
		market         string
		expectedCenter []float64
		expectedZoom   int
	}{
		{"Known market", "Bozeman", []float64{45.6770, -111.0429}, 10},
		{"Unknown market", "Atlantis", DefaultCenter, 4},
		{"Empty name", "", DefaultCenter, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, zoom := MapView(tt.market)
			assert.Equal(t, tt.expectedZoom, zoom)
			assert.InDelta(t, tt.expectedCenter[0], center[0], 0.0001)
			assert.InDelta(t, tt.expectedCenter[1], center[1], 0.0001)
		})
	}
}

func TestLoadMarkets(t *testing.T) {
	original := GetMarkets()
	t.Cleanup(func() {
		marketsLock.Lock()
		markets = original
		marketsLock.Unlock()
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "markets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"markets": [
			{"name": "Boise City", "state": "ID", "counties": ["Ada", "Canyon"], "center": [43.615, -116.2023]}
		]
	}`), 0644))

	require.NoError(t, LoadMarkets(path))

	all := GetMarkets()
	require.Len(t, all, 1)
	assert.Equal(t, "Boise City", all[0].Name)
	assert.Nil(t, GetMarketByName("Bozeman"))

	// Missing zoom falls back to the national zoom level
	_, zoom := MapView("Boise City")
	assert.Equal(t, 4, zoom)
}

func TestLoadMarkets_Errors(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, LoadMarkets(filepath.Join(dir, "missing.json")))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	assert.Error(t, LoadMarkets(bad))

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"markets": []}`), 0644))
	assert.Error(t, LoadMarkets(empty))

	assert.NotEmpty(t, GetMarkets())
}
