package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Server struct {
		// Port the HTTP server listens on
		Port string `env:"PORT" envDefault:"5250"`

		// Origins allowed to call the API from a browser
		AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	}

	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/parcels.db"`
	}

	Import struct {
		// Load the demo listings into an empty store at startup
		SeedMockData bool `env:"SEED_MOCK_DATA" envDefault:"true"`

		// Optional parcel shapefile imported at startup
		ShapefilePath string `env:"PARCEL_SHAPEFILE"`

		// Re-import the shapefile on this interval, 0 imports only at startup
		RefreshInterval time.Duration `env:"IMPORT_REFRESH_INTERVAL" envDefault:"0s"`

		// Optional JSON file overriding the built-in market list
		MarketsPath string `env:"MARKETS_PATH"`
	}

	BatchProcessing struct {
		// Maximum number of parcels per batch
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Number of batches buffered in the queue
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"16"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}

	Geocoding struct {
		// Look up coordinates for parcels imported without a shape
		Enabled bool `env:"GEOCODE_MISSING" envDefault:"false"`

		Endpoint  string `env:"GEOCODE_ENDPOINT" envDefault:"https://nominatim.openstreetmap.org/search"`
		CacheDir  string `env:"GEOCODE_CACHE_DIR" envDefault:"database/geocode_cache"`
		UserAgent string `env:"GEOCODE_USER_AGENT" envDefault:"LandScout Parcel Search/1.0"`

		// Pause between requests in milliseconds, Nominatim allows one per second
		DelayMS int `env:"GEOCODE_DELAY_MS" envDefault:"1000"`
	}

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
