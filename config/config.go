package config

import (
	"strings"

	"github.com/caarlos0/env/v6"

	"estates/server/internal/finance"
)

type Config struct {
	Server struct {
		Port string `env:"PORT" envDefault:"5000"`

		// Path to the SQLite database file
		DatabasePath string `env:"DATABASE_PATH" envDefault:"database/estates.db"`

		// Directory holding uploaded building documents, one subdirectory per building
		UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`

		// Comma separated list of origins allowed by CORS
		AllowedOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://localhost:5174,http://localhost:3000"`
	}

	// Finance holds the global financing defaults and the scenario grid axes
	Finance struct {
		DefaultRatePct     float64 `env:"DEFAULT_RATE_PCT" envDefault:"4.5"`
		DefaultLeveragePct float64 `env:"DEFAULT_LEVERAGE_PCT" envDefault:"80"`

		RateMin      float64 `env:"GRID_RATE_MIN" envDefault:"3"`
		RateMax      float64 `env:"GRID_RATE_MAX" envDefault:"8"`
		RateStep     float64 `env:"GRID_RATE_STEP" envDefault:"0.5"`
		LeverageMin  float64 `env:"GRID_LEVERAGE_MIN" envDefault:"60"`
		LeverageMax  float64 `env:"GRID_LEVERAGE_MAX" envDefault:"85"`
		LeverageStep float64 `env:"GRID_LEVERAGE_STEP" envDefault:"5"`

		// Horizon used by the projection endpoint when none is requested
		DefaultProjectionYears int     `env:"DEFAULT_PROJECTION_YEARS" envDefault:"10"`
		DefaultInflationPct    float64 `env:"DEFAULT_INFLATION_PCT" envDefault:"2"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Maximum number of import batches waiting in the queue
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}

	Cache struct {
		// Redis address; the scenario cache stays in memory when empty
		RedisAddr string `env:"REDIS_ADDR"`

		// Lifetime of a cached scenario grid in seconds
		TTL int `env:"SCENARIO_CACHE_TTL" envDefault:"3600"`
	}

	Geocoding struct {
		Enabled  bool   `env:"GEOCODING_ENABLED" envDefault:"true"`
		URL      string `env:"GEOCODING_URL" envDefault:"https://nominatim.openstreetmap.org/search"`
		Country  string `env:"GEOCODING_COUNTRY" envDefault:"dk"`
		CacheDir string `env:"GEOCODING_CACHE_DIR"`

		// Minutes between geocoding runs for buildings without coordinates
		Interval int `env:"GEOCODING_INTERVAL" envDefault:"60"`
	}

	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `env:"TELEGRAM_CHAT_ID"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Origins splits the configured CORS origins.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DefaultFinancing returns the configured global financing.
func (c *Config) DefaultFinancing() finance.Financing {
	return finance.Financing{
		RatePct:     c.Finance.DefaultRatePct,
		LeveragePct: c.Finance.DefaultLeveragePct,
	}
}

// RateAxis returns the configured interest rate axis of the scenario grid.
func (c *Config) RateAxis() []float64 {
	return finance.Axis(c.Finance.RateMin, c.Finance.RateMax, c.Finance.RateStep)
}

// LeverageAxis returns the configured leverage axis of the scenario grid.
func (c *Config) LeverageAxis() []float64 {
	return finance.Axis(c.Finance.LeverageMin, c.Finance.LeverageMax, c.Finance.LeverageStep)
}
