package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// CFBD API
	CFBDAPIKey     string        `envconfig:"CFBD_API_KEY"`
	CFBDAPIKeyDir  string        `envconfig:"CFBD_API_KEY_DIR"`
	CFBDBaseURL    string        `envconfig:"CFBD_BASE_URL" default:"https://api.collegefootballdata.com"`
	CFBDTimeout    time.Duration `envconfig:"CFBD_TIMEOUT" default:"30s"`
	CFBDMaxRetries int           `envconfig:"CFBD_MAX_RETRIES" default:"3"`
	CFBDAPIVersion string        `envconfig:"CFBD_API_VERSION" default:"4.5.1"`
	CFBDSwaggerURL string        `envconfig:"CFBD_SWAGGER_URL" default:"https://raw.githubusercontent.com/CFBD/cfb-api/main/swagger.json"`

	// Season to sync; 0 means the season the current date belongs to
	Season int `envconfig:"CFBD_SEASON" default:"0"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"cfbd"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"cfbd_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" default:""`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduler
	EnableScheduler        bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	InitialSyncEnabled     bool   `envconfig:"INITIAL_SYNC_ENABLED" default:"true"`
	NightlyRefreshCron     string `envconfig:"NIGHTLY_REFRESH_CRON" default:"0 2 * * *"`
	ScoreboardPollInterval int    `envconfig:"SCOREBOARD_POLL_INTERVAL" default:"60"`

	// Backfill
	BackfillSeasons     string `envconfig:"BACKFILL_SEASONS" default:""`
	BackfillConcurrency int    `envconfig:"BACKFILL_CONCURRENCY" default:"4"`

	// API Rate Limiting (requests per second)
	APIRateLimit  float64 `envconfig:"API_RATE_LIMIT" default:"10"`
	APIBurstLimit int     `envconfig:"API_BURST_LIMIT" default:"5"`

	// Caching TTL (in seconds)
	CacheEnabled    bool `envconfig:"CACHE_ENABLED" default:"true"`
	CacheTTLStatic  int  `envconfig:"CACHE_TTL_STATIC" default:"86400"` // 24 hours
	CacheTTLDefault int  `envconfig:"CACHE_TTL_DEFAULT" default:"600"`  // 10 minutes

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if one exists
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the settings every command depends on
func (c *Config) Validate() error {
	if c.CFBDBaseURL == "" {
		return fmt.Errorf("CFBD_BASE_URL is required")
	}

	if c.CFBDMaxRetries < 0 {
		return fmt.Errorf("CFBD_MAX_RETRIES must not be negative")
	}

	if c.APIRateLimit <= 0 {
		return fmt.Errorf("API_RATE_LIMIT must be positive")
	}

	if c.APIBurstLimit < 1 {
		return fmt.Errorf("API_BURST_LIMIT must be at least 1")
	}

	if c.BackfillConcurrency < 1 {
		return fmt.Errorf("BACKFILL_CONCURRENCY must be at least 1")
	}

	if c.BackfillSeasons != "" {
		if _, _, err := c.BackfillRange(); err != nil {
			return err
		}
	}

	return nil
}

// ValidateWorker validates the settings needed by the long running worker and backfill
func (c *Config) ValidateWorker() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.ScoreboardPollInterval < 1 {
		return fmt.Errorf("SCOREBOARD_POLL_INTERVAL must be at least 1 second")
	}

	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CurrentSeason returns the configured season, or the season now belongs to
func (c *Config) CurrentSeason(now time.Time) int {
	if c.Season > 0 {
		return c.Season
	}
	return SeasonFor(now)
}

// SeasonFor returns the college football season a date falls in.
// Bowl games and the playoff spill into January, so January and February
// belong to the previous year's season.
func SeasonFor(t time.Time) int {
	if t.Month() <= time.February {
		return t.Year() - 1
	}
	return t.Year()
}

// BackfillRange parses BACKFILL_SEASONS ("2015-2024" or "2018").
// A reversed range is swapped.
func (c *Config) BackfillRange() (int, int, error) {
	return ParseSeasonRange(c.BackfillSeasons)
}

// ParseSeasonRange parses "from-to" or a single season
func ParseSeasonRange(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("season range is empty")
	}

	parts := strings.Split(s, "-")
	switch len(parts) {
	case 1:
		season, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid season %q: %w", s, err)
		}
		return season, season, nil
	case 2:
		from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid season range %q: %w", s, err)
		}
		to, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid season range %q: %w", s, err)
		}
		if from > to {
			from, to = to, from
		}
		return from, to, nil
	default:
		return 0, 0, fmt.Errorf("invalid season range %q", s)
	}
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
