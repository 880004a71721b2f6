package client

import (
	"fmt"
	"time"

	"cfbd_v1/ingestion/internal/config"
	"cfbd_v1/ingestion/internal/credentials"

	"github.com/rs/zerolog/log"
)

// FromConfig builds a client from application settings. apiKey overrides the
// configured key; cache may be nil to disable response caching.
func FromConfig(cfg *config.Config, apiKey string, cache Cache) (*Client, error) {
	if apiKey == "" {
		apiKey = cfg.CFBDAPIKey
	}
	key, err := credentials.Resolve(apiKey, cfg.CFBDAPIKeyDir)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithRateLimit(cfg.APIRateLimit, cfg.APIBurstLimit),
		WithRetries(cfg.CFBDMaxRetries, time.Second),
	}
	if cache != nil && cfg.CacheEnabled {
		opts = append(opts, WithCache(cache,
			time.Duration(cfg.CacheTTLDefault)*time.Second,
			time.Duration(cfg.CacheTTLStatic)*time.Second,
		))
	}

	c, err := NewClient(cfg.CFBDBaseURL, key, cfg.CFBDTimeout, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CFBD client: %w", err)
	}

	log.Debug().
		Str("base_url", cfg.CFBDBaseURL).
		Str("key", credentials.Mask(key)).
		Bool("cache", cache != nil && cfg.CacheEnabled).
		Msg("CFBD client initialized")

	return c, nil
}
