package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"cfbd_v1/ingestion/internal/cache"
	"cfbd_v1/ingestion/internal/client"
	"cfbd_v1/ingestion/internal/config"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app holds the persistent flags and the loaded configuration
type app struct {
	apiKey   string
	keyDir   string
	logLevel string
	noCache  bool

	cfg *config.Config
}

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cfbd",
		Short: "Query the College Football Data API",
		Long: `cfbd fetches data from the College Football Data API (collegefootballdata.com)
and prints it as a table, CSV or JSON.

The API key is taken from --api-key, then CFBD_API_KEY, then ~/.cfbd/cfbd.json
(see "cfbd key set").`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initialize,
	}

	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "CFBD API key (overrides CFBD_API_KEY and the key file)")
	root.PersistentFlags().StringVar(&a.keyDir, "key-dir", "", "directory holding .cfbd/cfbd.json (default is the home directory)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default from LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&a.noCache, "no-cache", false, "do not use the Redis response cache")

	root.AddCommand(a.getCmd())
	root.AddCommand(a.endpointsCmd())
	root.AddCommand(a.keyCmd())
	root.AddCommand(a.compatCmd())

	return root
}

// initialize loads configuration and sets up logging
func (a *app) initialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.keyDir != "" {
		cfg.CFBDAPIKeyDir = a.keyDir
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	setupLogger(level)
	return nil
}

// setupLogger writes human readable logs to a terminal and JSON otherwise
func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// newClient builds an API client, using Redis when it is enabled and reachable
func (a *app) newClient(ctx context.Context) (*client.Client, error) {
	var responseCache client.Cache
	if a.cfg.CacheEnabled && !a.noCache {
		pingCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()

		rc, err := cache.NewRedisCache(pingCtx, cache.Config{
			Host:     a.cfg.RedisHost,
			Port:     strconv.Itoa(a.cfg.RedisPort),
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		if err != nil {
			log.Debug().Err(err).Msg("Redis unavailable, fetching without cache")
		} else {
			responseCache = rc
		}
	}

	return client.FromConfig(a.cfg, a.apiKey, responseCache)
}
