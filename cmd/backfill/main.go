// Command backfill loads games and ratings for a range of past seasons.
//
//	BACKFILL_SEASONS=2015-2024 backfill
//	backfill 2019-2023
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"cfbd_v1/ingestion/internal/client"
	"cfbd_v1/ingestion/internal/config"
	"cfbd_v1/ingestion/internal/ingest"
	"cfbd_v1/ingestion/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		zerolog.SetGlobalLevel(level)
	}
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	seasons := cfg.BackfillSeasons
	if len(os.Args) > 1 {
		seasons = os.Args[1]
	}
	from, to, err := config.ParseSeasonRange(seasons)
	if err != nil {
		log.Fatal().Err(err).Msg("Set BACKFILL_SEASONS or pass a range such as 2015-2024")
	}

	if err := cfg.ValidateWorker(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfbd, err := client.FromConfig(cfg, "", nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create CFBD client")
	}

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// 1. Validate database connectivity and schema
	log.Info().Msg("Validating service health...")
	if err := db.Health(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}
	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// 2. Backfill every season
	syncer := ingest.NewSyncer(cfbd, ingest.StoresFrom(db), cfg.BackfillConcurrency)
	result, err := syncer.Backfill(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("Backfill did not finish")
	}

	// 3. Report
	for _, f := range result.Failed {
		log.Error().Err(f.Err).Int("season", f.Season).Msg("Season failed")
	}
	log.Info().
		Int("requested", result.Requested).
		Int("success_count", len(result.Successful)).
		Int("failure_count", len(result.Failed)).
		Msg("Backfill summary")

	if err != nil || len(result.Failed) > 0 {
		return 1
	}
	return 0
}
