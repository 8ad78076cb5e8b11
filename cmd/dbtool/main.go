package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"trailblazer-service/internal/adapters/repositories"
	"trailblazer-service/internal/config"
	"trailblazer-service/internal/platform/db"
	"trailblazer-service/internal/platform/logging"

	"github.com/joho/godotenv"
)

// dbtool initializes the parks schema and loads seed parks:
//
//	dbtool            # schema + seed from database.seed_path
//	dbtool -seed=""   # schema only
func main() {
	if err := run(); err != nil {
		logging.L().Error().Err(err).Msg("dbtool failed")
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logging.L()

	seedPath := flag.String("seed", cfg.Database.SeedPath, "seed parks JSON file; empty skips seeding")
	flag.Parse()

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info().Str("driver", cfg.Database.Driver).Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn, cfg.Database.Driver); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info().Msg("schema ready")

	if *seedPath == "" {
		return nil
	}

	log.Info().Str("path", *seedPath).Msg("seeding database")
	n, err := repositories.SeedFromJSON(ctx, conn, cfg.Database.Driver, *seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info().Int("parks", n).Msg("seeding complete")

	return nil
}
