package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/sqlstore"
)

// seed prepares a database ahead of the first web start: it creates the
// tables, loads the demo hotels into an empty catalogue and reports counts.
func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dialect, err := sqlstore.ParseDialect(cfg.DBDriver)
	if err != nil {
		log.Fatal().Err(err).Msg("bad database driver")
	}
	db, err := sqlstore.Open(dialect, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := sqlstore.EnsureSchema(ctx, db, dialect); err != nil {
		log.Fatal().Err(err).Msg("schema failed")
	}
	n, err := sqlstore.Seed(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	repo := sqlstore.New(db)
	hotels, err := repo.ListHotels(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("count hotels failed")
	}
	cities, err := repo.DistinctCities(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list cities failed")
	}
	log.Info().
		Str("driver", cfg.DBDriver).
		Int("inserted", n).
		Int("hotels", len(hotels)).
		Strs("cities", cities).
		Msg("seed completed")
}
