package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clinica/agenda/internal/config"
	"github.com/clinica/agenda/internal/domain/patient"
	"github.com/clinica/agenda/internal/platform/db"
)

// store is the process-wide persistence handle, created once at startup
// and handed to the service.
type store struct {
	repo  patient.Repository
	stats db.StatsFunc
	close func()
}

func (s *store) Close() {
	if s.close != nil {
		s.close()
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBSchema)
		if err != nil {
			return nil, err
		}
		count, err := db.NewMigrator(pool, db.DefaultSource()).Up(ctx, cfg.DBSchema)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		if count > 0 {
			logger.Info().Int("count", count).Str("schema", cfg.DBSchema).Msg("applied migrations")
		}
		return &store{repo: patient.NewRepoPG(pool), stats: db.PGXStats(pool), close: pool.Close}, nil

	case config.DriverGorm:
		gdb, sqlDB, err := db.OpenSQLite(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		if err := patient.AutoMigrate(gdb); err != nil {
			sqlDB.Close()
			return nil, err
		}
		return &store{
			repo:  patient.NewRepoGorm(gdb),
			stats: db.SQLStats(sqlDB),
			close: func() { _ = sqlDB.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// openPostgres loads config for the migrate commands, which only apply to
// the postgres driver.
func openPostgres(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.StoreDriver != config.DriverPostgres {
		return nil, nil, fmt.Errorf("migrate requires STORE_DRIVER=%s (gorm stores migrate on startup)", config.DriverPostgres)
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBSchema)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pool, nil
}
