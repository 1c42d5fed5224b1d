package tasks

import (
	"context"
	"fmt"

	"todo-service/backend/internal/config"
	"todo-service/backend/internal/db"
)

// NewStore opens the store selected by cfg.DBDriver. The startup
// connectivity check is bounded by cfg.DBConnectTimeout.
func NewStore(ctx context.Context, cfg config.Config) (Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
	defer cancel()

	switch cfg.DBDriver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.DBPath, cfg.DBMaxConns)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(conn), nil
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, db.Options{
			URL:      cfg.DatabaseURL,
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Name:     cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
			MaxConns: cfg.DBMaxConns,
		})
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}
