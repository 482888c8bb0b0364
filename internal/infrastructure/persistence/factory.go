// Package persistence opens the storage backend selected by configuration.
package persistence

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorbook/tutorbook/config"
	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/jsonfile"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/postgres"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/redis"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/sqlite"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// Backend is an open storage location. Close releases its connections.
type Backend interface {
	addressbook.Storage
	io.Closer
}

// Open connects to the backend named by cfg.Storage.Backend. Remote backends
// are retried while unreachable and guarded by a circuit breaker once open.
// Postgres migrations are applied before use.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (Backend, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(logger.Component("persistence"), logger.String("backend", cfg.Storage.Backend))

	switch cfg.Storage.Backend {
	case config.BackendJSON:
		return jsonfile.NewStore(cfg.Storage.DataPath, log), nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Storage.SQLitePath, err)
		}
		return sqlite.NewStore(db, cfg.Storage.SQLitePath, log), nil

	case config.BackendPostgres:
		conn, err := postgres.NewConnection(ctx, postgres.Config{
			DSN:            cfg.Postgres.DSN,
			MaxConns:       cfg.Postgres.MaxConns,
			ConnectTimeout: cfg.Postgres.ConnectTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		return Guard(postgres.NewDocumentStore(conn, RedactDSN(cfg.Postgres.DSN), log), log), nil

	case config.BackendRedis:
		store, err := redis.NewStore(ctx, redis.Config{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			Key:         cfg.Redis.Key,
			DialTimeout: cfg.Redis.DialTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		return Guard(store, log), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// RedactDSN reduces a postgres DSN to host, port and database so that
// credentials never reach logs.
func RedactDSN(dsn string) string {
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return "postgres://<invalid>"
	}
	c := pc.ConnConfig
	return fmt.Sprintf("postgres://%s:%d/%s", c.Host, c.Port, c.Database)
}
