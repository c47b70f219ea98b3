package database

import (
	"context"
	"fmt"

	"order_desk/internal/infrastructure/config"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// ConnectPostgres opens the product catalog pool. An empty DSN returns a nil pool; the
// search box then reports every query as failed.
func ConnectPostgres(ctx context.Context, conf config.Config) (*pgxpool.Pool, error) {
	if conf.Postgres.DSN == "" {
		log.Warnf("[db][postgres] no DSN configured, product search disabled")
		return nil, nil
	}
	poolConf, err := pgxpool.ParseConfig(conf.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if conf.Postgres.MaxConns > 0 {
		poolConf.MaxConns = conf.Postgres.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConf)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	log.Infof("[db][postgres] pool ready max_conns=%d", poolConf.MaxConns)
	return pool, nil
}
