package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNoDatabaseURL is returned when no connection string is configured.
var ErrNoDatabaseURL = errors.New("database url not set")

var (
	mu   sync.Mutex
	pool *pgxpool.Pool
)

// InitDB opens the connection pool and pings it, retrying with exponential
// backoff for up to maxWait. A malformed URL fails immediately.
func InitDB(ctx context.Context, dbURL string, maxWait time.Duration, logger *zap.Logger) (*pgxpool.Pool, error) {
	if dbURL == "" {
		return nil, ErrNoDatabaseURL
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	p, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = maxWait
	retryPolicy.MaxInterval = 5 * time.Second

	logger.Info("Connecting to PostgreSQL...")
	err = backoff.RetryNotify(
		func() error { return p.Ping(ctx) },
		backoff.WithContext(retryPolicy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("PostgreSQL ping failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to connect after retries: %w", err)
	}
	logger.Info("Connected to PostgreSQL")

	mu.Lock()
	defer mu.Unlock()
	if pool != nil {
		pool.Close()
	}
	pool = p
	return p, nil
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	mu.Lock()
	defer mu.Unlock()
	return pool
}

// Close closes the database connection pool
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
}
