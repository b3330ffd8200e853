package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/healthyrecipe-client/database"
)

const (
	applicationName = "healthyrecipe-client"

	// One client process issues a handful of small statements per command.
	maxStateConns     = 2
	stateConnIdleTime = 30 * time.Second
)

// Connection is the pool backing a shared client state store.
type Connection struct {
	*pgxpool.Pool
}

// NewConnection migrates the state schema, then opens a small pool for dsn
// and checks that the server answers.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := stateStoreConfig(dsn)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		return nil, fmt.Errorf("failed to migrate state schema: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store pool: %w", err)
	}

	conn := &Connection{Pool: pool}
	if err := conn.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach state store: %w", err)
	}
	return conn, nil
}

func stateStoreConfig(dsn string) (*pgxpool.Config, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	conf.MaxConns = maxStateConns
	conf.MinConns = 0
	conf.MaxConnIdleTime = stateConnIdleTime
	if _, ok := conf.ConnConfig.RuntimeParams["application_name"]; !ok {
		conf.ConnConfig.RuntimeParams["application_name"] = applicationName
	}
	return conf, nil
}

func (c *Connection) Close() error {
	if c.Pool != nil {
		c.Pool.Close()
	}
	return nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.Pool == nil {
		return fmt.Errorf("state store pool is nil")
	}
	return c.Pool.Ping(ctx)
}
