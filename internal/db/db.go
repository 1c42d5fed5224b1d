package db

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Options describe how to reach the task database and how large the pool is.
type Options struct {
	URL      string // when set, overrides the individual parts below
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

const postgresSchema = `CREATE TABLE IF NOT EXISTS task (
	"TaskID" BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	"Task" TEXT NOT NULL
)`

// ConnString renders the options as a postgres URL.
func (o Options) ConnString() string {
	if u := strings.TrimSpace(o.URL); u != "" {
		return u
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   o.Host,
		Path:   "/" + o.Name,
	}
	if o.Port > 0 {
		u.Host = o.Host + ":" + strconv.Itoa(o.Port)
	}
	if o.Password != "" {
		u.User = url.UserPassword(o.User, o.Password)
	} else if o.User != "" {
		u.User = url.User(o.User)
	}
	if o.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {o.SSLMode}}.Encode()
	}
	return u.String()
}

// PoolConfig parses the options into a pgxpool config. Callers beyond
// MaxConns wait in the pool's acquire queue, which has no size limit.
func (o Options) PoolConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(o.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if o.MaxConns > 0 {
		cfg.MaxConns = int32(o.MaxConns)
	}
	return cfg, nil
}

// Connect opens the pool, checks connectivity by acquiring and releasing a
// connection, and creates the task table when it is missing. Any failure is
// returned; the caller decides whether it is fatal.
func Connect(ctx context.Context, o Options) (*pgxpool.Pool, error) {
	cfg, err := o.PoolConfig()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init task schema: %w", err)
	}
	return pool, nil
}
