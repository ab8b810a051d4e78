// Package postgres implements the durable side of the dual-mode store on
// PostgreSQL. Connections are established lazily: a failed dial leaves the
// client unconnected and the next call retries, so the process keeps serving
// from the volatile store in the meantime.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	"gymgate/config"
	"gymgate/internal/domain/lifecycle"
	"gymgate/internal/errors"

	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Client hands out the shared gorm handle, dialling on first use.
type Client struct {
	mu     sync.Mutex
	db     *gorm.DB
	cfg    *config.Config
	logger *slog.Logger

	cancelMonitor context.CancelFunc
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the PostgreSQL client. No connection is attempted here; the
// first repository call dials.
func New(params Params) *Client {
	client := &Client{
		cfg:    params.Config,
		logger: params.Logger,
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}

// DB returns a session bound to ctx, dialling the database if needed. A dial
// failure is returned to the caller and retried on the next call.
func (c *Client) DB(ctx context.Context) (*gorm.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		db, err := c.dial(ctx)
		if err != nil {
			return nil, err
		}
		c.db = db
	}

	return c.db.WithContext(ctx), nil
}

func (c *Client) dial(ctx context.Context) (*gorm.DB, error) {
	if c.cfg.Database == nil || c.cfg.Database.DSN == "" {
		return nil, errors.New("durable store is not configured")
	}
	dbCfg := c.cfg.Database

	db, err := gorm.Open(postgres.Open(dbCfg.DSN), &gorm.Config{
		// Single-statement writes dominate here; explicit transactions are
		// opened by callers that need multi-step atomicity.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(c.logger, c.cfg),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	if len(dbCfg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(dbCfg.Replicas))
		for _, dsn := range dbCfg.Replicas {
			replicas = append(replicas, postgres.Open(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{Replicas: replicas})); err != nil {
			return nil, errors.Wrap(err, "failed to register read replicas")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	if dbCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		closeErr := sqlDB.Close()
		if closeErr != nil {
			c.logger.Warn("Failed to close PostgreSQL after ping failure",
				slog.String("error", closeErr.Error()))
		}

		return nil, errors.Wrap(err, "failed to ping PostgreSQL")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	c.cancelMonitor = cancelMonitor
	go monitorDBPool(monitorCtx, c.logger, sqlDB, dbPoolMonitorInterval)

	c.logger.Info("Connected to PostgreSQL")

	return db, nil
}

// Close tears down the connection if one was established.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	if c.cancelMonitor != nil {
		c.cancelMonitor()
	}

	sqlDB, err := c.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	c.db = nil

	return sqlDB.Close()
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
					slog.Int64("waitCountTotal", cur.WaitCount),
					slog.Duration("waitDurationTotal", cur.WaitDuration),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Postgres pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Postgres pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
