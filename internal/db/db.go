package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/salonhub/salon-api/internal/config"
	"github.com/salonhub/salon-api/internal/logging"
	"github.com/salonhub/salon-api/internal/metrics"
	"github.com/salonhub/salon-api/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrAcquireTimeout is returned when no pooled connection frees up within
// the configured acquire timeout.
var ErrAcquireTimeout = errors.New("timed out waiting for a database connection")

// ConnectionError reports a failure to reach the database or to obtain a
// connection from the pool.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsConnectionError reports whether err came from the connection layer.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// Provider owns the bounded connection pool. Every unit of database work
// borrows one connection through Acquire or WithConn.
type Provider struct {
	db             *gorm.DB
	sqlDB          *sql.DB
	driver         string
	acquireTimeout time.Duration
}

// Conn is a single pooled connection bound to a gorm session.
type Conn struct {
	raw      *sql.Conn
	db       *gorm.DB
	released atomic.Bool
}

// DB returns the gorm handle that runs every statement on this connection.
func (c *Conn) DB() *gorm.DB { return c.db }

// Open connects using the configured driver and sizes the pool. The
// connection is verified with a ping before returning.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Provider, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.URL)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, &ConnectionError{Op: "open", Err: fmt.Errorf("unsupported driver %q", cfg.Driver)}
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(logging.WithComponent("gorm")),
	})
	if err != nil {
		return nil, &ConnectionError{Op: "open", Err: err}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, &ConnectionError{Op: "open", Err: err}
	}

	sqlDB.SetMaxOpenConns(cfg.PoolSize)
	sqlDB.SetMaxIdleConns(cfg.PoolSize)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.AcquireTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectionError{Op: "ping", Err: err}
	}

	metrics.RegisterPool(sqlDB, "salon")

	logging.Info().
		Str("driver", cfg.Driver).
		Int("pool_size", cfg.PoolSize).
		Dur("acquire_timeout", cfg.AcquireTimeout).
		Msg("database connected")

	return &Provider{
		db:             gdb,
		sqlDB:          sqlDB,
		driver:         cfg.Driver,
		acquireTimeout: cfg.AcquireTimeout,
	}, nil
}

func (p *Provider) Driver() string { return p.driver }

// SQLDB exposes the underlying pool, mainly for stats.
func (p *Provider) SQLDB() *sql.DB { return p.sqlDB }

// Acquire borrows a connection, waiting at most the acquire timeout. The
// caller must hand it back with Release.
func (p *Provider) Acquire(ctx context.Context) (*Conn, error) {
	acqCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	raw, err := p.sqlDB.Conn(acqCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(acqCtx.Err(), context.DeadlineExceeded) {
			metrics.RecordAcquireTimeout()
			return nil, &ConnectionError{Op: "acquire", Err: ErrAcquireTimeout}
		}
		return nil, &ConnectionError{Op: "acquire", Err: err}
	}

	tx := p.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	tx.Statement.ConnPool = raw

	return &Conn{raw: raw, db: tx}, nil
}

// Release returns the connection to the pool. Releasing twice is a no-op.
func (p *Provider) Release(c *Conn) {
	if c == nil || !c.released.CompareAndSwap(false, true) {
		return
	}
	if err := c.raw.Close(); err != nil {
		logging.Warn().Err(err).Msg("failed to release database connection")
	}
}

// WithConn runs fn on a borrowed connection and always releases it.
func (p *Provider) WithConn(ctx context.Context, fn func(*Conn) error) error {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(c)
	return fn(c)
}

// Migrate creates or updates the schema for every model.
func (p *Provider) Migrate(ctx context.Context) error {
	return p.WithConn(ctx, func(c *Conn) error {
		return c.DB().AutoMigrate(
			&models.Client{},
			&models.Service{},
			&models.Appointment{},
			&models.AuditLog{},
		)
	})
}

// Ping checks that a connection can be borrowed and used.
func (p *Provider) Ping(ctx context.Context) error {
	return p.WithConn(ctx, func(c *Conn) error {
		if err := c.raw.PingContext(ctx); err != nil {
			return &ConnectionError{Op: "ping", Err: err}
		}
		return nil
	})
}

func (p *Provider) Close() error {
	return p.sqlDB.Close()
}
