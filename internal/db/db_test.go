package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/salonhub/salon-api/internal/config"
)

func openTestProvider(t *testing.T, poolSize int) *Provider {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:          DriverSQLite,
		URL:             filepath.Join(t.TempDir(), "salon.db") + "?_pragma=busy_timeout(5000)",
		PoolSize:        poolSize,
		AcquireTimeout:  100 * time.Millisecond,
		ConnMaxLifetime: time.Minute,
	}

	p, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	if !IsConnectionError(err) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
}

func TestAcquire_TimesOutWhenPoolExhausted(t *testing.T) {
	p := openTestProvider(t, 1)
	ctx := context.Background()

	first, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("first Acquire() error: %v", err)
	}

	_, err = p.Acquire(ctx)
	if !errors.Is(err, ErrAcquireTimeout) {
		t.Fatalf("expected ErrAcquireTimeout, got %v", err)
	}
	if !IsConnectionError(err) {
		t.Errorf("expected ConnectionError wrapper, got %T", err)
	}

	p.Release(first)

	second, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() after release error: %v", err)
	}
	p.Release(second)
	p.Release(second)
}

func TestWithConn_ReleasesOnError(t *testing.T) {
	p := openTestProvider(t, 1)
	ctx := context.Background()
	boom := errors.New("boom")

	err := p.WithConn(ctx, func(c *Conn) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if err := p.WithConn(ctx, func(c *Conn) error { return nil }); err != nil {
		t.Fatalf("connection was not released: %v", err)
	}
	if inUse := p.SQLDB().Stats().InUse; inUse != 0 {
		t.Errorf("expected 0 connections in use, got %d", inUse)
	}
}

func TestMigrateAndQuery(t *testing.T) {
	p := openTestProvider(t, 2)
	ctx := context.Background()

	if err := p.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	if err := p.Ping(ctx); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}

	var n int64
	err := p.WithConn(ctx, func(c *Conn) error {
		return c.DB().Raw("SELECT COUNT(*) FROM appointments").Scan(&n).Error
	})
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty table, got %d rows", n)
	}
}

func TestOpen_ReportsDriver(t *testing.T) {
	p := openTestProvider(t, 1)
	if p.Driver() != DriverSQLite {
		t.Errorf("expected %s, got %s", DriverSQLite, p.Driver())
	}
}
