package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-api/internal/audit"
	"github.com/salonhub/salon-api/internal/config"
	dbpkg "github.com/salonhub/salon-api/internal/db"
	"github.com/salonhub/salon-api/internal/logging"
	"github.com/salonhub/salon-api/internal/routes"
	"github.com/salonhub/salon-api/internal/store"
	"github.com/salonhub/salon-api/internal/timezone"
	"github.com/salonhub/salon-api/internal/validators"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	})

	if err := validators.Register(); err != nil {
		logging.Fatal().Err(err).Msg("failed to register validators")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// DATABASE
	// ======================================================
	db, err := dbpkg.Open(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database unreachable")
	}
	logging.Info().
		Str("driver", db.Driver()).
		Int("pool_size", cfg.Database.PoolSize).
		Msg("database connected")

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			logging.Fatal().Err(err).Msg("migration failed")
		}
	}

	s := store.New(db)
	dispatcher := audit.NewDispatcher(audit.New(s))

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Provider: db,
		Store:    s,
		Audit:    dispatcher,
		Clock:    timezone.NewClock(cfg.Salon.Timezone),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logging.Warn().Err(err).Msg("audit queue not drained")
	}
	if err := db.Close(); err != nil {
		logging.Error().Err(err).Msg("database close")
	}
}
