package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/availability"
	"github.com/BruksfildServices01/barber-booking/internal/cart"
	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/infra/square"
	"github.com/BruksfildServices01/barber-booking/internal/logging"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	sessionIdleTTL  = time.Hour
	catalogTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger("barber-booking", cfg.LogLevel)
	loc := timezone.Location(cfg.BusinessTimezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	db := dbpkg.NewDB(cfg)

	store, closeStore := newStore(ctx, cfg, db)
	defer closeStore()

	provider := square.NewClient(square.Config{
		BaseURL:     cfg.Square.BaseURL,
		AccessToken: cfg.Square.AccessToken,
		APIVersion:  cfg.Square.APIVersion,
		LocationID:  cfg.Square.LocationID,
	}, nil, logger)

	snapshot := catalog.NewSnapshot(
		provider,
		infraRepo.NewMemberOverrideGormRepository(db),
		logger,
	)
	if err := snapshot.Refresh(ctx); err != nil {
		logger.Warn("initial catalog load failed", "err", err)
	}

	tracker := availability.NewTracker()
	carts := cart.NewManager(store, time.Duration(cfg.CartTTLHours)*time.Hour, logger)
	dispatcher := audit.NewDispatcher(audit.New(db), logger)

	// ======================================================
	// ⏰ JOBS
	// ======================================================
	scheduler := cron.New()

	if _, err := snapshot.Schedule(scheduler, cfg.CatalogRefreshCron, catalogTimeout); err != nil {
		log.Fatalf("invalid CATALOG_REFRESH_CRON %q: %v", cfg.CatalogRefreshCron, err)
	}

	if _, err := scheduler.AddFunc("@every 10m", func() {
		cutoff := time.Now().Add(-sessionIdleTTL)
		logger.Debug("session sweep",
			"availability", tracker.Sweep(cutoff),
			"carts", carts.Sweep(cutoff),
		)
	}); err != nil {
		log.Fatalf("failed to schedule session sweep: %v", err)
	}

	if kv, ok := store.(*infraRepo.KVGormRepository); ok {
		if _, err := scheduler.AddFunc("@hourly", func() {
			n, err := kv.PurgeExpired(context.Background())
			if err != nil {
				logger.Warn("kv purge failed", "err", err)
				return
			}
			logger.Debug("kv purge", "deleted", n)
		}); err != nil {
			log.Fatalf("failed to schedule kv purge: %v", err)
		}
	}

	scheduler.Start()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"catalog_loaded_at": snapshot.RefreshedAt(),
		})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Provider: provider,
		Store:    store,
		Snapshot: snapshot,
		Tracker:  tracker,
		Carts:    carts,
		Audit:    dispatcher,
		Signer: middleware.NewSessionSigner(
			cfg.SessionSecret,
			0,
			cfg.SessionSecure,
		),
		Location: loc,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "err", err)
	}
	<-scheduler.Stop().Done()

	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("audit queue not drained", "err", err)
	}
}

// newStore picks the key-value store behind carts and confirmations.
func newStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (domain.KeyValueStore, func()) {
	switch cfg.StoreDriver {
	case config.StoreDriverRedis:
		rdb, err := infraRepo.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		return infraRepo.NewKVRedisRepository(rdb), func() { _ = rdb.Close() }

	case config.StoreDriverMemory:
		return infraRepo.NewKVMemoryRepository(), func() {}

	default:
		return infraRepo.NewKVGormRepository(db), func() {}
	}
}
