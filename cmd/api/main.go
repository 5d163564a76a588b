package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/telemetry"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔭 TELEMETRIA
	// ======================================================
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSampleRatio,
	})
	if err != nil {
		return err
	}

	// ======================================================
	// 🗄️ BANCO
	// ======================================================
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}

	deps := routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Metrics: metrics.New(cfg.ServiceName),
		Clock:   ucAppointment.NewClock(timezone.Location(cfg.Timezone)),
	}

	// ======================================================
	// ⚡ REDIS (cache + rate limit), opcional
	// ======================================================
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, continuing without cache", "addr", cfg.RedisAddr, "err", err)
		}
		cancel()

		deps.Redis = rdb
		deps.Cache = cache.NewAvailabilityRedisCache(rdb, cfg.Scheduling.CacheTTL())
	}

	// ======================================================
	// 📣 EVENTOS + AUDITORIA
	// ======================================================
	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info("publishing appointment events", "topic", cfg.KafkaTopic)
	}
	deps.Audit = audit.NewDispatcher(log, audit.New(db), events.NewAuditSink(pub))

	// ======================================================
	// 🖼️ AVATARES (S3), opcional
	// ======================================================
	if cfg.S3.Enabled() {
		deps.Avatars = storage.NewS3AvatarStore(cfg.S3)
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.NewRouter(deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr(), "timezone", deps.Clock.Loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	// ======================================================
	// 🛑 SHUTDOWN
	// ======================================================
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "err", err)
	}
	if err := deps.Audit.Close(shutdownCtx); err != nil {
		log.Error("audit drain", "err", err)
	}
	if err := pub.Close(); err != nil {
		log.Error("event publisher close", "err", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", "err", err)
	}
	return nil
}
