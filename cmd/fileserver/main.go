package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concurrent-fileserver/fileserver"
	"concurrent-fileserver/fileserver/application"
	"concurrent-fileserver/fileserver/domain"
	"concurrent-fileserver/fileserver/infra"
	"concurrent-fileserver/logging"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// .env é opcional; variáveis já exportadas têm precedência
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Get().Warn("failed to load .env", zap.Error(err))
	}

	cfg, err := readConfig(os.Args[1:])
	if err != nil {
		logging.Get().Fatal("config error", zap.Error(err))
	}

	log := logging.Init(cfg.appEnv, cfg.logLevel, cfg.logFormat)
	defer logging.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	admitter := newAdmitter(ctx, cfg)
	hits := infra.NewHitCounter(cfg.discipline, cfg.counterGap)

	memStats := infra.NewMemoryStats(infra.WithTrackClients(cfg.statsTrackClients))
	stats := infra.MultiStats{memStats}

	if cfg.statsRedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		pingCancel()
		if err != nil {
			log.Fatal("redis stats ping error", zap.String("addr", cfg.statsRedisAddr), zap.Error(err))
		}

		stats = append(stats, infra.NewRedisStats(
			rdb,
			infra.WithStatsPrefix(cfg.statsRedisPrefix),
			infra.WithStatsTTL(cfg.statsRedisTTL),
			infra.WithStatsTrackClients(cfg.statsTrackClients),
		))
	}

	if cfg.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		promStats, err := infra.NewPrometheusStats(reg)
		if err != nil {
			log.Fatal("metrics registration error", zap.Error(err))
		}
		stats = append(stats, promStats)
		go serveMetrics(ctx, cfg.metricsAddr, reg, log)
	}

	state := application.NewState(admitter, hits, stats)

	srv := fileserver.New(fileserver.Options{
		Root:                cfg.root,
		State:               state,
		Delay:               cfg.delay,
		AllowedExts:         cfg.allowedExts,
		TrustXForwardedFor:  cfg.trustXFF,
		RetryAfter:          cfg.retryAfter,
		AddRateLimitHeaders: cfg.addHeaders,
		MaxConns:            cfg.maxConns,
		Sequential:          cfg.sequential,
		AcquireTimeout:      cfg.acquireTimeout,
		Logger:              log,
	})

	log.Info("fileserver config",
		zap.String("counters", cfg.discipline.String()),
		zap.Duration("counterGap", cfg.counterGap),
		zap.Duration("delay", cfg.delay),
		zap.Int("rateLimit", cfg.rateLimit),
		zap.Duration("window", cfg.window),
		zap.String("rateAlgo", cfg.rateAlgo),
		zap.Int("maxConns", cfg.maxConns),
		zap.Bool("sequential", cfg.sequential),
		zap.Strings("allowedExts", cfg.allowedExts))

	if err := srv.ListenAndServe(ctx, cfg.listenAddr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}

	total := memStats.Total()
	log.Info("shutdown",
		zap.Int64("admitted", total.Allowed),
		zap.Int64("denied", total.Denied),
		zap.Int("resources", len(hits.Snapshot())))
}

func newAdmitter(ctx context.Context, cfg config) domain.Admitter {
	if cfg.rateAlgo == "token" {
		tb := infra.NewTokenBuckets(cfg.rateLimit, cfg.window)
		tb.StartJanitor(ctx)
		return tb
	}
	sw := infra.NewSlidingWindow(cfg.rateLimit, cfg.window)
	sw.StartJanitor(ctx)
	return sw
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server error", zap.Error(err))
	}
}
