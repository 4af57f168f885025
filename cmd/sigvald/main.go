package main

import (
	"log"
	"time"

	"go.uber.org/zap"

	"sigval/internal/config"
	"sigval/internal/infra/cache"
	"sigval/internal/infra/codec"
	"sigval/internal/infra/db"
	httpinfra "sigval/internal/infra/http"
	"sigval/internal/infra/logging"
	"sigval/internal/infra/metrics"
	"sigval/internal/infra/policyfile"
	"sigval/internal/infra/ratelimit"
	"sigval/internal/infra/reportmem"
	"sigval/internal/usecase"
)

const memoryReportLimit = 10000

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	policies, err := policyfile.Load(cfg.PolicyFile, cfg.PolicyDir, logger)
	if err != nil {
		return err
	}
	if _, err := policies.Policy(cfg.DefaultPolicy); err != nil {
		return err
	}

	store, err := db.NewStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	if err := store.Migrate(); err != nil {
		return err
	}

	var reports usecase.ReportRepository = reportmem.New(memoryReportLimit)
	if store.DB != nil {
		reports = db.NewReportRepository(store.DB)
	}

	collector := metrics.NewCollector()
	validate := &usecase.ValidateDocument{
		Engine:        usecase.NewEngine(logger, cfg.ParallelSignatures),
		Policies:      policies,
		Reports:       reports,
		CacheTTL:      cfg.ReportCacheTTL(),
		Digests:       codec.Digester{},
		Metrics:       collector,
		Logger:        logger,
		DefaultPolicy: cfg.DefaultPolicy,
		Now:           time.Now,
	}
	if validate.CacheTTL > 0 {
		if validate.Cache, err = newReportCache(cfg, logger); err != nil {
			return err
		}
	}
	if cfg.RateLimitRequests > 0 {
		validate.Admission = &usecase.Admission{
			Limiter:    newRateLimiter(cfg, logger),
			Limit:      cfg.RateLimitRequests,
			Window:     cfg.RateLimitWindow(),
			FailClosed: cfg.RateLimitFailClosed,
			Logger:     logger,
		}
	}

	logger.Info("starting sigvald",
		zap.String("addr", cfg.HTTPAddr),
		zap.Strings("policies", policies.Names()),
		zap.Bool("parallel_signatures", cfg.ParallelSignatures))

	srv := httpinfra.NewServer(cfg, httpinfra.ServerDeps{
		Validate: validate,
		Policies: policies,
		Store:    store,
		Metrics:  collector,
		Logger:   logger,
	})
	return srv.Run()
}

func newReportCache(cfg config.Config, logger *zap.Logger) (usecase.ReportCache, error) {
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err == nil {
			return redisCache, nil
		}
		logger.Warn("redis report cache unavailable, using memory", zap.Error(err))
	}
	return cache.NewMemory(cfg.ReportCacheMaxEntries)
}

func newRateLimiter(cfg config.Config, logger *zap.Logger) usecase.RateLimiter {
	if cfg.RedisAddr != "" {
		limiter, err := ratelimit.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, nil)
		if err == nil {
			return limiter
		}
		logger.Warn("redis rate limiter unavailable, using memory", zap.Error(err))
	}
	return ratelimit.NewMemory(cfg.RateLimitMaxKeys, nil)
}
