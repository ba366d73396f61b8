// Scribe is a small backend service for support tooling: it generates
// one-line titles for inquiries and drafts support replies grounded in
// similar past answers and a crawled help guide.
package main

import (
	"context"
	"time"

	scribeconfig "scribe/internal/config"
	"scribe/internal/draft"
	"scribe/internal/guide"
	"scribe/pkg/config"
	"scribe/pkg/llm"
	"scribe/pkg/logging"
	"scribe/pkg/middleware"
	"scribe/pkg/monitoring"
	"scribe/pkg/server"
	"scribe/pkg/version"
)

func main() {
	logger := logging.NewLoggerWithService("scribe")
	config.LoadEnv(logger)

	logger.WithFields(logging.Fields{
		"version": version.Version,
		"commit":  version.GitCommit,
	}).Info("Starting Scribe drafting service")

	cfg := scribeconfig.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}
	serviceToken := config.RequireEnv("SERVICE_TOKEN")

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize LLM provider")
	}
	logger.WithFields(logging.Fields{
		"provider": cfg.LLM.Provider,
		"model":    cfg.LLM.Model,
	}).Info("LLM provider ready")

	cacheCfg := guide.CacheConfig{
		Enabled: cfg.GuideEnabled,
		TTL:     cfg.GuideCacheTTL,
		RootURL: cfg.GuideRootURL,
		Logger:  logger,
	}
	if cfg.GuideEnabled {
		crawler, err := guide.NewCrawler(cfg.GuideRootURL,
			guide.WithLogger(logger),
			guide.WithMaxPages(cfg.GuideMaxPages),
			guide.WithFetchTimeout(cfg.GuideFetchTimeout),
		)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize guide crawler")
		}
		cacheCfg.Runner = crawler
	}
	cache := guide.NewCache(cacheCfg)

	if cfg.GuideEnabled {
		// Warm the cache in the background so the first draft request
		// does not pay for a full crawl.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			cache.RefreshIfExpired(ctx)
		}()
	} else {
		logger.Info("Guide context disabled")
	}

	health := monitoring.NewHealthChecker("scribe", version.Version)
	health.AddCheck("configuration", monitoring.ConfigurationHealthCheck(map[string]string{
		"SERVICE_TOKEN": serviceToken,
		"LLM_PROVIDER":  cfg.LLM.Provider,
		"LLM_MODEL":     cfg.LLM.Model,
	}))

	router := server.SetupRouter(logger, health)
	api := router.Group("/v1", middleware.ServiceAuthMiddleware(serviceToken))
	draft.RegisterRoutes(api, draft.NewHandler(provider, guide.NewBuilder(cache, logger), cache, logger))

	serverCfg := server.DefaultConfig("scribe", "8080")
	serverCfg.Port = cfg.Port
	if err := server.Start(serverCfg, router, logger); err != nil {
		logger.WithError(err).Fatal("Server terminated")
	}
}
