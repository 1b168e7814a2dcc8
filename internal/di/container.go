package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/adapters/enrich"
	"github.com/mikey/phishguard/internal/adapters/httpapi"
	"github.com/mikey/phishguard/internal/adapters/qr"
	"github.com/mikey/phishguard/internal/config"
	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/factory"
	"github.com/mikey/phishguard/internal/logging"
	"github.com/mikey/phishguard/internal/pipeline"
	"github.com/mikey/phishguard/internal/utils"
	"github.com/mikey/phishguard/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewAnalystFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewMatcherFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewOracleFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register semantic analyst
	if err := container.Provide(func(f *factory.AnalystFactory) (core.SemanticAnalyst, error) {
		return f.CreateAnalyst()
	}); err != nil {
		return nil, err
	}

	// Register probability oracle
	if err := container.Provide(func(f *factory.OracleFactory) core.ProbabilityOracle {
		return f.CreateOracle()
	}); err != nil {
		return nil, err
	}

	// Register brand matcher
	if err := container.Provide(func(f *factory.MatcherFactory) core.BrandMatcher {
		return f.CreateMatcher(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register reputation cache and policy
	if err := container.Provide(func(f *factory.CacheFactory) (core.ReputationCache, error) {
		return f.CreateReputationCache()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheTTL, error) {
		return f.GetCachePolicy()
	}); err != nil {
		return nil, err
	}

	// Register domain reputation enricher
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.DomainReputation {
		enrichCfg := cfg.GetEnrichment()
		return enrich.New(enrichCfg.WhoisTimeout, enrichCfg.ProbeTimeout, logger)
	}); err != nil {
		return nil, err
	}

	// Register redirect following flag
	if err := container.Provide(func(cfg *config.Config) bool {
		return cfg.GetEnrichment().FollowRedirects
	}); err != nil {
		return nil, err
	}

	// Register QR decoder
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.QRDecoder, error) {
		timeout, err := cfg.GetDuration("qr.timeout")
		if err != nil {
			return nil, err
		}
		return qr.NewDecoder(cfg.GetString("qr.remote_endpoint"), timeout, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register trusted domains
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Whitelist {
		return whitelist.New(cfg.GetStringSlice("trusted.domains"), logger)
	}); err != nil {
		return nil, err
	}

	// Register analysis service
	if err := container.Provide(pipeline.New); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(service *pipeline.Service, cfg *config.Config, logger *zap.Logger) *httpapi.Server {
		return httpapi.NewServer(service, cfg.GetString("server.listen_address"), logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
