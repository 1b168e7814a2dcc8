package di

import (
	"context"
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/adapters/enrich"
	"github.com/mikey/phishguard/internal/adapters/qr"
	"github.com/mikey/phishguard/internal/config"
	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/factory"
	"github.com/mikey/phishguard/internal/logging"
	"github.com/mikey/phishguard/internal/pipeline"
	"github.com/mikey/phishguard/internal/utils"
	"github.com/mikey/phishguard/internal/whitelist"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Analyst provider flags
	Provider    string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Classifier model flags
	MessageModelPath string
	URLModelPath     string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Analyst provider flags
	flag.StringVar(&flags.Provider, "provider", "mock", "Semantic analyst provider (mock, bedrock, gemini, openai)")
	flag.IntVar(&flags.MaxTokens, "max-tokens", 300, "Maximum tokens for analyst response")
	flag.Float64Var(&flags.Temperature, "temperature", 0.0, "Temperature for analyst generation")
	flag.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for analyst generation")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 4096, "Maximum text size to send to the analyst")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4o-mini", "OpenAI model name")

	// Classifier model flags
	flag.StringVar(&flags.MessageModelPath, "message-model", "", "Path to message classifier weights JSON")
	flag.StringVar(&flags.URLModelPath, "url-model", "", "Path to URL classifier weights JSON")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input text file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewAnalystFactory); err != nil {
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

	// Register domain reputation enricher
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.DomainReputation {
		enrichCfg := cfg.GetEnrichment()
		return enrich.New(enrichCfg.WhoisTimeout, enrichCfg.ProbeTimeout, logger)
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

	// Register analysis service with no reputation cache
	if err := container.Provide(func(
		oracle core.ProbabilityOracle,
		analyst core.SemanticAnalyst,
		matcher core.BrandMatcher,
		reputation core.DomainReputation,
		decoder core.QRDecoder,
		cfg *config.Config,
		logger *zap.Logger,
	) *pipeline.Service {
		return pipeline.New(
			oracle,
			analyst,
			matcher,
			reputation,
			nil, // No cache for CLI
			core.CacheTTL{}, // Cache disabled
			decoder,
			whitelist.New(cfg.GetStringSlice("trusted.domains"), logger),
			cfg.GetEnrichment().FollowRedirects,
			logger,
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("cli.verbose", flags.Verbose)

	// Set analyst provider
	v.Set("llm.provider", flags.Provider)

	// Set provider-specific configuration
	switch flags.Provider {
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
		v.Set("bedrock.top_p", flags.TopP)
		v.Set("bedrock.max_body_size", flags.MaxBodySize)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
		v.Set("gemini.top_p", flags.TopP)
		v.Set("gemini.max_body_size", flags.MaxBodySize)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
		v.Set("openai.max_body_size", flags.MaxBodySize)
	}

	// Set classifier model paths
	v.Set("model.message_path", flags.MessageModelPath)
	v.Set("model.url_path", flags.URLModelPath)

	return config.NewFromViper(v)
}
