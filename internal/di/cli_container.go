package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/adapters/verify"
	"github.com/spoorthi/outreach-ai/internal/config"
	"github.com/spoorthi/outreach-ai/internal/core"
	"github.com/spoorthi/outreach-ai/internal/factory"
	"github.com/spoorthi/outreach-ai/internal/logging"
)

// CLIFlags contains all command line flags for the email-finder CLI
type CLIFlags struct {
	// Person flags
	FullName string
	Domain   string

	// Directory source flags
	HunterAPIKey string
	ApolloAPIKey string

	// Probe flags
	Verify        bool
	VerifyTimeout string

	// Output flags
	JSONOutput bool
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	flag.StringVar(&flags.FullName, "name", "", "Full name of the person (e.g. \"Jane Doe\")")
	flag.StringVar(&flags.Domain, "domain", "", "Company domain or website URL")

	flag.StringVar(&flags.HunterAPIKey, "hunter-api-key", "", "API key for Hunter.io")
	flag.StringVar(&flags.ApolloAPIKey, "apollo-api-key", "", "API key for Apollo.io")

	flag.BoolVar(&flags.Verify, "verify", true, "Probe candidate addresses over SMTP")
	flag.StringVar(&flags.VerifyTimeout, "verify-timeout", "10s", "Timeout per SMTP probe")

	flag.BoolVar(&flags.JSONOutput, "json", false, "Print the candidate set as JSON")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container
// for the email-finder CLI
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
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register directory sources
	if err := container.Provide(factory.NewSourcesFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.SourcesFactory) []core.DirectorySource {
		return f.CreateDirectorySources()
	}); err != nil {
		return nil, err
	}

	// Register deliverability probe
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.DeliverabilityProbe, error) {
		verifyConfig, err := cfg.GetVerify()
		if err != nil {
			return nil, err
		}
		return verify.NewProbe(verifyConfig.Enabled, verifyConfig.Timeout, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register email resolver
	if err := container.Provide(func(
		sources []core.DirectorySource,
		probe core.DeliverabilityProbe,
		logger *zap.Logger,
	) *core.EmailResolver {
		return core.NewEmailResolver(sources, probe, core.NetMXChecker{}, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("hunter.api_key", flags.HunterAPIKey)
	v.Set("hunter.base_url", "https://api.hunter.io/v2")
	v.Set("apollo.api_key", flags.ApolloAPIKey)
	v.Set("apollo.base_url", "https://api.apollo.io/v1")
	v.Set("directory.requests_per_second", 1.0)

	v.Set("verify.enabled", flags.Verify)
	v.Set("verify.timeout", flags.VerifyTimeout)

	return config.NewFromViper(v)
}
