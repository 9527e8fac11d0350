package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/adapters/mailer"
	"github.com/spoorthi/outreach-ai/internal/adapters/scraper"
	"github.com/spoorthi/outreach-ai/internal/adapters/sheet"
	"github.com/spoorthi/outreach-ai/internal/adapters/verify"
	"github.com/spoorthi/outreach-ai/internal/adapters/website"
	"github.com/spoorthi/outreach-ai/internal/config"
	"github.com/spoorthi/outreach-ai/internal/core"
	"github.com/spoorthi/outreach-ai/internal/exclusion"
	"github.com/spoorthi/outreach-ai/internal/factory"
	"github.com/spoorthi/outreach-ai/internal/logging"
)

// BuildContainer creates and configures a dependency injection container
// for the full pipeline application
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
	if err := container.Provide(factory.NewGeneratorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSourcesFactory); err != nil {
		return nil, err
	}

	// Register text generator
	if err := container.Provide(func(f *factory.GeneratorFactory) (core.TextGenerator, error) {
		return f.CreateGenerator()
	}); err != nil {
		return nil, err
	}

	// Register run store
	if err := container.Provide(func(f *factory.StoreFactory) (core.RunStore, error) {
		return f.CreateRunStore()
	}); err != nil {
		return nil, err
	}

	// Register directory sources
	if err := container.Provide(func(f *factory.SourcesFactory) []core.DirectorySource {
		return f.CreateDirectorySources()
	}); err != nil {
		return nil, err
	}

	// Register location exclusion checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *exclusion.Checker {
		locations := cfg.GetExclusion().Locations
		if len(locations) > 0 {
			logger.Info("Loaded excluded locations", zap.Strings("locations", locations))
		}
		return exclusion.NewChecker(locations, logger)
	}); err != nil {
		return nil, err
	}

	// Register company source
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.CompanySource {
		sheetConfig := cfg.GetSheet()
		return sheet.NewReader(sheetConfig.Path, sheetConfig.SkipRows, logger)
	}); err != nil {
		return nil, err
	}

	// Register contact scraper
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.ContactScraper, error) {
		scraperConfig, err := cfg.GetScraper()
		if err != nil {
			return nil, err
		}
		return scraper.NewScraper(
			scraperConfig.SearchTerms,
			scraperConfig.Headless,
			scraperConfig.PageTimeout,
			scraperConfig.UserDataDir,
			logger,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register contact ranker. Known company names are read once from the
	// sheet so listings named after the company are not mistaken for people.
	if err := container.Provide(func(companies core.CompanySource, logger *zap.Logger) (*core.ContactRanker, error) {
		records, err := companies.ReadCompanies()
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(records))
		for _, record := range records {
			names = append(names, record.Name)
		}
		return core.NewContactRanker(names, logger), nil
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

	// Register message composer
	if err := container.Provide(func(
		generator core.TextGenerator,
		cfg *config.Config,
		logger *zap.Logger,
	) *core.MessageComposer {
		return core.NewMessageComposer(generator, cfg.GetSender().Name, logger)
	}); err != nil {
		return nil, err
	}

	// Register resume matcher
	if err := container.Provide(func(
		generator core.TextGenerator,
		cfg *config.Config,
		logger *zap.Logger,
	) *core.ResumeMatcher {
		resumeConfig := cfg.GetResume()
		var analyzer core.WebsiteAnalyzer
		if resumeConfig.AnalyzeWebsite {
			analyzer = website.NewAnalyzer(logger)
		}
		return core.NewResumeMatcher(resumeConfig.Dir, generator, analyzer, logger)
	}); err != nil {
		return nil, err
	}

	// Register mail sender
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.MailSender {
		senderConfig := cfg.GetSender()
		return mailer.NewMailer(
			senderConfig.Name,
			senderConfig.Address,
			senderConfig.Password,
			senderConfig.SMTPHost,
			senderConfig.SMTPPort,
			logger,
		)
	}); err != nil {
		return nil, err
	}

	// Register company processor
	if err := container.Provide(func(
		exclusions *exclusion.Checker,
		contactScraper core.ContactScraper,
		ranker *core.ContactRanker,
		resolver *core.EmailResolver,
		composer *core.MessageComposer,
		resumes *core.ResumeMatcher,
		sender core.MailSender,
		runStore core.RunStore,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.CompanyProcessor, error) {
		pipelineConfig, err := cfg.GetPipeline()
		if err != nil {
			return nil, err
		}
		opts := core.ProcessorOptions{
			ContactPauseMin: pipelineConfig.ContactPauseMin,
			ContactPauseMax: pipelineConfig.ContactPauseMax,
		}
		return core.NewCompanyProcessor(
			exclusions, contactScraper, ranker, resolver, composer, resumes,
			sender, runStore, opts, logger,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register pipeline runner
	if err := container.Provide(func(
		companies core.CompanySource,
		processor *core.CompanyProcessor,
		exclusions *exclusion.Checker,
		runStore core.RunStore,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.PipelineRunner, error) {
		pipelineConfig, err := cfg.GetPipeline()
		if err != nil {
			return nil, err
		}
		opts := core.RunnerOptions{
			CompanyPauseMin: pipelineConfig.CompanyPauseMin,
			CompanyPauseMax: pipelineConfig.CompanyPauseMax,
		}
		return core.NewPipelineRunner(companies, processor, exclusions, runStore, opts, logger), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
