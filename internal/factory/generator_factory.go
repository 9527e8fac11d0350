package factory

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/adapters/bedrock"
	"github.com/spoorthi/outreach-ai/internal/adapters/gemini"
	"github.com/spoorthi/outreach-ai/internal/adapters/ollama"
	"github.com/spoorthi/outreach-ai/internal/adapters/openai"
	"github.com/spoorthi/outreach-ai/internal/config"
	"github.com/spoorthi/outreach-ai/internal/core"
)

// GeneratorFactory creates text generators based on configuration.
// With generator.use_local enabled the local Ollama model is tried first
// and the configured hosted provider only serves as fallback.
type GeneratorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewGeneratorFactory creates a new generator factory
func NewGeneratorFactory(cfg *config.Config, logger *zap.Logger) *GeneratorFactory {
	return &GeneratorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateGenerator creates the configured generation chain
func (f *GeneratorFactory) CreateGenerator() (core.TextGenerator, error) {
	genConfig := f.cfg.GetGenerator()

	fallback, err := f.createProvider(genConfig.FallbackProvider)
	if err != nil {
		return nil, err
	}
	if !genConfig.UseLocal {
		return fallback, nil
	}

	ollamaConfig, err := f.cfg.GetOllama()
	if err != nil {
		return nil, fmt.Errorf("invalid ollama configuration: %w", err)
	}
	local := ollama.NewGenerator(ollamaConfig.BaseURL, ollamaConfig.ModelName, ollamaConfig.Timeout, f.logger)

	return &fallbackGenerator{
		primary:  local,
		fallback: fallback,
		logger:   f.logger,
	}, nil
}

// createProvider creates a hosted generator by provider name
func (f *GeneratorFactory) createProvider(provider string) (core.TextGenerator, error) {
	switch provider {
	case "openai":
		openaiConfig := f.cfg.GetOpenAI()
		return openai.NewGenerator(
			openaiConfig.APIKey,
			openaiConfig.ModelName,
			openaiConfig.MaxTokens,
			openaiConfig.Temperature,
			openaiConfig.TopP,
			f.logger,
		), nil
	case "gemini":
		geminiConfig := f.cfg.GetGemini()
		return gemini.NewGenerator(
			geminiConfig.APIKey,
			geminiConfig.ModelName,
			geminiConfig.MaxTokens,
			geminiConfig.Temperature,
			geminiConfig.TopP,
			f.logger,
		)
	case "bedrock":
		bedrockConfig := f.cfg.GetBedrock()
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(bedrockConfig.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		return bedrock.NewGenerator(
			bedrockruntime.NewFromConfig(awsCfg),
			bedrockConfig.ModelID,
			bedrockConfig.MaxTokens,
			bedrockConfig.Temperature,
			bedrockConfig.TopP,
			f.logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", provider)
	}
}

// fallbackGenerator tries the primary generator and falls back on error
type fallbackGenerator struct {
	primary  core.TextGenerator
	fallback core.TextGenerator
	logger   *zap.Logger
}

func (g *fallbackGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := g.primary.Generate(ctx, prompt)
	if err == nil && text != "" {
		return text, nil
	}
	g.logger.Warn("Primary generator failed, using fallback", zap.Error(err))
	return g.fallback.Generate(ctx, prompt)
}
