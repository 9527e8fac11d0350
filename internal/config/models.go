package config

import "time"

// PipelineConfig represents the configuration for the pipeline runner
type PipelineConfig struct {
	ResultsDir      string
	CompanyPauseMin time.Duration
	CompanyPauseMax time.Duration
	ContactPauseMin time.Duration
	ContactPauseMax time.Duration
}

// ExclusionConfig represents the location exclusion configuration
type ExclusionConfig struct {
	Locations []string
}

// SheetConfig represents the company spreadsheet configuration
type SheetConfig struct {
	Path     string
	SkipRows int
}

// ScraperConfig represents the contact scraper configuration
type ScraperConfig struct {
	SearchTerms []string
	Headless    bool
	PageTimeout time.Duration
	UserDataDir string
}

// HunterConfig represents the Hunter.io directory source configuration
type HunterConfig struct {
	APIKey  string
	BaseURL string
}

// ApolloConfig represents the Apollo.io directory source configuration
type ApolloConfig struct {
	APIKey  string
	BaseURL string
}

// VerifyConfig represents the deliverability probe configuration
type VerifyConfig struct {
	Enabled bool
	Timeout time.Duration
}

// GeneratorConfig represents the text generation strategy configuration
type GeneratorConfig struct {
	UseLocal         bool
	FallbackProvider string
}

// OllamaConfig represents the configuration for the local Ollama generator
type OllamaConfig struct {
	BaseURL   string
	ModelName string
	Timeout   time.Duration
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// SenderConfig represents the outgoing mail identity and transport
type SenderConfig struct {
	Name     string
	Address  string
	Password string
	SMTPHost string
	SMTPPort int
}

// ResumeConfig represents the resume selection configuration
type ResumeConfig struct {
	Dir            string
	AnalyzeWebsite bool
}

// StoreConfig represents the run store configuration
type StoreConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// GetPipeline returns the pipeline configuration
func (c *Config) GetPipeline() (PipelineConfig, error) {
	companyMin, err := c.GetDuration("pipeline.company_pause_min")
	if err != nil {
		return PipelineConfig{}, err
	}
	companyMax, err := c.GetDuration("pipeline.company_pause_max")
	if err != nil {
		return PipelineConfig{}, err
	}
	contactMin, err := c.GetDuration("pipeline.contact_pause_min")
	if err != nil {
		return PipelineConfig{}, err
	}
	contactMax, err := c.GetDuration("pipeline.contact_pause_max")
	if err != nil {
		return PipelineConfig{}, err
	}
	return PipelineConfig{
		ResultsDir:      c.GetString("pipeline.results_dir"),
		CompanyPauseMin: companyMin,
		CompanyPauseMax: companyMax,
		ContactPauseMin: contactMin,
		ContactPauseMax: contactMax,
	}, nil
}

// GetExclusion returns the exclusion configuration
func (c *Config) GetExclusion() ExclusionConfig {
	return ExclusionConfig{
		Locations: c.GetStringSlice("exclusion.locations"),
	}
}

// GetSheet returns the spreadsheet configuration
func (c *Config) GetSheet() SheetConfig {
	return SheetConfig{
		Path:     c.GetString("sheet.path"),
		SkipRows: c.GetInt("sheet.skip_rows"),
	}
}

// GetScraper returns the scraper configuration
func (c *Config) GetScraper() (ScraperConfig, error) {
	timeout, err := c.GetDuration("scraper.page_timeout")
	if err != nil {
		return ScraperConfig{}, err
	}
	return ScraperConfig{
		SearchTerms: c.GetStringSlice("scraper.search_terms"),
		Headless:    c.GetBool("scraper.headless"),
		PageTimeout: timeout,
		UserDataDir: c.GetString("scraper.user_data_dir"),
	}, nil
}

// GetHunter returns the Hunter.io configuration
func (c *Config) GetHunter() HunterConfig {
	return HunterConfig{
		APIKey:  c.GetString("hunter.api_key"),
		BaseURL: c.GetString("hunter.base_url"),
	}
}

// GetApollo returns the Apollo.io configuration
func (c *Config) GetApollo() ApolloConfig {
	return ApolloConfig{
		APIKey:  c.GetString("apollo.api_key"),
		BaseURL: c.GetString("apollo.base_url"),
	}
}

// GetVerify returns the deliverability probe configuration
func (c *Config) GetVerify() (VerifyConfig, error) {
	timeout, err := c.GetDuration("verify.timeout")
	if err != nil {
		return VerifyConfig{}, err
	}
	return VerifyConfig{
		Enabled: c.GetBool("verify.enabled"),
		Timeout: timeout,
	}, nil
}

// GetGenerator returns the text generation strategy configuration
func (c *Config) GetGenerator() GeneratorConfig {
	return GeneratorConfig{
		UseLocal:         c.GetBool("generator.use_local"),
		FallbackProvider: c.GetString("generator.fallback_provider"),
	}
}

// GetOllama returns the Ollama configuration
func (c *Config) GetOllama() (OllamaConfig, error) {
	timeout, err := c.GetDuration("ollama.timeout")
	if err != nil {
		return OllamaConfig{}, err
	}
	return OllamaConfig{
		BaseURL:   c.GetString("ollama.base_url"),
		ModelName: c.GetString("ollama.model_name"),
		Timeout:   timeout,
	}, nil
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetSender returns the mail sender configuration
func (c *Config) GetSender() SenderConfig {
	return SenderConfig{
		Name:     c.GetString("sender.name"),
		Address:  c.GetString("sender.address"),
		Password: c.GetString("sender.password"),
		SMTPHost: c.GetString("sender.smtp_host"),
		SMTPPort: c.GetInt("sender.smtp_port"),
	}
}

// GetResume returns the resume selection configuration
func (c *Config) GetResume() ResumeConfig {
	return ResumeConfig{
		Dir:            c.GetString("resume.dir"),
		AnalyzeWebsite: c.GetBool("resume.analyze_website"),
	}
}

// GetStore returns the run store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}
