package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/outreach/")
	v.AddConfigPath("$HOME/.outreach")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("OUTREACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Pipeline defaults
	v.SetDefault("pipeline.results_dir", "outreach_results")
	v.SetDefault("pipeline.company_pause_min", "30s")
	v.SetDefault("pipeline.company_pause_max", "60s")
	v.SetDefault("pipeline.contact_pause_min", "2s")
	v.SetDefault("pipeline.contact_pause_max", "5s")

	// Exclusion defaults
	v.SetDefault("exclusion.locations", []string{"New York", "NY", "Midwest"})

	// Sheet defaults
	v.SetDefault("sheet.path", "data/companies.xlsx")
	v.SetDefault("sheet.skip_rows", 3)

	// Scraper defaults
	v.SetDefault("scraper.search_terms", []string{"CEO", "founder", "head of data", "recruiter"})
	v.SetDefault("scraper.headless", true)
	v.SetDefault("scraper.page_timeout", "30s")
	v.SetDefault("scraper.user_data_dir", "./linkedin-data")

	// Directory source defaults
	v.SetDefault("hunter.api_key", "")
	v.SetDefault("hunter.base_url", "https://api.hunter.io/v2")
	v.SetDefault("apollo.api_key", "")
	v.SetDefault("apollo.base_url", "https://api.apollo.io/v1")
	v.SetDefault("directory.requests_per_second", 1.0)

	// Deliverability probe defaults
	v.SetDefault("verify.enabled", true)
	v.SetDefault("verify.timeout", "10s")

	// Generator defaults
	v.SetDefault("generator.use_local", true)
	v.SetDefault("generator.fallback_provider", "openai")

	// Ollama defaults
	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model_name", "mistral:latest")
	v.SetDefault("ollama.timeout", "60s")

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-3.5-turbo")
	v.SetDefault("openai.max_tokens", 1000)
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("openai.top_p", 0.9)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 1000)
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.top_p", 0.9)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 1000)
	v.SetDefault("bedrock.temperature", 0.7)
	v.SetDefault("bedrock.top_p", 0.9)

	// Sender defaults
	v.SetDefault("sender.name", "Spoorthi")
	v.SetDefault("sender.address", "")
	v.SetDefault("sender.password", "")
	v.SetDefault("sender.smtp_host", "smtp.gmail.com")
	v.SetDefault("sender.smtp_port", 587)

	// Resume defaults
	v.SetDefault("resume.dir", "resumes")
	v.SetDefault("resume.analyze_website", true)

	// Store defaults
	v.SetDefault("store.type", "filesystem")
	v.SetDefault("store.sqlite_path", "outreach_results/outreach.db")
	v.SetDefault("store.mysql_dsn", "user:password@tcp(localhost:3306)/outreach")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
