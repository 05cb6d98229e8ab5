// Package config loads the service configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/pr-review-agent/internal/logger"
)

const (
	AuthModeApp   = "app"
	AuthModeToken = "token"

	ProviderGemini = "gemini"
	ProviderOllama = "ollama"

	defaultGeminiModel = "gemini-2.0-flash"
	defaultOllamaModel = "gemma3:latest"
)

// Config holds the application's configuration values.
type Config struct {
	Environment string
	Server      ServerConfig
	GitHub      GitHubConfig
	AI          AIConfig
	Logging     logger.Config
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host string
	Port string
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// GitHubConfig selects one authentication strategy for every GitHub call.
type GitHubConfig struct {
	AuthMode      string
	AppID         int64
	PrivateKey    []byte
	Token         string
	WebhookSecret string
	APIURL        string
}

// AIConfig configures the language model used for reviews.
type AIConfig struct {
	Provider        string
	GeminiAPIKey    string
	GeneratorModel  string
	OllamaHost      string
	Timeout         time.Duration
	ScanConcurrency int
}

// IsDevelopment reports whether the service runs in local development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads configuration from environment variables and a .env file
// in the working directory, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	return Load(".env")
}

// Option adjusts the configuration source before values are read.
type Option func(v *viper.Viper)

// WithOverride forces key to value, taking precedence over the environment
// and the .env file. Empty values are ignored.
func WithOverride(key, value string) Option {
	return func(v *viper.Viper) {
		if value != "" {
			v.Set(key, value)
		}
	}
}

// Load is LoadConfig with an explicit .env path. A missing file is not an error.
func Load(envFile string, opts ...Option) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", "3001")
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("LLM_TIMEOUT", "2m")
	v.SetDefault("SCAN_CONCURRENCY", 1)
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", envFile, err)
			}
		}
	}

	for _, opt := range opts {
		opt(v)
	}

	environment := strings.ToLower(v.GetString("ENVIRONMENT"))
	cfg := &Config{
		Environment: environment,
		Logging: logger.Config{
			Level:  firstNonEmpty(v.GetString("LOG_LEVEL"), defaultLogLevel(environment)),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
	}

	cfg.Server = ServerConfig{Host: "0.0.0.0", Port: v.GetString("SERVER_PORT")}
	if cfg.IsDevelopment() {
		cfg.Server.Host = "127.0.0.1"
	}
	if host := v.GetString("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}

	gh, err := loadGitHubConfig(v)
	if err != nil {
		return nil, err
	}
	cfg.GitHub = gh

	cfg.AI = loadAIConfig(v)
	if err := cfg.AI.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadGitHubConfig(v *viper.Viper) (GitHubConfig, error) {
	gh := GitHubConfig{
		AppID:         v.GetInt64("GITHUB_APP_ID"),
		Token:         firstNonEmpty(v.GetString("GITHUB_PERSONAL_ACCESS_TOKEN"), v.GetString("GITHUB_TOKEN")),
		WebhookSecret: v.GetString("GITHUB_WEBHOOK_SECRET"),
		APIURL:        v.GetString("GITHUB_API_URL"),
		AuthMode:      strings.ToLower(v.GetString("GITHUB_AUTH_MODE")),
	}
	if gh.AppID == 0 {
		gh.AppID = v.GetInt64("APP_ID")
	}

	if inline := v.GetString("GITHUB_PRIVATE_KEY"); inline != "" {
		gh.PrivateKey = []byte(DecodePrivateKey(inline))
	} else if path := v.GetString("GITHUB_PRIVATE_KEY_PATH"); path != "" {
		key, err := os.ReadFile(path)
		if err != nil {
			return GitHubConfig{}, fmt.Errorf("failed to read private key from %s: %w", path, err)
		}
		gh.PrivateKey = key
	}

	if gh.AuthMode == "" {
		gh.AuthMode = AuthModeToken
		if gh.AppID != 0 {
			gh.AuthMode = AuthModeApp
		}
	}

	return gh, gh.Validate()
}

func loadAIConfig(v *viper.Viper) AIConfig {
	provider := strings.ToLower(v.GetString("LLM_PROVIDER"))

	model := v.GetString("GENERATOR_MODEL_NAME")
	if model == "" {
		model = defaultGeminiModel
		if provider == ProviderOllama {
			model = defaultOllamaModel
		}
	}

	return AIConfig{
		Provider:        provider,
		GeminiAPIKey:    v.GetString("GEMINI_API_KEY"),
		GeneratorModel:  model,
		OllamaHost:      v.GetString("OLLAMA_HOST"),
		Timeout:         v.GetDuration("LLM_TIMEOUT"),
		ScanConcurrency: v.GetInt("SCAN_CONCURRENCY"),
	}
}

// Validate checks that the selected auth mode has the credentials it needs.
func (g GitHubConfig) Validate() error {
	switch g.AuthMode {
	case AuthModeApp:
		if g.AppID == 0 {
			return errors.New("GITHUB_APP_ID must be set for app authentication")
		}
		if len(g.PrivateKey) == 0 {
			return errors.New("GITHUB_PRIVATE_KEY or GITHUB_PRIVATE_KEY_PATH must be set for app authentication")
		}
	case AuthModeToken:
		if g.Token == "" {
			return errors.New("GITHUB_PERSONAL_ACCESS_TOKEN must be set when GitHub App credentials are not configured")
		}
	default:
		return fmt.Errorf("unsupported GITHUB_AUTH_MODE %q", g.AuthMode)
	}
	return nil
}

// Validate checks the language model settings.
func (a AIConfig) Validate() error {
	switch a.Provider {
	case ProviderGemini:
		if a.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY must be set for the gemini provider")
		}
	case ProviderOllama:
		if a.OllamaHost == "" {
			return errors.New("OLLAMA_HOST must be set for the ollama provider")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", a.Provider)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", a.Timeout)
	}
	if a.ScanConcurrency < 1 {
		return fmt.Errorf("SCAN_CONCURRENCY must be at least 1, got %d", a.ScanConcurrency)
	}
	return nil
}

// DecodePrivateKey turns literal "\n" sequences, as found in single-line
// environment values, back into newlines.
func DecodePrivateKey(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// defaultLogLevel is debug in development and info everywhere else.
func defaultLogLevel(environment string) string {
	if environment == "development" {
		return "debug"
	}
	return "info"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
