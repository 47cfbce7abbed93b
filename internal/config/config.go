package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings. Everything is explicit: the
// explainer receives a Config at construction time, no package-level state.
type Config struct {
	// LLM provider selection: "gemini", "openai"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// API configuration
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Cache configuration
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// History configuration
	History HistoryConfig `yaml:"history" mapstructure:"history"`

	// Request limits
	Limits LimitsConfig `yaml:"limits" mapstructure:"limits"`

	// GitHub configuration (used for explaining files fetched from GitHub)
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`

	// Path to a YAML file of custom comment rules (optional)
	RulesFile string `yaml:"rules_file" mapstructure:"rules_file"`
}

type APIConfig struct {
	GeminiKey      string `yaml:"gemini_key" mapstructure:"gemini_key"`
	GeminiModel    string `yaml:"gemini_model" mapstructure:"gemini_model"`
	OpenAIKey      string `yaml:"openai_key" mapstructure:"openai_key"`
	OpenAIModel    string `yaml:"openai_model" mapstructure:"openai_model"`
	HuggingFaceKey string `yaml:"huggingface_key" mapstructure:"huggingface_key"`
	UseKeychain    bool   `yaml:"use_keychain" mapstructure:"use_keychain"`
}

type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Directory string        `yaml:"directory" mapstructure:"directory"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

type LimitsConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	MaxOutputTokens   int           `yaml:"max_output_tokens" mapstructure:"max_output_tokens"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type GitHubConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	RateLimit int    `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second
}

// Default returns default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Provider: "gemini",
		API: APIConfig{
			GeminiModel: "gemini-2.0-flash",
			OpenAIModel: "gpt-4o-mini",
			UseKeychain: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Directory: filepath.Join(homeDir, ".codexplain", "cache"),
			TTL:       24 * time.Hour,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(homeDir, ".codexplain", "history.db"),
		},
		Limits: LimitsConfig{
			RequestsPerMinute: 15,
			MaxOutputTokens:   1000,
			Timeout:           60 * time.Second,
		},
		GitHub: GitHubConfig{
			RateLimit: 10,
		},
	}
}

// Load loads configuration from file, environment, and keychain.
// Precedence for API keys: environment variable > keychain > config file.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("provider", cfg.Provider)
	v.SetDefault("api", cfg.API)
	v.SetDefault("cache", cfg.Cache)
	v.SetDefault("history", cfg.History)
	v.SetDefault("limits", cfg.Limits)
	v.SetDefault("github", cfg.GitHub)

	v.SetEnvPrefix("CODEXPLAIN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".codexplain")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".codexplain"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine, defaults apply.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies environment variable and keychain overrides
func applyEnvOverrides(cfg *Config) {
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.Provider = provider
	}

	km := NewKeyringManager()

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.API.GeminiKey = key
	} else if cfg.API.GeminiKey == "" && cfg.API.UseKeychain {
		if key, err := km.GetKey(KeyringGeminiItem); err == nil && key != "" {
			cfg.API.GeminiKey = key
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.API.OpenAIKey = key
	} else if cfg.API.OpenAIKey == "" && cfg.API.UseKeychain {
		if key, err := km.GetKey(KeyringOpenAIItem); err == nil && key != "" {
			cfg.API.OpenAIKey = key
		}
	}

	if key := os.Getenv("HUGGINGFACE_API_KEY"); key != "" {
		cfg.API.HuggingFaceKey = key
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if rateLimit := os.Getenv("GITHUB_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			cfg.GitHub.RateLimit = n
		}
	}
}

// Save writes the config to the given path as YAML.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// 0600: the file may hold API keys when the keychain is unavailable.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath returns the standard config file location
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".codexplain", "config.yaml")
}

// MaskAPIKey returns a masked version of an API key for display
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
