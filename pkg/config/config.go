package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/nikogura/folio/pkg/llm"
	"github.com/pkg/errors"
)

const (
	// DefaultListen is the address the preview server binds to.
	DefaultListen = ":8080"
	// DefaultSessionTTL is how long an idle form session is kept.
	DefaultSessionTTL = 24 * time.Hour
	// DefaultOutputDir is where generated documents are written.
	DefaultOutputDir = "./output"
)

// Config represents the application configuration.
type Config struct {
	AI       AIConfig      `json:"ai"`
	Pandoc   PandocConfig  `json:"pandoc"`
	Server   ServerConfig  `json:"server"`
	Defaults DefaultConfig `json:"defaults"`
	LogLevel string        `json:"log_level,omitempty" env:"FOLIO_LOG_LEVEL"`
}

// AIConfig selects the content generation provider.
type AIConfig struct {
	Provider string `json:"provider,omitempty" env:"FOLIO_AI_PROVIDER"`
	APIKey   string `json:"api_key,omitempty" env:"FOLIO_AI_API_KEY"`
	Model    string `json:"model,omitempty" env:"FOLIO_AI_MODEL"`
}

// PandocConfig holds pandoc-related configuration. All fields are optional.
type PandocConfig struct {
	TemplatePath string `json:"template_path,omitempty" env:"FOLIO_PANDOC_TEMPLATE"`
	ClassFile    string `json:"class_file,omitempty" env:"FOLIO_PANDOC_CLASS"`
	Engine       string `json:"engine,omitempty" env:"FOLIO_PANDOC_ENGINE"`
}

// ServerConfig holds settings for the preview server.
type ServerConfig struct {
	Listen        string `json:"listen,omitempty" env:"FOLIO_LISTEN"`
	RedisAddr     string `json:"redis_addr,omitempty" env:"FOLIO_REDIS_ADDR"`
	RedisPassword string `json:"redis_password,omitempty" env:"FOLIO_REDIS_PASSWORD"`
	RedisDB       int    `json:"redis_db,omitempty" env:"FOLIO_REDIS_DB"`
	// SessionTTL is a Go duration string such as "24h".
	SessionTTL string `json:"session_ttl,omitempty" env:"FOLIO_SESSION_TTL"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir,omitempty" env:"FOLIO_OUTPUT_DIR"`
}

// DefaultPath returns $HOME/.folio/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}

	path = filepath.Join(homeDir, ".folio", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
// With an empty configPath the default location is used, and a missing
// file there is not an error.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'folio init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = env.Parse(&cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to parse environment")
		return cfg, err
	}

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() (err error) {
	switch c.AI.Provider {
	case "":
		c.AI.Provider = llm.ProviderGemini
	case llm.ProviderGemini, llm.ProviderAnthropic:
	default:
		err = errors.Errorf("unknown ai.provider %q (want %s or %s)", c.AI.Provider, llm.ProviderGemini, llm.ProviderAnthropic)
		return err
	}

	if c.Server.SessionTTL != "" {
		_, err = time.ParseDuration(c.Server.SessionTTL)
		if err != nil {
			err = errors.Wrapf(err, "invalid server.session_ttl %q", c.Server.SessionTTL)
			return err
		}
	}

	if c.Server.RedisDB < 0 {
		err = errors.New("server.redis_db must not be negative")
		return err
	}

	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}

	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = DefaultOutputDir
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	return err
}

// SessionTTL returns the configured session lifetime or the default.
func (c *Config) SessionTTL() (ttl time.Duration) {
	ttl = DefaultSessionTTL
	if parsed, err := time.ParseDuration(c.Server.SessionTTL); err == nil && parsed > 0 {
		ttl = parsed
	}
	return ttl
}

// NewLLMClient builds a content generation client from the AI section.
func (c *Config) NewLLMClient() (client *llm.Client) {
	client = llm.NewProviderClient(c.AI.Provider, c.AI.APIKey, c.AI.Model)
	return client
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		AI: AIConfig{
			Provider: llm.ProviderGemini,
			APIKey:   "",
			Model:    llm.GeminiModel,
		},
		// Pandoc template and class stay unset; pandoc's default LaTeX
		// template is used until the user points these at real files.
		Pandoc: PandocConfig{},
		Server: ServerConfig{
			Listen:     DefaultListen,
			SessionTTL: DefaultSessionTTL.String(),
		},
		Defaults: DefaultConfig{
			OutputDir: DefaultOutputDir,
		},
		LogLevel: "info",
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
