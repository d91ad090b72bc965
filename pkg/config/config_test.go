package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikogura/folio/pkg/llm"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"FOLIO_AI_PROVIDER", "FOLIO_AI_API_KEY", "FOLIO_AI_MODEL", "GEMINI_API_KEY",
		"FOLIO_PANDOC_TEMPLATE", "FOLIO_PANDOC_CLASS", "FOLIO_PANDOC_ENGINE",
		"FOLIO_LISTEN", "FOLIO_REDIS_ADDR", "FOLIO_REDIS_PASSWORD", "FOLIO_REDIS_DB",
		"FOLIO_SESSION_TTL", "FOLIO_OUTPUT_DIR", "FOLIO_LOG_LEVEL",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeConfig(t *testing.T, cfg Config) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	configPath := writeConfig(t, Config{
		AI: AIConfig{Provider: llm.ProviderAnthropic, APIKey: "test-key"},
		Pandoc: PandocConfig{
			TemplatePath: "test-template.latex",
			ClassFile:    "test-class.cls",
		},
		Server: ServerConfig{RedisAddr: "localhost:6379", SessionTTL: "2h"},
	})

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AI.APIKey != "test-key" {
		t.Errorf("Expected API key test-key, got %s", cfg.AI.APIKey)
	}

	if cfg.AI.Provider != llm.ProviderAnthropic {
		t.Errorf("Expected provider %s, got %s", llm.ProviderAnthropic, cfg.AI.Provider)
	}

	if cfg.Server.Listen != DefaultListen {
		t.Errorf("Expected default listen %s, got %s", DefaultListen, cfg.Server.Listen)
	}

	if cfg.Defaults.OutputDir != DefaultOutputDir {
		t.Errorf("Expected default output dir %s, got %s", DefaultOutputDir, cfg.Defaults.OutputDir)
	}

	if cfg.SessionTTL() != 2*time.Hour {
		t.Errorf("Expected session TTL 2h, got %s", cfg.SessionTTL())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)

	configPath := writeConfig(t, Config{
		AI:     AIConfig{APIKey: "file-key", Model: "file-model"},
		Server: ServerConfig{Listen: ":9000"},
	})

	t.Setenv("FOLIO_AI_API_KEY", "env-key")
	t.Setenv("FOLIO_LISTEN", ":9100")
	t.Setenv("FOLIO_REDIS_DB", "3")
	t.Setenv("FOLIO_OUTPUT_DIR", "/tmp/folio")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AI.APIKey != "env-key" {
		t.Errorf("Expected env API key, got %s", cfg.AI.APIKey)
	}

	if cfg.AI.Model != "file-model" {
		t.Errorf("Expected file model to survive, got %s", cfg.AI.Model)
	}

	if cfg.Server.Listen != ":9100" {
		t.Errorf("Expected listen :9100, got %s", cfg.Server.Listen)
	}

	if cfg.Server.RedisDB != 3 {
		t.Errorf("Expected redis db 3, got %d", cfg.Server.RedisDB)
	}

	if cfg.Defaults.OutputDir != "/tmp/folio" {
		t.Errorf("Expected output dir /tmp/folio, got %s", cfg.Defaults.OutputDir)
	}
}

func TestLoadGeminiKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load(writeConfig(t, Config{}))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AI.APIKey != "gemini-key" {
		t.Errorf("Expected GEMINI_API_KEY fallback, got %q", cfg.AI.APIKey)
	}

	if cfg.AI.Provider != llm.ProviderGemini {
		t.Errorf("Expected default provider %s, got %s", llm.ProviderGemini, cfg.AI.Provider)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error loading nonexistent config, got nil")
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected missing default config to be tolerated, got %v", err)
	}

	if cfg.Server.Listen != DefaultListen {
		t.Errorf("Expected default listen, got %s", cfg.Server.Listen)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	err := os.WriteFile(path, []byte("{not json"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err = Load(path)
	if err == nil {
		t.Error("Expected error loading malformed config, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name:      "empty config takes defaults",
			config:    Config{},
			wantError: false,
		},
		{
			name: "anthropic provider",
			config: Config{
				AI: AIConfig{Provider: llm.ProviderAnthropic},
			},
			wantError: false,
		},
		{
			name: "unknown provider",
			config: Config{
				AI: AIConfig{Provider: "openai"},
			},
			wantError: true,
		},
		{
			name: "bad session ttl",
			config: Config{
				Server: ServerConfig{SessionTTL: "forever"},
			},
			wantError: true,
		},
		{
			name: "negative redis db",
			config: Config{
				Server: ServerConfig{RedisDB: -1},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestSessionTTLDefault(t *testing.T) {
	cfg := Config{}
	if cfg.SessionTTL() != DefaultSessionTTL {
		t.Errorf("Expected default TTL %s, got %s", DefaultSessionTTL, cfg.SessionTTL())
	}
}

func TestNewLLMClient(t *testing.T) {
	cfg := Config{AI: AIConfig{Provider: llm.ProviderAnthropic, APIKey: "k"}}

	client := cfg.NewLLMClient()
	if client.Provider() != llm.ProviderAnthropic {
		t.Errorf("Expected provider %s, got %s", llm.ProviderAnthropic, client.Provider())
	}

	if !client.Configured() {
		t.Error("Expected client with key to be configured")
	}
}

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "folio", "config.json")

	err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if cfg.Defaults.OutputDir == "" {
		t.Error("Default output dir was not set")
	}

	if cfg.AI.Provider != llm.ProviderGemini {
		t.Errorf("Expected default provider %s, got %s", llm.ProviderGemini, cfg.AI.Provider)
	}

	if cfg.Pandoc.TemplatePath != "" || cfg.Pandoc.ClassFile != "" {
		t.Errorf("Expected empty pandoc paths, got template %q and class %q", cfg.Pandoc.TemplatePath, cfg.Pandoc.ClassFile)
	}

	entries, err := os.ReadDir(filepath.Dir(configPath))
	if err != nil {
		t.Fatalf("Failed to read config dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only config.json in config dir, got %d entries", len(entries))
	}

	err = cfg.Validate()
	if err != nil {
		t.Errorf("Generated config does not validate: %v", err)
	}
}

func TestInitConfigAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	err := os.WriteFile(configPath, []byte("{}"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	err = InitConfig(configPath)
	if err == nil {
		t.Error("Expected error when config already exists, got nil")
	}
}
