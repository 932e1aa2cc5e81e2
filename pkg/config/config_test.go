package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// clearEnv keeps the host environment out of key resolution.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("HUGGING_CHAT_API_KEY", "")
}

func writeMasterTable(t *testing.T, dir string) (path string) {
	t.Helper()
	path = filepath.Join(dir, "master_resume.csv")
	err := os.WriteFile(path, []byte("section,subsection,content\npersonal_info,name,Jane Doe\n"), 0600)
	if err != nil {
		t.Fatalf("Failed to write master table: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	// Create a temporary config file.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	testConfig := Config{
		Provider:        ProviderAnthropic,
		AnthropicAPIKey: "test-key",
		MasterTable:     writeMasterTable(t, tmpDir),
		Defaults: DefaultConfig{
			OutputDir: "./test-output",
		},
	}

	data, err := json.MarshalIndent(testConfig, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(configPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Test loading the config.
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AnthropicAPIKey != testConfig.AnthropicAPIKey {
		t.Errorf("Expected API key %s, got %s", testConfig.AnthropicAPIKey, cfg.AnthropicAPIKey)
	}

	if cfg.MasterTable != testConfig.MasterTable {
		t.Errorf("Expected master table %s, got %s", testConfig.MasterTable, cfg.MasterTable)
	}

	if cfg.GetModel() != DefaultAnthropicModel {
		t.Errorf("Expected default model %s, got %s", DefaultAnthropicModel, cfg.GetModel())
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	testConfig := Config{
		Provider:     ProviderOpenAI,
		OpenAIAPIKey: "sk-test",
		Model:        "gpt-4o-mini",
		MasterTable:  writeMasterTable(t, tmpDir),
		PersonalInfoDefaults: []PersonalField{
			{Subsection: "email", Content: "jane@example.com"},
		},
	}

	data, err := yaml.Marshal(testConfig)
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(configPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.APIKey() != "sk-test" {
		t.Errorf("Expected OpenAI key sk-test, got %s", cfg.APIKey())
	}

	if cfg.GetModel() != "gpt-4o-mini" {
		t.Errorf("Expected model gpt-4o-mini, got %s", cfg.GetModel())
	}

	if len(cfg.PersonalInfoDefaults) != 1 || cfg.PersonalInfoDefaults[0].Content != "jane@example.com" {
		t.Errorf("Unexpected personal info defaults: %+v", cfg.PersonalInfoDefaults)
	}

	// Output dir falls back when unset.
	if cfg.Defaults.OutputDir != "./applications" {
		t.Errorf("Expected default output dir, got %s", cfg.Defaults.OutputDir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		env      map[string]string
		wantKey  string
	}{
		{
			name:     "anthropic env wins",
			provider: ProviderAnthropic,
			env:      map[string]string{"ANTHROPIC_API_KEY": "from-env"},
			wantKey:  "from-env",
		},
		{
			name:     "openai env wins",
			provider: ProviderOpenAI,
			env:      map[string]string{"OPENAI_API_KEY": "from-env"},
			wantKey:  "from-env",
		},
		{
			name:     "hugging chat fallback",
			provider: ProviderOpenAI,
			env:      map[string]string{"HUGGING_CHAT_API_KEY": "hf-key"},
			wantKey:  "hf-key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.json")
			data, err := json.Marshal(Config{Provider: tt.provider, MasterTable: writeMasterTable(t, tmpDir)})
			if err != nil {
				t.Fatalf("Failed to marshal test config: %v", err)
			}
			err = os.WriteFile(configPath, data, 0600)
			if err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			cfg, err := Load(configPath)
			if err != nil {
				t.Fatalf("Failed to load config: %v", err)
			}

			if cfg.APIKey() != tt.wantKey {
				t.Errorf("Expected key %s, got %s", tt.wantKey, cfg.APIKey())
			}
		})
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error loading nonexistent config, got nil")
	}
}

func TestValidate(t *testing.T) {
	master := writeMasterTable(t, t.TempDir())

	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name: "valid config",
			config: Config{
				AnthropicAPIKey: "test-key",
				MasterTable:     master,
				Defaults: DefaultConfig{
					OutputDir: "./output",
				},
			},
			wantError: false,
		},
		{
			name: "missing API key",
			config: Config{
				MasterTable: master,
			},
			wantError: true,
		},
		{
			name: "missing OpenAI key",
			config: Config{
				Provider:        ProviderOpenAI,
				AnthropicAPIKey: "test-key",
				MasterTable:     master,
			},
			wantError: true,
		},
		{
			name: "unknown provider",
			config: Config{
				Provider:    "gemini",
				MasterTable: master,
			},
			wantError: true,
		},
		{
			name: "missing master table",
			config: Config{
				AnthropicAPIKey: "test-key",
			},
			wantError: true,
		},
		{
			name: "nonexistent master table",
			config: Config{
				AnthropicAPIKey: "test-key",
				MasterTable:     "/nonexistent/master.csv",
			},
			wantError: true,
		},
		{
			name: "default without subsection",
			config: Config{
				AnthropicAPIKey:      "test-key",
				MasterTable:          master,
				PersonalInfoDefaults: []PersonalField{{Content: "jane@example.com"}},
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

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	path, err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	if path != configPath {
		t.Errorf("Expected path %s, got %s", configPath, path)
	}

	// Read and verify the config structure without full validation.
	// Full validation would require the master table to exist, which isn't needed for this test.
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

	if cfg.Provider != ProviderAnthropic {
		t.Errorf("Expected provider %s, got %s", ProviderAnthropic, cfg.Provider)
	}

	if cfg.MasterTable == "" {
		t.Error("Default master table was not set")
	}
}

func TestInitConfigYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yml")

	_, err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		t.Fatalf("Failed to unmarshal YAML config: %v", err)
	}

	if len(cfg.PersonalInfoDefaults) == 0 {
		t.Error("Default personal info was not written")
	}
}

func TestInitConfigAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Create file first.
	err := os.WriteFile(configPath, []byte("{}"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// Try to init - should fail.
	_, err = InitConfig(configPath)
	if err == nil {
		t.Error("Expected error when config already exists, got nil")
	}
}

func TestReadSkipsValidation(t *testing.T) {
	clearEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(configPath, []byte("logging:\n  level: debug\n  format: json\n"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Read(configPath)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Unexpected logging config: %+v", cfg.Logging)
	}

	// The same file fails full validation.
	_, err = Load(configPath)
	if err == nil {
		t.Error("Expected validation error, got nil")
	}
}
