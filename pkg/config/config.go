package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Supported completion providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Default model per provider.
const (
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultOpenAIModel    = "gpt-4o"
)

// Config represents the application configuration.
type Config struct {
	Provider             string          `json:"provider" yaml:"provider"`
	AnthropicAPIKey      string          `json:"anthropic_api_key,omitempty" yaml:"anthropic_api_key,omitempty"`
	OpenAIAPIKey         string          `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`
	Model                string          `json:"model,omitempty" yaml:"model,omitempty"`
	MasterTable          string          `json:"master_table" yaml:"master_table"`
	PersonalInfoDefaults []PersonalField `json:"personal_info_defaults,omitempty" yaml:"personal_info_defaults,omitempty"`
	Logging              LoggingConfig   `json:"logging,omitempty" yaml:"logging,omitempty"`
	Defaults             DefaultConfig   `json:"defaults" yaml:"defaults"`
}

// PersonalField is a personal_info row used when a tailored table leaves it out.
type PersonalField struct {
	Subsection string `json:"subsection" yaml:"subsection"`
	Content    string `json:"content" yaml:"content"`
}

// LoggingConfig holds diagnostic output settings.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// GetModel returns the configured model or the provider's default.
func (c *Config) GetModel() (model string) {
	if c.Model != "" {
		model = c.Model
		return model
	}
	if c.Provider == ProviderOpenAI {
		model = DefaultOpenAIModel
		return model
	}
	model = DefaultAnthropicModel
	return model
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() (key string) {
	if c.Provider == ProviderOpenAI {
		key = c.OpenAIAPIKey
		return key
	}
	key = c.AnthropicAPIKey
	return key
}

// DefaultPath returns ~/.alanna/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".alanna", "config.json")
	return path, err
}

// Load reads and validates configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	cfg, err = Read(configPath)
	if err != nil {
		return cfg, err
	}

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Read parses the config file and applies environment overrides without validating.
func Read(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'alanna init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = unmarshal(path, data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	applyEnv(&cfg)

	return cfg, err
}

// applyEnv overrides API keys from the environment.
func applyEnv(cfg *Config) {
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.AnthropicAPIKey = apiKey
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAIAPIKey = apiKey
	} else if apiKey = os.Getenv("HUGGING_CHAT_API_KEY"); apiKey != "" && cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = apiKey
	}
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.Provider == "" {
		c.Provider = ProviderAnthropic
	}

	switch c.Provider {
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			err = errors.New("anthropic_api_key is required (set in config or ANTHROPIC_API_KEY env var)")
			return err
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			err = errors.New("openai_api_key is required (set in config or OPENAI_API_KEY env var)")
			return err
		}
	default:
		err = errors.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderAnthropic, ProviderOpenAI)
		return err
	}

	if c.MasterTable == "" {
		err = errors.New("master_table is required in config")
		return err
	}

	// Check master table exists
	_, err = os.Stat(c.MasterTable)
	if os.IsNotExist(err) {
		err = errors.Errorf("master table not found: %s", c.MasterTable)
		return err
	}
	err = nil

	for _, field := range c.PersonalInfoDefaults {
		if field.Subsection == "" {
			err = errors.New("personal_info_defaults entries need a subsection")
			return err
		}
	}

	// Set default output_dir if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./applications"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (path string, err error) {
	// Determine config file location
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}

	defaultConfig := Config{
		Provider:        ProviderAnthropic,
		AnthropicAPIKey: "sk-ant-api03-...",
		MasterTable:     filepath.Join(homeDir, ".alanna", "master_resume.csv"),
		PersonalInfoDefaults: []PersonalField{
			{Subsection: "email", Content: "you@example.com"},
			{Subsection: "github", Content: "github.com/you"},
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Defaults: DefaultConfig{
			OutputDir: filepath.Join(homeDir, "Documents", "Applications"),
		},
	}

	var data []byte
	data, err = marshal(path, defaultConfig)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}

func isYAML(path string) (ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	ok = ext == ".yaml" || ext == ".yml"
	return ok
}

func unmarshal(path string, data []byte, cfg *Config) (err error) {
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
		return err
	}
	err = json.Unmarshal(data, cfg)
	return err
}

func marshal(path string, cfg Config) (data []byte, err error) {
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
		return data, err
	}
	data, err = json.MarshalIndent(cfg, "", "  ")
	return data, err
}
