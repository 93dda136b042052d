package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
)

// Default configuration values.
const (
	DefaultConfigPath = "sparc-chat.toml"
	DefaultListenAddr = ":8080"
	DefaultTopK       = 20
)

// Config is the full service configuration, loaded from a TOML file.
// Every field has a working default; an absent file yields a config that
// runs against a local Ollama with the bundled prompts.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Session   SessionConfig   `toml:"session"`
	Prompts   PromptsConfig   `toml:"prompts"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `toml:"listen_addr"`

	// RequestsPerSecond throttles incoming chat requests. 0 disables
	// throttling.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// DataConfig selects and configures the record source.
type DataConfig struct {
	// Source is "json" or "sqlite".
	Source string `toml:"source"`

	// Path is the records file or database path.
	Path string `toml:"path"`

	// Table is the SQLite table name. Ignored for JSON sources.
	Table string `toml:"table"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	Provider          string  `toml:"provider"`
	Model             string  `toml:"model"`
	BaseURL           string  `toml:"base_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// LLMConfig configures the chat model provider.
type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// RetrievalConfig configures document retrieval.
type RetrievalConfig struct {
	// TopK is the number of documents retrieved per question.
	TopK int `toml:"top_k"`
}

// SessionConfig configures conversation history.
type SessionConfig struct {
	// MaxTurns bounds per-session history as a sliding window.
	// 0 keeps the full history.
	MaxTurns int `toml:"max_turns"`
}

// PromptsConfig configures the prompt template store.
type PromptsConfig struct {
	// Dir is the prompt template directory. Empty uses the built-in
	// templates only.
	Dir string `toml:"dir"`

	// Watch reloads templates when files in Dir change.
	Watch bool `toml:"watch"`
}

// DefaultConfig returns a config that runs against a local Ollama.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: DefaultListenAddr,
		},
		Data: DataConfig{
			Source: "json",
			Path:   "data/records.json",
		},
		Embedding: EmbeddingConfig{
			Provider: string(domain.AIProviderOllama),
		},
		LLM: LLMConfig{
			Provider: string(domain.AIProviderOllama),
		},
		Retrieval: RetrievalConfig{
			TopK: DefaultTopK,
		},
	}
}

// LoadConfig reads the TOML file at path, layering it over the defaults.
// A missing file at the default path is fine; an explicitly named file
// must exist. API keys are never stored in the file, they come from the
// OPENAI_API_KEY environment variable.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// validate rejects values that would only fail later at startup.
func (c *Config) validate() error {
	switch c.Data.Source {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown data source %q (want json or sqlite)", c.Data.Source)
	}
	if c.Retrieval.TopK < 0 {
		return fmt.Errorf("retrieval top_k must not be negative")
	}
	if c.Session.MaxTurns < 0 {
		return fmt.Errorf("session max_turns must not be negative")
	}
	return nil
}

// EmbeddingSettings maps the config onto the domain settings, pulling the
// API key from the environment.
func (c *Config) EmbeddingSettings() *domain.EmbeddingSettings {
	return &domain.EmbeddingSettings{
		Provider:          domain.AIProvider(c.Embedding.Provider),
		Model:             c.Embedding.Model,
		BaseURL:           c.Embedding.BaseURL,
		APIKey:            os.Getenv("OPENAI_API_KEY"),
		RequestsPerSecond: c.Embedding.RequestsPerSecond,
	}
}

// LLMSettings maps the config onto the domain settings, pulling the API
// key from the environment.
func (c *Config) LLMSettings() *domain.LLMSettings {
	return &domain.LLMSettings{
		Provider: domain.AIProvider(c.LLM.Provider),
		Model:    c.LLM.Model,
		BaseURL:  c.LLM.BaseURL,
		APIKey:   os.Getenv("OPENAI_API_KEY"),
	}
}
