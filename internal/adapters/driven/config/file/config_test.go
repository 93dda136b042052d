package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sparc-chat.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err, "explicit missing file is an error")

	// The default path missing is not.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultListenAddr, cfg.Server.ListenAddr)
	assert.Equal(t, "json", cfg.Data.Source)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
	assert.Equal(t, string(domain.AIProviderOllama), cfg.LLM.Provider)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
listen_addr = ":9090"
requests_per_second = 5.0

[data]
source = "sqlite"
path = "/data/connections.db"
table = "connections"

[embedding]
provider = "openai"
model = "text-embedding-3-small"

[llm]
provider = "openai"
model = "gpt-4o-mini"

[retrieval]
top_k = 10

[session]
max_turns = 40

[prompts]
dir = "/etc/sparc-chat/prompts"
watch = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, 5.0, cfg.Server.RequestsPerSecond)
	assert.Equal(t, "sqlite", cfg.Data.Source)
	assert.Equal(t, "/data/connections.db", cfg.Data.Path)
	assert.Equal(t, 10, cfg.Retrieval.TopK)
	assert.Equal(t, 40, cfg.Session.MaxTurns)
	assert.True(t, cfg.Prompts.Watch)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[llm]
model = "llama3.1"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "llama3.1", cfg.LLM.Model)
	assert.Equal(t, string(domain.AIProviderOllama), cfg.LLM.Provider)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
}

func TestLoadConfig_RejectsUnknownSource(t *testing.T) {
	path := writeConfig(t, `
[data]
source = "postgres"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown data source")
}

func TestLoadConfig_RejectsNegativeTopK(t *testing.T) {
	path := writeConfig(t, `
[retrieval]
top_k = -1
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top_k")
}

func TestLoadConfig_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `[server`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestConfig_Settings_APIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := DefaultConfig()
	cfg.Embedding.Provider = string(domain.AIProviderOpenAI)
	cfg.LLM.Provider = string(domain.AIProviderOpenAI)

	assert.Equal(t, "sk-test", cfg.EmbeddingSettings().APIKey)
	assert.Equal(t, "sk-test", cfg.LLMSettings().APIKey)
	assert.True(t, cfg.EmbeddingSettings().IsConfigured())
	assert.True(t, cfg.LLMSettings().IsConfigured())
}
