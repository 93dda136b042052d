package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
	"github.com/q-sparc/sparc-chat/internal/core/services"
)

func TestPromptStore_Load_BuiltInDefault(t *testing.T) {
	store := NewPromptStore("")

	prompt, err := store.Load(driven.PromptChatSystem)

	require.NoError(t, err)
	assert.Equal(t, services.DefaultChatSystemPrompt, prompt)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store := NewPromptStore("")

	_, err := store.Load("no_such_prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_prompt")
}

func TestPromptStore_Load_FileOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	custom := "You answer questions about neural pathways.\n\nCONTEXT:\n%s"
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, driven.PromptChatSystem+".txt"),
		[]byte(custom+"\n"), 0o600))

	store := NewPromptStore(dir)
	prompt, err := store.Load(driven.PromptChatSystem)

	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_Load_MissingFileFallsBack(t *testing.T) {
	store := NewPromptStore(t.TempDir())

	prompt, err := store.Load(driven.PromptChatSystem)

	require.NoError(t, err)
	assert.Equal(t, services.DefaultChatSystemPrompt, prompt)
}

func TestPromptStore_Reload_ClearsCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, driven.PromptChatSystem+".txt")
	require.NoError(t, os.WriteFile(path, []byte("first %s"), 0o600))

	store := NewPromptStore(dir)
	prompt, err := store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, "first %s", prompt)

	require.NoError(t, os.WriteFile(path, []byte("second %s"), 0o600))

	// Cached until a reload.
	prompt, err = store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, "first %s", prompt)

	store.Reload()
	prompt, err = store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, "second %s", prompt)
}

func TestPromptStore_Watch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, driven.PromptChatSystem+".txt")
	require.NoError(t, os.WriteFile(path, []byte("first %s"), 0o600))

	store := NewPromptStore(dir)
	require.NoError(t, store.Watch())
	t.Cleanup(func() { _ = store.Close() })

	prompt, err := store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, "first %s", prompt)

	require.NoError(t, os.WriteFile(path, []byte("second %s"), 0o600))

	assert.Eventually(t, func() bool {
		prompt, err := store.Load(driven.PromptChatSystem)
		return err == nil && prompt == "second %s"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestPromptStore_Watch_NoDirIsNoop(t *testing.T) {
	store := NewPromptStore("")

	require.NoError(t, store.Watch())
	assert.NoError(t, store.Close())
}
