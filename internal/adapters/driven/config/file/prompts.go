package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
	"github.com/q-sparc/sparc-chat/internal/core/services"
	"github.com/q-sparc/sparc-chat/internal/logger"
)

// defaultPrompts contains the built-in prompt templates, used when no file
// overrides them.
var defaultPrompts = map[string]string{
	driven.PromptChatSystem: services.DefaultChatSystemPrompt,
}

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk, falling
// back to built-in defaults. When watching is enabled, edits to the prompt
// directory invalidate the cache so the next Load picks up the new text
// without a restart.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	watcher   *fsnotify.Watcher
	done      chan struct{}
}

// NewPromptStore creates a prompt store over the given directory. An empty
// directory serves the built-in defaults only.
func NewPromptStore(promptDir string) *PromptStore {
	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}
}

// Load returns the prompt template for the given name. File content wins
// over the built-in default; a missing or unreadable file falls back.
func (s *PromptStore) Load(name string) (string, error) {
	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	if s.promptDir != "" {
		if prompt, err := s.loadFromFile(name); err == nil {
			s.mu.Lock()
			s.cache[name] = prompt
			s.mu.Unlock()
			return prompt, nil
		}
	}

	if prompt, ok := defaultPrompts[name]; ok {
		return prompt, nil
	}
	return "", fmt.Errorf("unknown prompt %q", name)
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Watch starts invalidating the cache on changes to the prompt directory.
// It is a no-op when no directory is configured.
func (s *PromptStore) Watch() error {
	if s.promptDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.promptDir, 0o700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.promptDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.promptDir, err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	go s.watchLoop()
	return nil
}

// watchLoop drains watcher events until Close. Any write, create, remove
// or rename in the directory drops the whole cache; prompt files are tiny
// and reloads are cheap.
func (s *PromptStore) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("prompt file changed: %s", event.Name)
				s.Reload()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("prompt watcher: %v", err)
		case <-s.done:
			return
		}
	}
}

// Close stops the watcher if one is running.
func (s *PromptStore) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
