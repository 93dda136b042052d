package cli

import (
	"context"
	"fmt"

	"github.com/q-sparc/sparc-chat/internal/adapters/driven/ai"
	configfile "github.com/q-sparc/sparc-chat/internal/adapters/driven/config/file"
	indexmem "github.com/q-sparc/sparc-chat/internal/adapters/driven/index/memory"
	"github.com/q-sparc/sparc-chat/internal/adapters/driven/records/jsonfile"
	recsqlite "github.com/q-sparc/sparc-chat/internal/adapters/driven/records/sqlite"
	sessionmem "github.com/q-sparc/sparc-chat/internal/adapters/driven/session/memory"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
	"github.com/q-sparc/sparc-chat/internal/core/services"
	"github.com/q-sparc/sparc-chat/internal/logger"
)

// runtime bundles the wired pipeline and everything that needs closing.
type runtime struct {
	cfg      *configfile.Config
	chat     *services.ChatService
	embedder driven.EmbeddingService
	llm      driven.LLMService
	index    driven.ConnectionIndex
	source   driven.RecordSource
	prompts  *configfile.PromptStore
}

// buildRuntime loads configuration, validates both AI providers, builds
// the index from the configured record source, and returns a ready
// pipeline. Any failure here is fatal to the command.
func buildRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := configfile.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		return nil, err
	}
	logger.Info("Embedding: %s", embedder.ModelName())

	llm, err := ai.CreateAndValidateLLMService(cfg.LLMSettings())
	if err != nil {
		embedder.Close()
		return nil, err
	}
	logger.Info("LLM: %s", llm.ModelName())

	source, err := openRecordSource(cfg)
	if err != nil {
		embedder.Close()
		llm.Close()
		return nil, err
	}

	prompts := configfile.NewPromptStore(cfg.Prompts.Dir)
	if cfg.Prompts.Watch {
		if err := prompts.Watch(); err != nil {
			logger.Warn("Prompt watching disabled: %v", err)
		}
	}

	index := indexmem.New(embedder)
	sessions := sessionmem.NewSessionStoreWithLimit(cfg.Session.MaxTurns)
	chat := services.NewChatService(index, sessions, llm, prompts, services.ChatConfig{
		TopK: cfg.Retrieval.TopK,
	})

	rt := &runtime{
		cfg:      cfg,
		chat:     chat,
		embedder: embedder,
		llm:      llm,
		index:    index,
		source:   source,
		prompts:  prompts,
	}

	ingest := services.NewIngestService(source, index)
	stats, err := ingest.Ingest(ctx)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("ingest: %w", err)
	}
	logger.Info("Ready: %d records, %d documents indexed", stats.RecordsLoaded, stats.DocumentsIndexed)
	chat.SetReady()

	return rt, nil
}

// openRecordSource creates the configured record source.
func openRecordSource(cfg *configfile.Config) (driven.RecordSource, error) {
	switch cfg.Data.Source {
	case "sqlite":
		return recsqlite.Open(cfg.Data.Path, cfg.Data.Table)
	default:
		return jsonfile.New(cfg.Data.Path), nil
	}
}

// close releases every resource the runtime holds.
func (rt *runtime) close() {
	if rt.prompts != nil {
		rt.prompts.Close()
	}
	if rt.index != nil {
		rt.index.Close()
	}
	if rt.source != nil {
		rt.source.Close()
	}
	if rt.llm != nil {
		rt.llm.Close()
	}
	if rt.embedder != nil {
		rt.embedder.Close()
	}
}
