package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driving"
	"github.com/q-sparc/sparc-chat/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// Default pipeline parameters.
const (
	// DefaultTopK is the retrieval depth when the request does not
	// override it.
	DefaultTopK = 20

	// DefaultGenerationTimeout bounds the model call.
	DefaultGenerationTimeout = 120 * time.Second
)

// ChatConfig tunes the conversation pipeline.
type ChatConfig struct {
	// TopK is the default retrieval depth (default: 20).
	TopK int

	// GenerationTimeout bounds each model call (default: 120s).
	GenerationTimeout time.Duration

	// MaxTokens caps generation length; 0 leaves it to the provider.
	MaxTokens int

	// Temperature for generation; 0 leaves it to the provider.
	Temperature float64
}

// ChatService composes retrieval, history, prompt rendering, generation,
// and output parsing into the request/response pipeline.
type ChatService struct {
	index       driven.ConnectionIndex
	sessions    driven.SessionStore
	llm         driven.LLMService
	promptStore driven.PromptStore
	cfg         ChatConfig
	ready       atomic.Bool
}

// NewChatService creates the pipeline. The prompt store is optional; when
// nil, the embedded default system prompt is used.
func NewChatService(
	index driven.ConnectionIndex,
	sessions driven.SessionStore,
	llm driven.LLMService,
	promptStore driven.PromptStore,
	cfg ChatConfig,
) *ChatService {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = DefaultGenerationTimeout
	}
	return &ChatService{
		index:       index,
		sessions:    sessions,
		llm:         llm,
		promptStore: promptStore,
		cfg:         cfg,
	}
}

// SetReady marks the startup index build as complete. Requests before this
// fail with domain.ErrNotReady instead of querying a half-built index.
func (s *ChatService) SetReady() {
	s.ready.Store(true)
}

// Ready reports whether the startup index build has completed.
func (s *ChatService) Ready() bool {
	return s.ready.Load()
}

// Respond runs the full pipeline for one request.
//
// History is read before the model call and the session lock is not held
// across it, so concurrent requests on the same session do not serialise
// behind model latency. On generation failure the user turn is NOT
// committed: recording a question with no answer would poison later
// prompts.
func (s *ChatService) Respond(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	if !s.Ready() {
		return domain.ChatResponse{}, domain.ErrNotReady
	}
	if s.llm == nil {
		return domain.ChatResponse{}, domain.ErrLLMUnavailable
	}
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return domain.ChatResponse{}, fmt.Errorf("%w: empty input", domain.ErrInvalidInput)
	}
	if req.SessionID == "" {
		return domain.ChatResponse{}, fmt.Errorf("%w: empty session_id", domain.ErrInvalidInput)
	}

	logger.Section("Chat Pipeline")
	logger.Debug("Session: %s", req.SessionID)
	logger.Debug("Input: %q", input)

	history := s.sessions.History(req.SessionID)
	logger.Debug("History: %d turns", len(history))

	k := req.TopK
	if k <= 0 {
		k = s.cfg.TopK
	}
	docs, err := s.index.Query(ctx, input, k)
	if err != nil {
		logger.Warn("Retrieval failed: %v", err)
		return domain.ChatResponse{}, fmt.Errorf("%w: %w", domain.ErrRetrieval, err)
	}
	logger.Debug("Retrieved %d documents (k=%d)", len(docs), k)

	messages := BuildPrompt(s.systemPrompt(), history, docs, input)

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()
	raw, err := s.llm.Chat(genCtx, messages, driven.ChatOptions{
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		logger.Warn("Generation failed: %v", err)
		return domain.ChatResponse{}, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	text, table := ParseModelOutput(raw)
	if table != nil {
		logger.Debug("Parsed table: %d columns, %d rows", len(table.Head), len(table.Rows))
	} else {
		logger.Debug("No structured table in output")
	}

	// Only the natural-language portion enters history; replaying raw
	// sentinel blocks into later prompts confuses the model.
	s.sessions.AppendTurns(req.SessionID,
		domain.UserTurn(input),
		domain.AssistantTurn(text),
	)

	return domain.ChatResponse{
		SessionID:     req.SessionID,
		GeneratedText: text,
		TableData:     table,
	}, nil
}

func (s *ChatService) systemPrompt() string {
	if s.promptStore == nil {
		return DefaultChatSystemPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptChatSystem)
	if err != nil || prompt == "" {
		return DefaultChatSystemPrompt
	}
	return prompt
}
