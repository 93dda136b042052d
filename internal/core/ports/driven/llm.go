package driven

import "context"

// LLMService provides the generation step of the conversation pipeline.
// It is treated as a black box: failures propagate as errors, never as
// partial output.
//
// Implementations may include:
//   - OpenAI-compatible chat endpoints (cloud, or a local vLLM server)
//   - Ollama (local models)
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the raw model
	// output for the final assistant turn.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request. Used at startup to fail fast on misconfiguration.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Chat roles understood by every provider.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
