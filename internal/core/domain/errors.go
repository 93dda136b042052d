package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady indicates the index build has not completed yet.
	// Requests arriving before startup finishes get this, not a crash.
	ErrNotReady = errors.New("service not ready")

	// ErrRetrieval indicates query-time embedding or index failure.
	// Session state is untouched when this is returned.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrGeneration indicates the language model call failed or timed out.
	// Callers may retry; the user turn is not committed to history.
	ErrGeneration = errors.New("generation failed")

	// ErrLLMUnavailable indicates no language model service is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates no embedding service is configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)

// Retryable reports whether the error is worth retrying from the caller's
// side. Only generation failures qualify; retrieval and validation errors
// are deterministic.
func Retryable(err error) bool {
	return errors.Is(err, ErrGeneration)
}
