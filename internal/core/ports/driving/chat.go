package driving

import (
	"context"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
)

// ChatService is the session-scoped conversational retrieval pipeline.
type ChatService interface {
	// Respond runs the full pipeline for one request: read history,
	// retrieve context, render the prompt, generate, parse, persist.
	// Requests for different sessions may run concurrently.
	Respond(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error)

	// Ready reports whether the startup index build has completed.
	Ready() bool
}

// IngestService builds the similarity index from a record source.
type IngestService interface {
	// Ingest loads, normalises, and indexes the full record set.
	// It is a one-shot blocking startup operation.
	Ingest(ctx context.Context) (IngestStats, error)
}

// IngestStats summarises a completed ingest for startup logging.
type IngestStats struct {
	// RecordsLoaded is the raw record count from the source.
	RecordsLoaded int

	// DocumentsIndexed is the number of documents in the built index.
	DocumentsIndexed int
}
