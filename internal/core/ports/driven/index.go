package driven

import (
	"context"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
)

// ConnectionIndex answers top-k similarity queries over the canonical
// connection documents. The index is built once at startup from the full
// record set and is immutable afterwards; rebuilding means calling Build
// again from scratch. Concurrent Query calls after a completed Build are
// safe without external locking.
type ConnectionIndex interface {
	// Build embeds every document's text and stores the pairs. Any
	// embedding failure aborts the build; there is no partial-index
	// fallback.
	Build(ctx context.Context, docs []domain.ConnectionDocument) error

	// Query embeds text and returns at most k documents, most similar
	// first. Ties are broken by insertion order.
	Query(ctx context.Context, text string, k int) ([]domain.ConnectionDocument, error)

	// Len returns the number of indexed documents.
	Len() int

	// Close releases resources.
	Close() error
}
