package driven

import (
	"context"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
)

// RecordSource loads the raw connectivity records the index is built from.
// Sources are read wholesale at startup; per-field problems are tolerated
// by the normaliser, but an unreadable source is fatal.
type RecordSource interface {
	// Load returns every record in source order.
	Load(ctx context.Context) ([]domain.SourceRecord, error)

	// Describe returns a human-readable description of the source for
	// startup logging (path, table, record count hints).
	Describe() string

	// Close releases resources.
	Close() error
}
