// Package memory provides a flat in-memory similarity index.
//
// The corpus is a few thousand connection documents, so an exact cosine
// scan outperforms an approximate structure at this scale and keeps the
// index dependency-free. The index contract (top-k, most-similar first,
// ties by insertion order) does not change if this is ever swapped for an
// ANN backend.
package memory

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
	"github.com/q-sparc/sparc-chat/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.ConnectionIndex = (*Index)(nil)

// entry pairs a document with its embedding. Owned exclusively by the
// index; never handed out.
type entry struct {
	doc       domain.ConnectionDocument
	embedding []float32
}

// Index is a flat cosine-similarity index over connection documents.
// Build is called once at startup; afterwards the index is immutable and
// Query needs no locking. The mutex only guards against a Query racing an
// in-flight Build.
type Index struct {
	mu       sync.RWMutex
	embedder driven.EmbeddingService
	entries  []entry
	built    bool
}

// New creates an index backed by the given embedding service.
func New(embedder driven.EmbeddingService) *Index {
	return &Index{embedder: embedder}
}

// buildConcurrency bounds parallel embedding calls during Build.
var buildConcurrency = runtime.GOMAXPROCS(0)

// Build embeds every document's text and stores the pairs. Any embedding
// failure aborts the whole build: a partial index would silently hide
// pathways from every later query.
func (x *Index) Build(ctx context.Context, docs []domain.ConnectionDocument) error {
	if x.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	entries := make([]entry, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(buildConcurrency)
	for i, doc := range docs {
		g.Go(func() error {
			vec, err := x.embedder.Embed(gctx, doc.Text)
			if err != nil {
				return fmt.Errorf("embed document %d: %w", i, err)
			}
			entries[i] = entry{doc: doc, embedding: vec}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	x.mu.Lock()
	x.entries = entries
	x.built = true
	x.mu.Unlock()

	logger.Debug("Index built: %d documents, dim=%d, model=%s",
		len(entries), x.embedder.Dimensions(), x.embedder.ModelName())
	return nil
}

// Query embeds text and returns at most k documents, most similar first.
// Sorting is stable, so equal scores keep insertion order.
func (x *Index) Query(ctx context.Context, text string, k int) ([]domain.ConnectionDocument, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be > 0", domain.ErrInvalidInput)
	}

	x.mu.RLock()
	entries := x.entries
	built := x.built
	x.mu.RUnlock()

	if !built {
		return nil, domain.ErrNotReady
	}
	if len(entries) == 0 {
		return []domain.ConnectionDocument{}, nil
	}

	queryVec, err := x.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		idx   int
		score float32
	}
	scores := make([]scored, len(entries))
	for i := range entries {
		scores[i] = scored{idx: i, score: cosineSimilarity(queryVec, entries[i].embedding)}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if k > len(scores) {
		k = len(scores)
	}
	results := make([]domain.ConnectionDocument, k)
	for i := 0; i < k; i++ {
		results[i] = entries[scores[i].idx].doc
	}
	return results, nil
}

// Len returns the number of indexed documents.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched or zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
