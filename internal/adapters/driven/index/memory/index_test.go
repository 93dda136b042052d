package memory

import (
	"context"
	"errors"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
)

// hashEmbedder is a deterministic fake: identical text always produces an
// identical vector, and distinct texts almost always differ.
type hashEmbedder struct {
	failOn string
}

func (e *hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.failOn != "" && text == e.failOn {
		return nil, errors.New("embed failure")
	}
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()
	vec := make([]float32, 8)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int32(seed>>33)) / float32(1<<31)
	}
	return vec, nil
}

func (e *hashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *hashEmbedder) Dimensions() int              { return 8 }
func (e *hashEmbedder) ModelName() string            { return "hash-embedder" }
func (e *hashEmbedder) Ping(_ context.Context) error { return nil }
func (e *hashEmbedder) Close() error                 { return nil }

func docWithText(text string) domain.ConnectionDocument {
	return domain.ConnectionDocument{Text: text, Fields: map[string]string{}}
}

func TestIndex_Build_Empty(t *testing.T) {
	idx := New(&hashEmbedder{})
	require.NoError(t, idx.Build(context.Background(), nil))

	assert.Equal(t, 0, idx.Len())
	results, err := idx.Query(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndex_Query_ExactMatchFirst(t *testing.T) {
	docs := []domain.ConnectionDocument{
		docWithText("connection from pelvic ganglion to bladder"),
		docWithText("connection from vagus nerve to stomach"),
		docWithText("connection from nodose ganglion to heart"),
	}
	idx := New(&hashEmbedder{})
	require.NoError(t, idx.Build(context.Background(), docs))

	results, err := idx.Query(context.Background(), "connection from vagus nerve to stomach", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "connection from vagus nerve to stomach", results[0].Text)
}

func TestIndex_Query_AtMostK(t *testing.T) {
	var docs []domain.ConnectionDocument
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		docs = append(docs, docWithText(text))
	}
	idx := New(&hashEmbedder{})
	require.NoError(t, idx.Build(context.Background(), docs))

	results, err := idx.Query(context.Background(), "a", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// k larger than corpus returns everything.
	results, err = idx.Query(context.Background(), "a", 50)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestIndex_Query_InvalidK(t *testing.T) {
	idx := New(&hashEmbedder{})
	require.NoError(t, idx.Build(context.Background(), nil))

	_, err := idx.Query(context.Background(), "q", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndex_Query_BeforeBuild(t *testing.T) {
	idx := New(&hashEmbedder{})
	_, err := idx.Query(context.Background(), "q", 5)
	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestIndex_Build_EmbeddingFailureAborts(t *testing.T) {
	docs := []domain.ConnectionDocument{
		docWithText("fine"),
		docWithText("poison"),
	}
	idx := New(&hashEmbedder{failOn: "poison"})

	err := idx.Build(context.Background(), docs)
	require.Error(t, err)
	// No partial index: still not queryable.
	_, err = idx.Query(context.Background(), "fine", 1)
	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestIndex_Build_NilEmbedder(t *testing.T) {
	idx := New(nil)
	err := idx.Build(context.Background(), []domain.ConnectionDocument{docWithText("x")})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestIndex_Query_TiesKeepInsertionOrder(t *testing.T) {
	// Identical texts embed identically, so scores tie exactly.
	docs := []domain.ConnectionDocument{
		{Text: "same text", Fields: map[string]string{"Neuron_ID": "first"}},
		{Text: "same text", Fields: map[string]string{"Neuron_ID": "second"}},
	}
	idx := New(&hashEmbedder{})
	require.NoError(t, idx.Build(context.Background(), docs))

	results, err := idx.Query(context.Background(), "same text", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Fields["Neuron_ID"])
	assert.Equal(t, "second", results[1].Fields["Neuron_ID"])
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-6)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	// Mismatched lengths and zero vectors score 0.
	assert.Zero(t, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}
