package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSource_Load_ParsesBindings(t *testing.T) {
	path := writeTempJSON(t, `{
		"head": {"vars": ["Neuron_ID", "A", "B"]},
		"results": {
			"bindings": [
				{
					"Neuron_ID": {"type": "uri", "value": "neuron-1"},
					"A": {"type": "literal", "value": "inferior mesenteric ganglion"},
					"B": {"type": "literal", "value": "urinary bladder"}
				},
				{
					"Neuron_ID": {"type": "uri", "value": "neuron-2"}
				}
			]
		}
	}`)

	source := New(path)
	records, err := source.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "neuron-1", records[0].Value("Neuron_ID"))
	assert.Equal(t, "urinary bladder", records[0].Value("B"))
	assert.Equal(t, domain.FieldAbsent, records[1].Value("A"))
}

func TestSource_Load_EmptyBindings(t *testing.T) {
	path := writeTempJSON(t, `{"results": {"bindings": []}}`)

	records, err := New(path).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSource_Load_MissingFile(t *testing.T) {
	source := New(filepath.Join(t.TempDir(), "does-not-exist.json"))

	_, err := source.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read records file")
}

func TestSource_Load_MalformedJSON(t *testing.T) {
	path := writeTempJSON(t, `{"results": {"bindings": [`)

	_, err := New(path).Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse records file")
}

func TestSource_Load_CancelledContext(t *testing.T) {
	path := writeTempJSON(t, `{"results": {"bindings": []}}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(path).Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_Describe_IncludesPath(t *testing.T) {
	source := New("/data/records.json")

	assert.Contains(t, source.Describe(), "/data/records.json")
	assert.NoError(t, source.Close())
}
