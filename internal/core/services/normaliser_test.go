package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
)

func recordFromJSON(t *testing.T, raw string) domain.SourceRecord {
	t.Helper()
	var rec domain.SourceRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec
}

func TestNormaliseRecord_WellFormed(t *testing.T) {
	rec := recordFromJSON(t, `{
		"A": {"type": "literal", "value": "ganglion X"},
		"B": {"type": "literal", "value": "bladder"},
		"C": {"type": "literal", "value": "nerve Y"}
	}`)

	doc := NormaliseRecord(rec)

	assert.Equal(t, "ganglion X", doc.Fields[domain.FieldA])
	assert.Equal(t, "bladder", doc.Fields[domain.FieldB])
	assert.Equal(t, "nerve Y", doc.Fields[domain.FieldC])
	assert.Equal(t, domain.FieldAbsent, doc.Fields[domain.FieldTargetOrgan])
	assert.NotEmpty(t, doc.Text)
}

func TestNormaliseRecord_AllCanonicalKeysPresent(t *testing.T) {
	doc := NormaliseRecord(domain.SourceRecord{})
	require.Len(t, doc.Fields, 16)
	for _, name := range domain.CanonicalFields() {
		assert.Equal(t, domain.FieldAbsent, doc.Fields[name], name)
	}
	assert.NotEmpty(t, doc.Text)
}

func TestNormaliseRecord_TextMatchesFields(t *testing.T) {
	rec := recordFromJSON(t, `{
		"Neuron_ID": {"value": "neuron-type-keast-3"},
		"A": {"value": "pelvic ganglion"},
		"B": {"value": "neck of urinary bladder"},
		"C": {"value": "bladder nerve"},
		"C_Type": {"value": "axon"},
		"Target_Organ": {"value": "urinary bladder"}
	}`)

	doc := NormaliseRecord(rec)

	assert.Equal(t, domain.ConnectionText(doc.Fields), doc.Text)
	assert.Contains(t, doc.Text, "pelvic ganglion")
	assert.Contains(t, doc.Text, "bladder nerve")
}

func TestNormaliseRecords_StableOrder(t *testing.T) {
	records := []domain.SourceRecord{
		recordFromJSON(t, `{"Neuron_ID": {"value": "n-1"}}`),
		recordFromJSON(t, `{"Neuron_ID": {"value": "n-2"}}`),
		recordFromJSON(t, `{"Neuron_ID": {"value": "n-3"}}`),
	}

	docs := NormaliseRecords(records)
	require.Len(t, docs, 3)
	assert.Equal(t, "n-1", docs[0].Fields[domain.FieldNeuronID])
	assert.Equal(t, "n-2", docs[1].Fields[domain.FieldNeuronID])
	assert.Equal(t, "n-3", docs[2].Fields[domain.FieldNeuronID])
}

func TestNormaliseRecords_NeverPanics(t *testing.T) {
	inputs := []domain.SourceRecord{
		nil,
		{},
		recordFromJSON(t, `{"garbage": 42, "A": "scalar", "B": [true]}`),
	}

	var docs []domain.ConnectionDocument
	assert.NotPanics(t, func() { docs = NormaliseRecords(inputs) })
	require.Len(t, docs, 3)
	for _, doc := range docs {
		assert.Len(t, doc.Fields, 16)
		assert.NotEmpty(t, doc.Text)
	}
}

func TestNormaliseRecords_Empty(t *testing.T) {
	assert.Empty(t, NormaliseRecords(nil))
	assert.Empty(t, NormaliseRecords([]domain.SourceRecord{}))
}
