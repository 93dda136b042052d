package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalFields_OrderAndCount(t *testing.T) {
	fields := CanonicalFields()
	require.Len(t, fields, 16)
	assert.Equal(t, FieldNeuronID, fields[0])
	assert.Equal(t, FieldTargetOrgan, fields[15])
	assert.Equal(t, []string{
		"Neuron_ID",
		"A_L1_ID", "A_L1",
		"A_L2_ID", "A_L2",
		"A_L3_ID", "A_L3",
		"A_ID", "A",
		"C_ID", "C", "C_Type",
		"B_ID", "B",
		"Target_Organ_IRI", "Target_Organ",
	}, fields)
}

func TestConnectionText_Deterministic(t *testing.T) {
	fields := map[string]string{
		FieldNeuronID:    "neuron-type-keast-5",
		FieldA:           "inferior mesenteric ganglion",
		FieldB:           "Dome of the Bladder",
		FieldC:           "hypogastric nerve",
		FieldTargetOrgan: "urinary bladder",
	}

	first := ConnectionText(fields)
	second := ConnectionText(fields)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "Neuron ID is neuron-type-keast-5")
	assert.Contains(t, first, "from inferior mesenteric ganglion")
	assert.Contains(t, first, "to Dome of the Bladder")
	assert.Contains(t, first, "via hypogastric nerve")
	assert.Contains(t, first, "target organ is urinary bladder")
}

func TestConnectionText_AbsentFields(t *testing.T) {
	text := ConnectionText(map[string]string{})
	assert.Contains(t, text, "Neuron ID is N/A")
	assert.Contains(t, text, "The connection type C_Type is N/A")
	assert.NotEmpty(t, text)
}

func TestConnectionDocument_Row(t *testing.T) {
	doc := ConnectionDocument{
		Text: "t",
		Fields: map[string]string{
			FieldNeuronID:    "n1",
			FieldTargetOrgan: "bladder",
		},
	}

	row := doc.Row()
	require.Len(t, row, 16)
	assert.Equal(t, "n1", row[0])
	assert.Equal(t, "bladder", row[15])
	// Everything unset renders as the sentinel.
	assert.Equal(t, FieldAbsent, row[1])
}

func TestTableData_Normalise_Dedup(t *testing.T) {
	table := &TableData{
		Head: []string{"A", "B"},
		Rows: [][]string{
			{"x", "y"},
			{"x", "y"},
			{"x", "z"},
		},
	}

	table.Normalise()
	assert.Equal(t, [][]string{{"x", "y"}, {"x", "z"}}, table.Rows)
}

func TestTableData_Normalise_PadsAndTruncates(t *testing.T) {
	table := &TableData{
		Head: []string{"A", "B", "C"},
		Rows: [][]string{
			{"only"},
			{"a", "b", "c", "overflow"},
		},
	}

	table.Normalise()
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"only", FieldAbsent, FieldAbsent}, table.Rows[0])
	assert.Equal(t, []string{"a", "b", "c"}, table.Rows[1])
}

func TestTableData_Normalise_Nil(t *testing.T) {
	var table *TableData
	assert.NotPanics(t, func() { table.Normalise() })
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(ErrGeneration))
	assert.False(t, Retryable(ErrRetrieval))
	assert.False(t, Retryable(ErrInvalidInput))
	assert.False(t, Retryable(nil))
}
