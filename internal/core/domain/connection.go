package domain

import "fmt"

// Canonical field names for a neuron connection record.
// The order matters: it is the column order of every response table.
const (
	FieldNeuronID       = "Neuron_ID"
	FieldAL1ID          = "A_L1_ID"
	FieldAL1            = "A_L1"
	FieldAL2ID          = "A_L2_ID"
	FieldAL2            = "A_L2"
	FieldAL3ID          = "A_L3_ID"
	FieldAL3            = "A_L3"
	FieldAID            = "A_ID"
	FieldA              = "A"
	FieldCID            = "C_ID"
	FieldC              = "C"
	FieldCType          = "C_Type"
	FieldBID            = "B_ID"
	FieldB              = "B"
	FieldTargetOrganIRI = "Target_Organ_IRI"
	FieldTargetOrgan    = "Target_Organ"
)

// CanonicalFields returns the canonical field names in table-column order.
// Callers must not mutate the returned slice.
func CanonicalFields() []string {
	return canonicalFields
}

var canonicalFields = []string{
	FieldNeuronID,
	FieldAL1ID, FieldAL1,
	FieldAL2ID, FieldAL2,
	FieldAL3ID, FieldAL3,
	FieldAID, FieldA,
	FieldCID, FieldC, FieldCType,
	FieldBID, FieldB,
	FieldTargetOrganIRI, FieldTargetOrgan,
}

// ConnectionDocument is the canonical, retrieval-ready form of one
// SourceRecord: a deterministic sentence for embedding plus the fully
// populated structured fields. Created once at index-build time and
// read-only afterwards.
type ConnectionDocument struct {
	// Text is the embedding/retrieval sentence. Never empty.
	Text string

	// Fields maps every canonical field name to its value, with
	// FieldAbsent substituted for missing source data.
	Fields map[string]string
}

// Field returns the value for a canonical field name, or FieldAbsent for an
// unknown key. Documents built by the normaliser always carry every
// canonical key, so this is a convenience for hand-built test documents.
func (d ConnectionDocument) Field(name string) string {
	if v, ok := d.Fields[name]; ok {
		return v
	}
	return FieldAbsent
}

// Row returns the document's values in canonical column order.
func (d ConnectionDocument) Row() []string {
	row := make([]string, len(canonicalFields))
	for i, name := range canonicalFields {
		row[i] = d.Field(name)
	}
	return row
}

// ConnectionText renders the deterministic retrieval sentence for a set of
// canonical field values. The wording is fixed: retrieval text and table
// output must describe the same fields, byte-identically for equal input.
func ConnectionText(fields map[string]string) string {
	get := func(name string) string {
		if v, ok := fields[name]; ok && v != "" {
			return v
		}
		return FieldAbsent
	}
	return fmt.Sprintf(
		"Neuron Connection Info: Neuron ID is %s. "+
			"It connects from %s (A_ID: %s) to %s (B_ID: %s) via %s (C_ID: %s). "+
			"The target organ is %s (IRI: %s). "+
			"The connection type C_Type is %s. "+
			"Hierarchical structure: A_L1: %s (ID: %s), A_L2: %s (ID: %s), A_L3: %s (ID: %s).",
		get(FieldNeuronID),
		get(FieldA), get(FieldAID),
		get(FieldB), get(FieldBID),
		get(FieldC), get(FieldCID),
		get(FieldTargetOrgan), get(FieldTargetOrganIRI),
		get(FieldCType),
		get(FieldAL1), get(FieldAL1ID),
		get(FieldAL2), get(FieldAL2ID),
		get(FieldAL3), get(FieldAL3ID),
	)
}
