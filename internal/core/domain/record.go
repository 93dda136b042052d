package domain

import "encoding/json"

// FieldAbsent is the canonical placeholder for a missing or malformed field
// value. It appears verbatim in document fields and response tables.
const FieldAbsent = "N/A"

// SourceRecord is one raw row from the connectivity knowledge base.
// The upstream SPARQL export wraps every cell in a descriptor object
// ({"type": ..., "value": ...}); fields may be absent entirely.
// Records are immutable once loaded.
type SourceRecord map[string]json.RawMessage

// fieldDescriptor is the SPARQL binding cell shape.
type fieldDescriptor struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	DataType string `json:"datatype"`
}

// Value extracts the named field's value. It returns FieldAbsent when the
// key is missing or the cell is not a well-formed descriptor object, so
// callers always operate on a fully populated record.
func (r SourceRecord) Value(key string) string {
	raw, ok := r[key]
	if !ok {
		return FieldAbsent
	}
	var desc fieldDescriptor
	if err := json.Unmarshal(raw, &desc); err != nil {
		return FieldAbsent
	}
	if desc.Value == "" {
		return FieldAbsent
	}
	return desc.Value
}

// Has reports whether the record carries a well-formed value for key.
func (r SourceRecord) Has(key string) bool {
	return r.Value(key) != FieldAbsent
}
