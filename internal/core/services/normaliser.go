package services

import "github.com/q-sparc/sparc-chat/internal/core/domain"

// NormaliseRecord converts one raw record into its canonical document.
// Every canonical field is populated (absent source data becomes the "N/A"
// sentinel) and the retrieval text is rendered deterministically from the
// same fields, so retrieval text and table output always agree.
func NormaliseRecord(rec domain.SourceRecord) domain.ConnectionDocument {
	fields := make(map[string]string, len(domain.CanonicalFields()))
	for _, name := range domain.CanonicalFields() {
		fields[name] = rec.Value(name)
	}
	return domain.ConnectionDocument{
		Text:   domain.ConnectionText(fields),
		Fields: fields,
	}
}

// NormaliseRecords converts raw records into canonical documents.
// It is total: malformed records yield sentinel-filled documents, never an
// error. Output order mirrors input order; nothing is filtered or
// deduplicated.
func NormaliseRecords(records []domain.SourceRecord) []domain.ConnectionDocument {
	docs := make([]domain.ConnectionDocument, len(records))
	for i, rec := range records {
		docs[i] = NormaliseRecord(rec)
	}
	return docs
}
