// Package jsonfile loads connectivity records from a SPARQL results JSON
// file on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.RecordSource = (*Source)(nil)

// resultsEnvelope mirrors the SPARQL JSON results layout. Only the
// bindings array is consumed; head.vars is advisory.
type resultsEnvelope struct {
	Results struct {
		Bindings []domain.SourceRecord `json:"bindings"`
	} `json:"results"`
}

// Source reads a SPARQL results JSON export. The file is parsed once per
// Load call; records keep their file order.
type Source struct {
	path string
}

// New creates a source for the given file path. The file is not opened
// until Load.
func New(path string) *Source {
	return &Source{path: path}
}

// Load parses the file and returns every binding as a raw record.
// A missing or syntactically broken file is an error; records with odd or
// missing fields pass through untouched, the normaliser deals with them.
func (s *Source) Load(ctx context.Context) ([]domain.SourceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read records file %s: %w", s.path, err)
	}

	var envelope resultsEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse records file %s: %w", s.path, err)
	}

	return envelope.Results.Bindings, nil
}

// Describe returns the file path for startup logging.
func (s *Source) Describe() string {
	return fmt.Sprintf("json file %s", s.path)
}

// Close is a no-op; the file is not held open.
func (s *Source) Close() error {
	return nil
}
