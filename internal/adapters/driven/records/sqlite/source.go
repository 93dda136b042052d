// Package sqlite loads connectivity records from a local SQLite database.
// It covers deployments where the SPARQL export has been staged into a
// relational table instead of shipped as a JSON file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.RecordSource = (*Source)(nil)

// DefaultTable is the table queried when none is configured.
const DefaultTable = "connections"

// Source reads one row per connection from a SQLite table whose columns
// match the canonical field names. NULL columns are treated as absent.
type Source struct {
	db    *sql.DB
	path  string
	table string
}

// Open opens the database file read-only. The table defaults to
// DefaultTable when empty.
func Open(path, table string) (*Source, error) {
	if table == "" {
		table = DefaultTable
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	return &Source{db: db, path: path, table: table}, nil
}

// Load queries every row and wraps each non-NULL cell in the descriptor
// shape the normaliser expects.
func (s *Source) Load(ctx context.Context) ([]domain.SourceRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %q", columnList(), s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", s.table, err)
	}
	defer rows.Close()

	fields := domain.CanonicalFields()
	var records []domain.SourceRecord
	for rows.Next() {
		cells := make([]sql.NullString, len(fields))
		scan := make([]any, len(fields))
		for i := range cells {
			scan[i] = &cells[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		record := make(domain.SourceRecord, len(fields))
		for i, field := range fields {
			if !cells[i].Valid {
				continue
			}
			record[field] = descriptor(cells[i].String)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table %s: %w", s.table, err)
	}
	return records, nil
}

// Describe returns the database path and table for startup logging.
func (s *Source) Describe() string {
	return fmt.Sprintf("sqlite %s table %s", s.path, s.table)
}

// Close closes the database handle.
func (s *Source) Close() error {
	return s.db.Close()
}

// columnList renders the canonical fields as a quoted column list.
func columnList() string {
	fields := domain.CanonicalFields()
	list := ""
	for i, field := range fields {
		if i > 0 {
			list += ", "
		}
		list += fmt.Sprintf("%q", field)
	}
	return list
}

// descriptor wraps a plain value in the SPARQL binding cell shape.
func descriptor(value string) json.RawMessage {
	raw, err := json.Marshal(struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "literal", Value: value})
	if err != nil {
		// Marshalling a two-string struct cannot fail.
		return nil
	}
	return raw
}
