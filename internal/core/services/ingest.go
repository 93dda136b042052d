package services

import (
	"context"
	"fmt"

	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driving"
	"github.com/q-sparc/sparc-chat/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService loads records, normalises them, and builds the similarity
// index. It runs once at startup; the server must not accept requests until
// it finishes.
type IngestService struct {
	source driven.RecordSource
	index  driven.ConnectionIndex
}

// NewIngestService creates the startup ingest pipeline.
func NewIngestService(source driven.RecordSource, index driven.ConnectionIndex) *IngestService {
	return &IngestService{source: source, index: index}
}

// Ingest loads, normalises, and indexes the full record set. Load and build
// failures are fatal to startup: a half-built index would answer queries
// with silently missing pathways.
func (s *IngestService) Ingest(ctx context.Context) (driving.IngestStats, error) {
	logger.Section("Index Build")
	logger.Info("Loading records from %s", s.source.Describe())

	records, err := s.source.Load(ctx)
	if err != nil {
		return driving.IngestStats{}, fmt.Errorf("load records: %w", err)
	}
	logger.Info("Loaded %d records", len(records))

	docs := NormaliseRecords(records)
	if err := s.index.Build(ctx, docs); err != nil {
		return driving.IngestStats{}, fmt.Errorf("build index: %w", err)
	}
	logger.Info("Indexed %d documents", s.index.Len())

	return driving.IngestStats{
		RecordsLoaded:    len(records),
		DocumentsIndexed: s.index.Len(),
	}, nil
}
