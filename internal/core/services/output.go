package services

import (
	"encoding/json"
	"strings"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
	"github.com/q-sparc/sparc-chat/internal/logger"
)

// ParseModelOutput splits raw model output into the natural-language answer
// and the structured table embedded between the sentinel markers.
//
// The output contract is negotiated by natural-language instruction, so a
// missing or malformed block is an expected branch, never an error: the
// table comes back nil and the text falls back to the full raw output with
// the broken block left in place for the user to see.
func ParseModelOutput(raw string) (string, *domain.TableData) {
	start := strings.Index(raw, TableStartMarker)
	if start < 0 {
		return strings.TrimSpace(raw), nil
	}
	rest := raw[start+len(TableStartMarker):]
	end := strings.Index(rest, TableEndMarker)
	if end < 0 {
		logger.Debug("Model output has %s without %s, returning text only",
			TableStartMarker, TableEndMarker)
		return strings.TrimSpace(raw), nil
	}

	table, ok := parseTableBlock(rest[:end])
	if !ok {
		logger.Debug("Structured block failed to parse as JSON, returning text only")
		return strings.TrimSpace(raw), nil
	}
	table.Normalise()

	// Natural-language portion: everything around the block.
	text := strings.TrimSpace(raw[:start]) + strings.TrimSpace(rest[end+len(TableEndMarker):])
	return strings.TrimSpace(text), table
}

// parseTableBlock decodes the sentinel-delimited content. The prompt asks
// for a bare `"head": [...], "rows": [...]` pair, but models sometimes wrap
// it in braces or a markdown fence; accept all three shapes.
func parseTableBlock(block string) (*domain.TableData, bool) {
	block = strings.TrimSpace(block)
	block = strings.TrimPrefix(block, "```json")
	block = strings.TrimPrefix(block, "```")
	block = strings.TrimSuffix(block, "```")
	block = strings.TrimSpace(block)
	if block == "" {
		return nil, false
	}
	if !strings.HasPrefix(block, "{") {
		block = "{" + block + "}"
	}

	var table rawTable
	if err := json.Unmarshal([]byte(block), &table); err != nil {
		return nil, false
	}
	if len(table.Head) == 0 {
		return nil, false
	}

	out := &domain.TableData{Head: table.Head, Rows: make([][]string, 0, len(table.Rows))}
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = stringifyCell(cell)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, true
}

// rawTable tolerates non-string cells; models occasionally emit numbers.
type rawTable struct {
	Head []string        `json:"head"`
	Rows [][]json.RawMessage `json:"rows"`
}

func stringifyCell(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return domain.FieldAbsent
		}
		return s
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return domain.FieldAbsent
	}
	return trimmed
}
