package domain

// ChatRequest is one question addressed to the assistant within a session.
// Transient; never stored.
type ChatRequest struct {
	// SessionID is the opaque conversation key. Callers that omit it get a
	// freshly minted one back in the response.
	SessionID string `json:"session_id"`

	// Input is the user's question.
	Input string `json:"input"`

	// TopK overrides the configured retrieval depth when > 0.
	TopK int `json:"top_k,omitempty"`
}

// ChatResponse is the assistant's answer: natural-language text plus the
// structured table parsed from the model output, when present.
type ChatResponse struct {
	SessionID string `json:"session_id"`

	// GeneratedText is the natural-language portion of the model output.
	GeneratedText string `json:"generated_text"`

	// TableData is the structured block, nil when the model omitted it or
	// it failed to parse. Absence is not an error.
	TableData *TableData `json:"table_data"`

	// FlatmapMetadata carries an optional flatmap rendering reference.
	FlatmapMetadata *string `json:"flatmap_metadata"`
}

// TableData is the machine-parseable table embedded in model output:
// a fixed header and rows of per-field values aligned to it.
type TableData struct {
	Head []string   `json:"head"`
	Rows [][]string `json:"rows"`
}

// Normalise aligns every row to the header width, padding short rows with
// FieldAbsent and truncating long ones, then drops exact duplicate rows
// keeping the first occurrence.
func (t *TableData) Normalise() {
	if t == nil {
		return
	}
	width := len(t.Head)
	seen := make(map[string]struct{}, len(t.Rows))
	rows := t.Rows[:0]
	for _, row := range t.Rows {
		for len(row) < width {
			row = append(row, FieldAbsent)
		}
		if len(row) > width {
			row = row[:width]
		}
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, row)
	}
	t.Rows = rows
}

// rowKey builds a collision-safe map key for a row. Cell values are joined
// with an unlikely separator; cells never contain control characters in
// practice, and a false merge would only drop a near-identical row.
func rowKey(row []string) string {
	key := ""
	for _, cell := range row {
		key += cell + "\x1f"
	}
	return key
}
