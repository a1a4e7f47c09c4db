package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "healthlog/internal/platform/errors"
)

// Encode renders records as the stored document: an indented JSON array.
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return append(payload, '\n'), nil
}

// Decode parses a stored document. An empty payload or JSON null is an empty
// collection; anything that is not an array of records is ErrStorageCorrupt.
func Decode(payload []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageCorrupt, err)
	}
	return records, nil
}
