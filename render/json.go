package render

import (
	"encoding/json"
	"fmt"

	schemalens "github.com/schemalens/schemalens"
)

// JSON serializes every column of the database as a pretty-printed JSON
// array. Tables appear in first-seen order and columns in catalog ordinal
// order, so parsing the output and rebuilding the model reproduces the same
// field values. An empty model renders as an empty string.
func JSON(db *schemalens.Database) (string, error) {
	if db == nil || db.Len() == 0 {
		return "", nil
	}

	var columns []*schemalens.Column
	for _, table := range db.Tables() {
		columns = append(columns, table.Columns()...)
	}

	data, err := json.MarshalIndent(columns, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize schema: %w", err)
	}

	return string(data), nil
}
