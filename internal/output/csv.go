// Package output encodes exported rows as CSV.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"asana2csv/internal/export"
)

// WriteCSV writes header and rows as comma-separated lines ending in "\n".
// Fields are quoted only when they need to be.
func WriteCSV(w io.Writer, header []string, rows []export.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Strings()); err != nil {
			return fmt.Errorf("failed to write row for task %s: %w", row[export.ColTaskID], err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeCSV returns the complete CSV document in memory.
func EncodeCSV(header []string, rows []export.Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, header, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
