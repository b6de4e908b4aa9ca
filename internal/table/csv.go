package table

import (
	"bytes"
	"encoding/csv"
)

// CSV serializes [headers, rows...] as RFC-4180 CSV: comma-delimited,
// header row first, fields containing a comma, double quote, or newline
// wrapped in double quotes with internal quotes doubled. Rows shorter
// than the header contract are padded with empty fields so every line
// has the same arity.
func (m Model) CSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	columns := m.columnCount()

	// csv.Writer only errors on an underlying write failure, which a
	// bytes.Buffer cannot produce.
	if len(m.Headers) > 0 {
		_ = w.Write(m.Headers)
	}
	for _, row := range m.Rows {
		record := make([]string, columns)
		for i := range record {
			record[i] = cell(row, i)
		}
		_ = w.Write(record)
	}
	w.Flush()
	return buf.Bytes()
}
