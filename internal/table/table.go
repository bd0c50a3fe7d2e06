package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"titanicdash/domain/core"
)

// Row represents a row of raw data as string key-value pairs
type Row map[string]string

// Info describes the upstream dataset; sources fill in what they know
type Info struct {
	Name        string
	Version     string
	Description string // markdown
	Fingerprint core.Hash
}

// Table represents a raw tabular dataset as read from a source
type Table struct {
	Headers []string // Column headers
	Rows    []Row    // Data rows
	Info    Info
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column finds a header case-insensitively and returns its exact spelling
func (t *Table) Column(name string) (string, bool) {
	for _, h := range t.Headers {
		if strings.EqualFold(h, name) {
			return h, true
		}
	}
	return "", false
}

// ReadCSV parses CSV content with a header row
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return FromRows(rows)
}

// FromRows converts raw string rows (first row = headers) into a Table
func FromRows(rows [][]string) (*Table, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("tabular data must have at least a header row")
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		rowData := make(Row, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &Table{Headers: headers, Rows: dataRows}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ComputeFingerprint hashes headers and cells in order
func (t *Table) ComputeFingerprint() core.Hash {
	var b strings.Builder
	b.WriteString(strings.Join(t.Headers, ","))
	for _, row := range t.Rows {
		b.WriteByte('\n')
		for i, h := range t.Headers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(row[h])
		}
	}
	return core.NewHash([]byte(b.String()))
}
