package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// naValues are the cell spellings treated as missing, matching the defaults
// the dataset's publishers assume (pandas read_csv).
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Table is a parsed CSV document held in memory.
type Table struct {
	Header []string
	Rows   []Row

	columns map[string]int
}

// Row is one data record. Index is 0-based and excludes the header.
type Row struct {
	Index int

	cells   []string
	columns map[string]int
}

// ReadTable parses a CSV stream whose first record is the header.
// Short records are allowed; their missing cells read as absent.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &Table{
		Header:  make([]string, len(header)),
		columns: make(map[string]int, len(header)),
	}
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		col = strings.TrimSpace(col)
		t.Header[i] = col
		if _, dup := t.columns[col]; !dup {
			t.columns[col] = i
		}
	}
	if len(t.columns) == 1 && t.Header[0] == "" {
		return nil, ErrEmptyTable
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(t.Rows), err)
		}
		t.Rows = append(t.Rows, Row{
			Index:   len(t.Rows),
			cells:   record,
			columns: t.columns,
		})
	}

	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the header names column.
func (t *Table) HasColumn(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// Unique returns the distinct present values of column in first-seen order.
func (t *Table) Unique(column string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range t.Rows {
		v, ok := row.Get(column)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Get returns the trimmed cell for column. ok is false when the column is
// absent, the record is short, or the cell holds a missing-value marker.
func (r Row) Get(column string) (value string, ok bool) {
	idx, found := r.columns[column]
	if !found || idx >= len(r.cells) {
		return "", false
	}
	v := strings.TrimSpace(r.cells[idx])
	if _, na := naValues[v]; na {
		return "", false
	}
	return v, true
}
