// Package table implements a small ordered string table with tolerant CSV
// reading and writing. Rows keep their file order; ragged rows are padded
// or truncated, hard-malformed rows are skipped with a warning.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is an ordered collection of rows sharing one column set.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given columns.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of a column or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column exists.
func (t *Table) HasColumn(name string) bool {
	return t.Index(name) != -1
}

// Values returns a copy of all cell values of a column, nil if the column
// does not exist.
func (t *Table) Values(name string) []string {
	i := t.Index(name)
	if i == -1 {
		return nil
	}
	values := make([]string, len(t.Rows))
	for j, row := range t.Rows {
		values[j] = row[i]
	}
	return values
}

// AddColumn appends a column. When values is shorter than the number of
// rows, the remainder is filled with fill.
func (t *Table) AddColumn(name, fill string, values []string) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		v := fill
		if i < len(values) {
			v = values[i]
		}
		t.Rows[i] = append(t.Rows[i], v)
	}
}

// DropColumn removes a column by position.
func (t *Table) DropColumn(i int) {
	if i < 0 || i >= len(t.Columns) {
		return
	}
	t.Columns = append(t.Columns[:i], t.Columns[i+1:]...)
	for j, row := range t.Rows {
		t.Rows[j] = append(row[:i], row[i+1:]...)
	}
}

// Filter returns a new table with the rows for which keep returns true.
// Column order is shared, row order preserved.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	result := New(t.Columns)
	for _, row := range t.Rows {
		if keep(row) {
			result.Rows = append(result.Rows, row)
		}
	}
	return result
}

// Read parses CSV data from a reader. A leading UTF-8 BOM is stripped,
// rows shorter than the header are padded with empty strings, longer rows
// are truncated with a warning. Rows with broken quoting are skipped with
// a line level warning; only transport errors are fatal.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(utf8BOM))
	if err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := New(header)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			log.Warnf("skipping malformed row at line %d: %v", perr.Line, err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		switch {
		case len(record) < len(header):
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		case len(record) > len(header):
			log.Warnf("row %d has %d fields, header has %d, truncating", t.Len()+1, len(record), len(header))
			record = record[:len(header)]
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// ReadFile reads a CSV file, transparently decompressing gzip when the
// path ends in .gz.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gr.Close()
		r = gr
	}
	return Read(r)
}

// Write writes the table as CSV, header first.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to a file, gzip-compressed when the path ends
// in .gz.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if strings.HasSuffix(path, ".gz") {
		gw := gzip.NewWriter(f)
		if err := t.Write(gw); err != nil {
			return err
		}
		return gw.Close()
	}
	return t.Write(f)
}
