package paysync

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row is one data row keyed by column name. Line is 1-based and counts data
// rows only, the header is line 0.
type Row struct {
	Line   int
	Fields map[string]string
}

// Rows is a cursor over the data rows of a delimited-text file, in file
// order. It performs no value validation.
type Rows struct {
	reader *csv.Reader
	header []string
	line   int
	closer io.Closer
}

func OpenRows(path string) (*Rows, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	rows, err := NewRows(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	rows.closer = file
	return rows, nil
}

// NewRows reads the header row and positions the cursor at the first data
// row. Input passes through a BOM-stripping decode first, so UTF-8 BOM and
// UTF-16 files are accepted. An empty input yields no header and no rows.
func NewRows(r io.Reader) (*Rows, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	// Short rows are padded to the header instead of rejected, a trailing
	// omitted field reads as an absent value.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: err}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return &Rows{reader: reader, header: header}, nil
}

// Header returns the trimmed column names, nil for an empty file.
func (r *Rows) Header() []string {
	return r.header
}

// Next returns the next data row, or io.EOF when the file is exhausted.
func (r *Rows) Next() (Row, error) {
	if len(r.header) == 0 {
		return Row{}, io.EOF
	}

	record, err := r.reader.Read()
	if errors.Is(err, io.EOF) {
		return Row{}, io.EOF
	}
	r.line++
	if err != nil {
		return Row{}, &ParseError{Row: r.line, Err: err}
	}

	if len(record) > len(r.header) {
		record = record[:len(r.header)]
	}
	fields := make(map[string]string, len(r.header))
	for i, col := range r.header {
		if i < len(record) {
			fields[col] = record[i]
		} else {
			fields[col] = ""
		}
	}
	return Row{Line: r.line, Fields: fields}, nil
}

func (r *Rows) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ReadBatch materializes the whole file as typed records, preserving file
// order. It expects a file that already passed Validate; rows that still
// fail numeric conversion are reported with the validation taxonomy.
func ReadBatch(path string) (ImportBatch, error) {
	rows, err := OpenRows(path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batch ImportBatch
	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		record := Record{EmployeeName: row.Fields[ColEmployeeName]}
		if record.EmployeeID, err = parseField(row, ColEmployeeNumber); err != nil {
			return nil, err
		}
		if record.BasicSalary, err = parseField(row, ColBasicSalary); err != nil {
			return nil, err
		}
		batch = append(batch, record)
	}
	return batch, nil
}

func parseField(row Row, column string) (int64, error) {
	raw := strings.TrimSpace(row.Fields[column])
	if raw == "" {
		return 0, &ValidationError{Err: ErrMissingValue, Row: row.Line, Column: column}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Err: ErrNotANumber, Row: row.Line, Column: column, Value: raw}
	}
	return n, nil
}
