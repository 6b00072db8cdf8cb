package paysync

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var recognizedColumns = map[string]struct{}{
	ColEmployeeNumber: {},
	ColEmployeeName:   {},
	ColBasicSalary:    {},
}

// Validate checks the whole input file before any store interaction: file
// existence, extension, column set, then every data row. The first failure
// wins. A nil return means the file is safe to sync.
func Validate(path string) error {
	if _, err := os.Stat(path); err != nil {
		return &ValidationError{Err: ErrFileNotFound, Value: path}
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return &ValidationError{Err: ErrInvalidFileType, Value: path}
	}

	rows, err := OpenRows(path)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := validateHeader(rows.Header()); err != nil {
		return err
	}

	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := validateRow(row); err != nil {
			return err
		}
	}
}

func validateHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for _, col := range header {
		if _, ok := recognizedColumns[col]; !ok {
			return &ValidationError{Err: ErrInvalidColumns, Column: col}
		}
		if _, dup := seen[col]; dup {
			return &ValidationError{Err: ErrDuplicateColumns, Column: col}
		}
		seen[col] = struct{}{}
	}
	return nil
}

// Both key fields must be present, numeric, and strictly positive, checked
// in that order across the pair.
func validateRow(row Row) error {
	keyColumns := []string{ColEmployeeNumber, ColBasicSalary}

	values := make(map[string]string, len(keyColumns))
	for _, col := range keyColumns {
		raw := strings.TrimSpace(row.Fields[col])
		if raw == "" {
			return &ValidationError{Err: ErrMissingValue, Row: row.Line, Column: col}
		}
		values[col] = raw
	}

	numbers := make(map[string]int64, len(keyColumns))
	for _, col := range keyColumns {
		n, err := strconv.ParseInt(values[col], 10, 64)
		if err != nil {
			return &ValidationError{Err: ErrNotANumber, Row: row.Line, Column: col, Value: values[col]}
		}
		numbers[col] = n
	}

	for _, col := range keyColumns {
		if numbers[col] <= 0 {
			return &ValidationError{Err: ErrNonPositiveValue, Row: row.Line, Column: col, Value: values[col]}
		}
	}
	return nil
}
