package paysync

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validHeader = "employee_number,employee_name,basic_salary\n"

func TestValidateFileNotFound(t *testing.T) {
	err := Validate(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestValidateInvalidFileType(t *testing.T) {
	path := writeTestFile(t, "employees.txt", validHeader+"1,Alice,1000\n")
	require.ErrorIs(t, Validate(path), ErrInvalidFileType)
}

func TestValidateExtensionCaseInsensitive(t *testing.T) {
	path := writeTestFile(t, "employees.CSV", validHeader+"1,Alice,1000\n")
	require.NoError(t, Validate(path))
}

func TestValidateInvalidColumns(t *testing.T) {
	path := writeTestFile(t, "employees.csv",
		"employee_number,basic_salary,unknown_col\n1,1000,x\n")

	err := Validate(path)
	require.ErrorIs(t, err, ErrInvalidColumns)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "unknown_col", vErr.Column)
}

func TestValidateDuplicateColumns(t *testing.T) {
	path := writeTestFile(t, "employees.csv",
		"employee_number,employee_number,basic_salary\n1,1,1000\n")
	require.ErrorIs(t, Validate(path), ErrDuplicateColumns)
}

func TestValidateRowChecks(t *testing.T) {
	cases := []struct {
		name   string
		rows   string
		want   error
		row    int
		column string
	}{
		{"missing employee number", ",Alice,1000\n", ErrMissingValue, 1, ColEmployeeNumber},
		{"missing salary", "1,Alice,\n", ErrMissingValue, 1, ColBasicSalary},
		{"missing salary before bad number", "abc,Alice,\n", ErrMissingValue, 1, ColBasicSalary},
		{"employee number not a number", "abc,Alice,1000\n", ErrNotANumber, 1, ColEmployeeNumber},
		{"salary not a number", "1,Alice,lots\n", ErrNotANumber, 1, ColBasicSalary},
		{"negative salary", "1,Alice,-5\n", ErrNonPositiveValue, 1, ColBasicSalary},
		{"zero employee number", "0,Alice,1000\n", ErrNonPositiveValue, 1, ColEmployeeNumber},
		{"error on later row", "1,Alice,1000\n2,Bob,-1\n", ErrNonPositiveValue, 2, ColBasicSalary},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTestFile(t, "employees.csv", validHeader+tc.rows)
			err := Validate(path)
			require.ErrorIs(t, err, tc.want)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Equal(t, tc.row, vErr.Row)
			require.Equal(t, tc.column, vErr.Column)
		})
	}
}

func TestValidateAcceptsValidFile(t *testing.T) {
	path := writeTestFile(t, "employees.csv", validHeader+"1,Alice,1000\n2,Bob,2000\n")
	require.NoError(t, Validate(path))
}

func TestValidateAcceptsMissingNameColumn(t *testing.T) {
	path := writeTestFile(t, "employees.csv", "employee_number,basic_salary\n1,1000\n")
	require.NoError(t, Validate(path))
}

func TestValidateAcceptsHeaderOnly(t *testing.T) {
	path := writeTestFile(t, "employees.csv", validHeader)
	require.NoError(t, Validate(path))
}

func TestValidateAcceptsEmptyFile(t *testing.T) {
	path := writeTestFile(t, "employees.csv", "")
	require.NoError(t, Validate(path))
}

func TestValidateMalformedCSV(t *testing.T) {
	path := writeTestFile(t, "employees.csv", validHeader+"\"1,1000\n")
	var pErr *ParseError
	require.True(t, errors.As(Validate(path), &pErr))
}
