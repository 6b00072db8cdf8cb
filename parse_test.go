package paysync

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowsPreserveFileOrder(t *testing.T) {
	input := "employee_number,employee_name,basic_salary\n" +
		"3,Carol,3000\n" +
		"1,Alice,1000\n" +
		"2,Bob,2000\n"

	rows, err := NewRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"employee_number", "employee_name", "basic_salary"}, rows.Header())

	var names []string
	for {
		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, row.Fields["employee_name"])
	}
	require.Equal(t, []string{"Carol", "Alice", "Bob"}, names)
}

func TestRowsStripUTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBFemployee_number,basic_salary\n1,1000\n"

	rows, err := NewRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"employee_number", "basic_salary"}, rows.Header())

	row, err := rows.Next()
	require.NoError(t, err)
	require.Equal(t, "1", row.Fields["employee_number"])
}

func TestRowsDecodeUTF16(t *testing.T) {
	var buf []byte
	buf = append(buf, 0xFF, 0xFE) // UTF-16 LE BOM
	for _, r := range "employee_number,basic_salary\n7,700\n" {
		buf = append(buf, byte(r), 0x00)
	}

	rows, err := NewRows(strings.NewReader(string(buf)))
	require.NoError(t, err)

	row, err := rows.Next()
	require.NoError(t, err)
	require.Equal(t, "7", row.Fields["employee_number"])
	require.Equal(t, "700", row.Fields["basic_salary"])
}

func TestRowsPadShortRows(t *testing.T) {
	input := "employee_number,employee_name,basic_salary\n1,Alice\n"

	rows, err := NewRows(strings.NewReader(input))
	require.NoError(t, err)

	row, err := rows.Next()
	require.NoError(t, err)
	require.Equal(t, "", row.Fields["basic_salary"])
}

func TestRowsMalformedCSV(t *testing.T) {
	input := "employee_number,basic_salary\n\"1,1000\n"

	rows, err := NewRows(strings.NewReader(input))
	require.NoError(t, err)

	_, err = rows.Next()
	var pErr *ParseError
	require.ErrorAs(t, err, &pErr)
}

func TestRowsEmptyInput(t *testing.T) {
	rows, err := NewRows(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, rows.Header())

	_, err = rows.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReadBatch(t *testing.T) {
	path := writeTestFile(t, "batch.csv",
		"employee_number,employee_name,basic_salary\n"+
			"1,Alice, 1000\n"+
			"2,,2000\n")

	batch, err := ReadBatch(path)
	require.NoError(t, err)
	require.Equal(t, ImportBatch{
		{EmployeeID: 1, EmployeeName: "Alice", BasicSalary: 1000},
		{EmployeeID: 2, EmployeeName: "", BasicSalary: 2000},
	}, batch)
}

func TestReadBatchMissingFile(t *testing.T) {
	_, err := ReadBatch(filepath.Join(t.TempDir(), "nope.csv"))
	var pErr *ParseError
	require.ErrorAs(t, err, &pErr)
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
