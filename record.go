package paysync

import "fmt"

// Recognized input columns.
const (
	ColEmployeeNumber = "employee_number"
	ColEmployeeName   = "employee_name"
	ColBasicSalary    = "basic_salary"
)

type EmployeeRecord struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}

func (e EmployeeRecord) String() string {
	return fmt.Sprintf("Employee{EmployeeID: %d, Name: %s}", e.EmployeeID, e.EmployeeName)
}

type SalaryRecord struct {
	EmployeeID  int64 `json:"employee_id"`
	BasicSalary int64 `json:"basic_salary"`
}

func (s SalaryRecord) String() string {
	return fmt.Sprintf("Salary{EmployeeID: %d, Amount: %d}", s.EmployeeID, s.BasicSalary)
}

// Record is one parsed input row. EmployeeName may be empty, the name
// column is only required for rows that introduce a new employee.
type Record struct {
	EmployeeID   int64
	EmployeeName string
	BasicSalary  int64
}

func (r Record) Employee() EmployeeRecord {
	return EmployeeRecord{EmployeeID: r.EmployeeID, EmployeeName: r.EmployeeName}
}

func (r Record) Salary() SalaryRecord {
	return SalaryRecord{EmployeeID: r.EmployeeID, BasicSalary: r.BasicSalary}
}

// ImportBatch is the full set of rows parsed from one input file, in file
// order. It lives for a single sync run.
type ImportBatch []Record
