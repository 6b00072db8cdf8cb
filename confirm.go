package paysync

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// DecisionFunc decides whether a sync that found unregistered employees may
// proceed. It is only invoked with a non-empty pending list.
type DecisionFunc func(pending []EmployeeRecord) (bool, error)

// TerminalConfirm returns a DecisionFunc that lists the pending employees
// on out and reads a y/n answer from in, re-prompting on any other input.
func TerminalConfirm(in io.Reader, out io.Writer) DecisionFunc {
	scanner := bufio.NewScanner(in)
	return func(pending []EmployeeRecord) (bool, error) {
		fmt.Fprintf(out, "found %d unregistered employees\n", len(pending))

		table := tablewriter.NewTable(out)
		table.Header([]string{"employee_id", "employee_name"})
		for _, employee := range pending {
			table.Append([]string{
				strconv.FormatInt(employee.EmployeeID, 10),
				employee.EmployeeName,
			})
		}
		table.Render()

		for {
			fmt.Fprint(out, "register these employees? (y/n): ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return false, err
				}
				return false, io.EOF
			}
			switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
			case "y":
				return true, nil
			case "n":
				return false, nil
			}
			fmt.Fprintln(out, "invalid input, enter 'y' or 'n'")
		}
	}
}
