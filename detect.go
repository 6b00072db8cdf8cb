package paysync

import "context"

// DetectNew returns the employees from the batch that are not yet in the
// store, preserving file order. A repeated employee number is looked up once
// and listed once; its first occurrence supplies the name.
func DetectNew(ctx context.Context, batch ImportBatch, g Gateway) ([]EmployeeRecord, error) {
	seen := make(map[int64]struct{}, len(batch))
	var pending []EmployeeRecord
	for _, record := range batch {
		if _, ok := seen[record.EmployeeID]; ok {
			continue
		}
		seen[record.EmployeeID] = struct{}{}

		exists, err := g.EmployeeExists(ctx, record.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			pending = append(pending, record.Employee())
		}
	}
	return pending, nil
}
