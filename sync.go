package paysync

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Report summarizes one sync run.
type Report struct {
	NewEmployees    int
	NamesUpdated    int64
	SalariesUpdated int64
	Aborted         bool
}

func NewEngine(gateway Gateway, confirm DecisionFunc, log *logrus.Logger) *Engine {
	return &Engine{
		gateway: gateway,
		confirm: confirm,
		log:     log,
	}
}

// Engine drives one sync: validate the whole file, detect unregistered
// employees, gate on the operator's decision, write inside one transaction.
type Engine struct {
	gateway Gateway
	confirm DecisionFunc
	log     *logrus.Logger
}

// Run syncs the file at path into the store. A rejected file returns its
// validation error without touching the gateway. A declined confirmation
// returns an aborted Report and a nil error. Every other failure rolls the
// transaction back and surfaces the error; nothing is partially applied.
func (e *Engine) Run(ctx context.Context, path string) (*Report, error) {
	if err := Validate(path); err != nil {
		e.log.WithFields(errorFields(err)).WithField("file", path).Error("input file rejected")
		return nil, err
	}

	batch, err := ReadBatch(path)
	if err != nil {
		e.log.WithFields(errorFields(err)).WithField("file", path).Error("input file unreadable")
		return nil, err
	}

	if err := e.gateway.Begin(ctx); err != nil {
		e.log.WithError(err).Error("cannot begin transaction")
		return nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := e.gateway.Rollback(); err != nil {
			e.log.WithError(err).Error("rollback failed")
		}
	}()

	pending, err := DetectNew(ctx, batch, e.gateway)
	if err != nil {
		e.log.WithError(err).Error("new employee detection failed")
		return nil, err
	}

	// A file with unregistered employees is all-or-nothing: declining the
	// registration also skips every update for already-registered rows.
	if len(pending) > 0 {
		proceed, err := e.confirm(pending)
		if err != nil {
			e.log.WithError(err).Error("confirmation failed")
			return nil, err
		}
		if !proceed {
			e.log.WithField("pending", len(pending)).Warn("sync declined by operator, no changes applied")
			return &Report{Aborted: true}, nil
		}
	}

	for _, employee := range pending {
		if err := e.gateway.InsertEmployee(ctx, employee.EmployeeID, employee.EmployeeName); err != nil {
			e.log.WithError(err).Error("insert employee failed")
			return nil, err
		}
		// Seeded at zero, the salary bulk update below fills it in.
		if err := e.gateway.InsertSalary(ctx, employee.EmployeeID, 0); err != nil {
			e.log.WithError(err).Error("insert salary failed")
			return nil, err
		}
	}

	names := make([]KeyedValue, 0, len(batch))
	salaries := make([]KeyedValue, 0, len(batch))
	for _, record := range batch {
		if record.EmployeeName != "" {
			names = append(names, KeyedValue{Value: record.EmployeeName, EmployeeID: record.EmployeeID})
		}
		salaries = append(salaries, KeyedValue{Value: record.BasicSalary, EmployeeID: record.EmployeeID})
	}

	report := &Report{NewEmployees: len(pending)}
	if report.NamesUpdated, err = e.gateway.BulkUpdate(ctx, "employees", ColEmployeeName, names); err != nil {
		e.log.WithError(err).Error("employee name update failed")
		return nil, err
	}
	if report.SalariesUpdated, err = e.gateway.BulkUpdate(ctx, "salaries", ColBasicSalary, salaries); err != nil {
		e.log.WithError(err).Error("salary update failed")
		return nil, err
	}

	if err := e.gateway.Commit(); err != nil {
		e.log.WithError(err).Error("commit failed")
		return nil, err
	}
	committed = true

	e.log.WithFields(logrus.Fields{
		"file":             path,
		"new_employees":    report.NewEmployees,
		"names_updated":    report.NamesUpdated,
		"salaries_updated": report.SalariesUpdated,
	}).Info("sync committed")
	return report, nil
}

func errorFields(err error) logrus.Fields {
	fields := logrus.Fields{}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		if vErr.Row > 0 {
			fields["row"] = vErr.Row
		}
		if vErr.Column != "" {
			fields["column"] = vErr.Column
		}
		if vErr.Value != "" {
			fields["value"] = vErr.Value
		}
		fields["reason"] = vErr.Err.Error()
		return fields
	}
	var pErr *ParseError
	if errors.As(err, &pErr) {
		if pErr.Row > 0 {
			fields["row"] = pErr.Row
		}
		fields["reason"] = pErr.Err.Error()
		return fields
	}
	fields["reason"] = err.Error()
	return fields
}
