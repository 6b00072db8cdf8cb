package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paysync"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "paysync <file.csv>",
		Short:         "Synchronize an employee salary CSV into the company database",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}
}

func run(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	cfg, err := paysync.LoadConfig(".env")
	if err != nil {
		fmt.Fprintln(out, "configuration error:", err)
		return err
	}

	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(out, "cannot open log file:", err)
		return err
	}

	store, err := paysync.Open(cfg.DBPath)
	if err != nil {
		log.WithError(err).Error("cannot connect to the database")
		fmt.Fprintln(out, "cannot connect to the database, check the log for details")
		return err
	}
	defer store.Close()

	if err := store.Provision(); err != nil {
		log.WithError(err).Error("table provisioning failed")
		fmt.Fprintln(out, "an error occurred, check the log for details")
		return err
	}

	engine := paysync.NewEngine(store, paysync.TerminalConfirm(cmd.InOrStdin(), out), log)
	report, err := engine.Run(cmd.Context(), path)
	if err != nil {
		var vErr *paysync.ValidationError
		var pErr *paysync.ParseError
		if errors.As(err, &vErr) || errors.As(err, &pErr) {
			fmt.Fprintln(out, "the file is invalid, check the log for details")
		} else {
			fmt.Fprintln(out, "an error occurred, check the log for details")
		}
		return err
	}

	if report.Aborted {
		fmt.Fprintln(out, "unregistered employees were declined, no changes applied")
		return nil
	}

	if report.NewEmployees > 0 {
		fmt.Fprintf(out, "registered %d new employees\n", report.NewEmployees)
	}
	fmt.Fprintf(out, "updated %d employee names and %d salaries\n", report.NamesUpdated, report.SalariesUpdated)
	return nil
}
