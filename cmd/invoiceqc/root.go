package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "invoiceqc",
		Short: "Validate extracted invoices and reconcile their totals",
		Long: `invoiceqc checks invoice records produced by a PDF extractor.

Every invoice is checked for required fields, number and date formats,
line item arithmetic, total reconciliation and duplicates. The outcome is
written as a JSON, YAML or XLSX report and summarized on stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}

			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newValidateCmd(), newVersionCmd())

	return root
}
