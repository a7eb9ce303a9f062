package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/paisatrail/paisatrail/internal/analysis"
	"github.com/paisatrail/paisatrail/internal/cli"
	"github.com/paisatrail/paisatrail/internal/export"
)

func exportCmd() *cobra.Command {
	var (
		userRef string
		from    string
		to      string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to an Excel workbook",
		Long: `Write a user's transactions and their spending summary to an .xlsx
workbook with Transactions, Category Summary, and Monthly Summary sheets.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			start, end, err := parseDateRange(from, to)
			if err != nil {
				return err
			}
			if end.IsZero() {
				end = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			user, err := resolveUser(ctx, store, userRef)
			if err != nil {
				return err
			}

			txns, err := store.TransactionsByDateRange(ctx, user.ID, start, end)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}
			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions to export."))
				return nil
			}

			if output == "" {
				output = fmt.Sprintf("%s-transactions-%s.xlsx", user.Username, time.Now().Format("2006-01-02"))
			}

			summary := analysis.BuildSummary(txns)
			if err := export.WriteWorkbook(output, txns, summary); err != nil {
				return fmt.Errorf("failed to write workbook: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Exported %d transactions to %s", len(txns), output)))
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or username")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <user>-transactions-<date>.xlsx)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
