package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/paisatrail/paisatrail/internal/analysis"
	"github.com/paisatrail/paisatrail/internal/cli"
)

func analyzeCmd() *cobra.Command {
	var (
		userRef string
		from    string
		to      string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize spending for a user",
		Long: `Build a spending summary over a date range: debit and credit totals,
per-category spend, the top spending categories, and monthly breakdowns.
Without --from/--to the summary covers the user's full history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			start, end, err := parseDateRange(from, to)
			if err != nil {
				return err
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

			summary, err := newEngine(store).SpendingAnalysis(ctx, user.ID, start, end)
			if err != nil {
				return err
			}

			if summary.TransactionCount == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions in the selected range."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Spending summary for %s", user.Username)))
			fmt.Printf("  Transactions: %d\n", summary.TransactionCount)
			fmt.Printf("  Total spend:  %s\n", summary.TotalDebits.StringFixed(2))
			fmt.Printf("  Total income: %s\n", summary.TotalCredits.StringFixed(2))
			if avg, ok := analysis.AverageDebit(summary); ok {
				fmt.Printf("  Avg debit:    %s\n", avg.StringFixed(2))
			}
			fmt.Println()

			fmt.Println(cli.HeaderStyle.Render("Top categories"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, c := range summary.TopCategories {
				fmt.Fprintf(w, "  %s\t%s\t(%d txns)\n",
					c.Category, c.TotalAmount.StringFixed(2), c.TransactionCount)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Println()

			fmt.Println(cli.HeaderStyle.Render("By month"))
			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Month\tSpending\tIncome\tTxns\n")
			for _, m := range summary.Monthly {
				fmt.Fprintf(w, "  %s\t%s\t%s\t%d\n",
					m.Month, m.Spending.StringFixed(2), m.Income.StringFixed(2), m.TransactionCount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or username")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD), inclusive")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func compareCmd() *cobra.Command {
	var userRef string

	cmd := &cobra.Command{
		Use:   "compare <baseline-month> <target-month>",
		Short: "Compare spending between two months",
		Long:  `Compare spending between two YYYY-MM months, e.g. 'compare 2024-09 2024-10'.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			user, err := resolveUser(ctx, store, userRef)
			if err != nil {
				return err
			}

			cmpResult, err := newEngine(store).CompareMonths(ctx, user.ID, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(
				fmt.Sprintf("%s vs %s", cmpResult.Baseline.Month, cmpResult.Target.Month)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  \t%s\t%s\n", cmpResult.Baseline.Month, cmpResult.Target.Month)
			fmt.Fprintf(w, "  Spending\t%s\t%s\n",
				cmpResult.Baseline.Spending.StringFixed(2), cmpResult.Target.Spending.StringFixed(2))
			fmt.Fprintf(w, "  Transactions\t%d\t%d\n",
				cmpResult.Baseline.TransactionCount, cmpResult.Target.TransactionCount)
			if err := w.Flush(); err != nil {
				return err
			}

			diff := cmpResult.SpendingDifference
			line := fmt.Sprintf("Spending change: %s (%+.1f%%)", diff.StringFixed(2), cmpResult.SpendingChangePercent)
			switch diff.Sign() {
			case 1:
				fmt.Println(cli.WarningStyle.Render(line))
			case -1:
				fmt.Println(cli.SuccessStyle.Render(line))
			default:
				fmt.Println(cli.InfoStyle.Render(line))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or username")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// parseDateRange turns optional YYYY-MM-DD bounds into time values. The end
// date is widened to the last instant of its day so it stays inclusive.
func parseDateRange(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time

	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return start, end, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		start = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return start, end, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		end = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return start, end, fmt.Errorf("--to must not be before --from")
	}
	return start, end, nil
}
