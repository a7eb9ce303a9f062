package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/paisatrail/paisatrail/internal/cli"
	"github.com/paisatrail/paisatrail/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Query and correct transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(recategorizeCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		userRef  string
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			var txns []model.Transaction
			if category != "" {
				txns, err = store.TransactionsByCategory(ctx, user.ID, category)
			} else {
				txns, err = store.TransactionsByUser(ctx, user.ID, limit)
			}
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			printTransactions(txns)
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or username")
	cmd.Flags().StringVar(&category, "category", "", "only show transactions in this category")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of transactions (0 for all)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func recategorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recategorize <transaction-id> <category>",
		Short: "Move a transaction to a different category",
		Long: `Override the rule-assigned category of a transaction. The original
category stays recorded and the transaction is marked as user corrected, so a
later reprocessing run will not silently undo the correction.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction ID %q", args[0])
			}
			category := strings.TrimSpace(args[1])
			if category == "" {
				return fmt.Errorf("category must not be empty")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpdateTransactionCategory(ctx, id, category); err != nil {
				return fmt.Errorf("failed to recategorize transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Transaction %d moved to %s", id, category)))
			return nil
		},
	}
}

func printTransactions(txns []model.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Description"),
		cli.HeaderStyle.Render("Amount"),
		cli.HeaderStyle.Render("Dir"),
		cli.HeaderStyle.Render("Category"))

	for _, t := range txns {
		desc := t.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		category := t.Category
		if t.UserCorrected {
			category += " *"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Date.Format("2006-01-02"), desc,
			t.Amount.StringFixed(2), t.Direction, category)
	}
}
