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

func statementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Manage processed statements",
		Long:  `List, inspect, and delete uploaded statements and their transactions.`,
	}

	cmd.AddCommand(listStatementsCmd())
	cmd.AddCommand(showStatementCmd())
	cmd.AddCommand(deleteStatementCmd())

	return cmd
}

func listStatementsCmd() *cobra.Command {
	var userRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List statements for a user",
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

			statements, err := store.ListStatements(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("failed to list statements: %w", err)
			}

			if len(statements) == 0 {
				fmt.Println(cli.InfoStyle.Render("No statements found. Use 'paisatrail process' to upload one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("File"),
				cli.HeaderStyle.Render("Bank"),
				cli.HeaderStyle.Render("Status"),
				cli.HeaderStyle.Render("Txns"),
				cli.HeaderStyle.Render("Debits"),
				cli.HeaderStyle.Render("Credits"))

			for _, stmt := range statements {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
					stmt.ID, stmt.FileName, stmt.BankType.DisplayName(),
					renderStatus(stmt.ParsingStatus), stmt.TransactionCount,
					stmt.TotalDebits.StringFixed(2), stmt.TotalCredits.StringFixed(2))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or username")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func showStatementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a statement and its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid statement ID %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stmt, err := store.GetStatement(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to load statement: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Statement %d: %s", stmt.ID, stmt.FileName)))
			fmt.Printf("  Bank:    %s\n", stmt.BankType.DisplayName())
			fmt.Printf("  Status:  %s\n", renderStatus(stmt.ParsingStatus))
			fmt.Printf("  Debits:  %s\n", stmt.TotalDebits.StringFixed(2))
			fmt.Printf("  Credits: %s\n", stmt.TotalCredits.StringFixed(2))
			if stmt.ErrorDetail != "" {
				fmt.Printf("  Error:   %s\n", cli.ErrorStyle.Render(stmt.ErrorDetail))
			}

			txns, err := store.TransactionsByStatement(ctx, stmt.ID)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}
			if len(txns) == 0 {
				return nil
			}

			fmt.Println()
			printTransactions(txns)
			return nil
		},
	}
}

func deleteStatementCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a statement and all its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid statement ID %q", args[0])
			}

			if !force {
				fmt.Print(cli.WarningStyle.Render(
					fmt.Sprintf("Delete statement %d and all its transactions? [y/N] ", id)))
				var answer string
				_, _ = fmt.Scanln(&answer)
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteStatement(ctx, id); err != nil {
				return fmt.Errorf("failed to delete statement: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted statement %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func renderStatus(status model.ParsingStatus) string {
	switch status {
	case model.StatusCompleted:
		return cli.SuccessStyle.Render(string(status))
	case model.StatusFailed:
		return cli.ErrorStyle.Render(string(status))
	default:
		return cli.WarningStyle.Render(string(status))
	}
}
