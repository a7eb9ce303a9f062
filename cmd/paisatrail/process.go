package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/paisatrail/paisatrail/internal/cli"
	"github.com/paisatrail/paisatrail/internal/engine"
	"github.com/paisatrail/paisatrail/internal/model"
)

func processCmd() *cobra.Command {
	var (
		userRef  string
		bankType string
	)

	cmd := &cobra.Command{
		Use:   "process <file>...",
		Short: "Parse and categorize statement files",
		Long: `Process one or more statement files: extract their text, parse the
transactions, categorize each one, and store the results. The bank format is
detected from the file when --bank-type is not given.`,
		Args: cobra.MinimumNArgs(1),
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

			eng := newEngine(store)

			var bar *progressbar.ProgressBar
			if len(args) > 1 {
				bar = progressbar.NewOptions(len(args),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionEnableColorCodes(true),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("[cyan]Processing statements...[reset]"),
				)
			}

			var failures int
			for _, path := range args {
				stmt, procErr := processFile(cmd, eng, user.ID, path, model.BankType(bankType))
				if bar != nil {
					_ = bar.Add(1)
					fmt.Fprintln(os.Stderr)
				}
				if procErr != nil {
					failures++
					fmt.Println(cli.ErrorStyle.Render(
						fmt.Sprintf("✗ %s: %v", filepath.Base(path), procErr)))
					continue
				}
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
					"✓ %s: statement %d, %d transactions (debits %s, credits %s)",
					filepath.Base(path), stmt.ID, stmt.TransactionCount,
					stmt.TotalDebits.StringFixed(2), stmt.TotalCredits.StringFixed(2))))
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d files failed", failures, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or username the statements belong to")
	cmd.Flags().StringVar(&bankType, "bank-type", "", "force the bank format (axis_credit, axis_savings)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func processFile(cmd *cobra.Command, eng *engine.Engine, userID int64, path string, override model.BankType) (*model.Statement, error) {
	ctx := cmd.Context()

	stmt, err := eng.CreateStatement(ctx, userID, path, override)
	if err != nil {
		return nil, err
	}
	return eng.ProcessStatement(ctx, stmt.ID)
}
