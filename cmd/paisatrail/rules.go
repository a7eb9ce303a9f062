package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/paisatrail/paisatrail/internal/cli"
	"github.com/paisatrail/paisatrail/internal/model"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage category rules",
		Long: `Category rules map description patterns to categories. Rules are
matched highest priority first; a user's own rules and the global defaults
compete in the same ordering.`,
	}

	cmd.AddCommand(listRulesCmd())
	cmd.AddCommand(addRuleCmd())
	cmd.AddCommand(deactivateRuleCmd())

	return cmd
}

func listRulesCmd() *cobra.Command {
	var (
		userRef string
		global  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List category rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var scope *int64
			if !global {
				user, err := resolveUser(ctx, store, userRef)
				if err != nil {
					return err
				}
				scope = &user.ID
			}

			rules, err := store.ListRules(ctx, scope)
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}

			if len(rules) == 0 {
				fmt.Println(cli.InfoStyle.Render("No rules found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Priority"),
				cli.HeaderStyle.Render("Pattern"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Regex"),
				cli.HeaderStyle.Render("Active"))

			for _, r := range rules {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%v\t%v\n",
					r.ID, r.Priority, r.Pattern, r.Category, r.IsRegex, r.IsActive)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or username")
	cmd.Flags().BoolVar(&global, "global", false, "list the global rules instead of a user's")

	return cmd
}

func addRuleCmd() *cobra.Command {
	var (
		userRef  string
		priority int
		isRegex  bool
		global   bool
	)

	cmd := &cobra.Command{
		Use:   "add <pattern> <category>",
		Short: "Add a category rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pattern, category := args[0], args[1]

			if isRegex {
				if _, err := regexp.Compile("(?i)" + pattern); err != nil {
					return fmt.Errorf("invalid regex pattern: %w", err)
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rule := &model.CategoryRule{
				Pattern:  pattern,
				Category: category,
				Priority: priority,
				IsRegex:  isRegex,
				IsActive: true,
			}
			if !global {
				user, err := resolveUser(ctx, store, userRef)
				if err != nil {
					return err
				}
				rule.UserID = &user.ID
			}

			if err := store.CreateRule(ctx, rule); err != nil {
				return fmt.Errorf("failed to create rule: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Rule %d: %q -> %s (priority %d)", rule.ID, pattern, category, priority)))
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or username the rule belongs to")
	cmd.Flags().IntVar(&priority, "priority", 5, "matching priority (higher wins)")
	cmd.Flags().BoolVar(&isRegex, "regex", false, "treat the pattern as a regular expression")
	cmd.Flags().BoolVar(&global, "global", false, "create a global rule visible to all users")

	return cmd
}

func deactivateRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate a rule",
		Long:  `Deactivated rules stop matching but keep their history.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeactivateRule(ctx, id); err != nil {
				return fmt.Errorf("failed to deactivate rule: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deactivated rule %d", id)))
			return nil
		},
	}
}
