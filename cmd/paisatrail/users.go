package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/paisatrail/paisatrail/internal/cli"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
		Long:  `Create and list the users that statements and rules belong to.`,
	}

	cmd.AddCommand(createUserCmd())
	cmd.AddCommand(listUsersCmd())
	cmd.AddCommand(deactivateUserCmd())

	return cmd
}

func createUserCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a new user",
		Long:  `Create a user account and seed it with the default category rules.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			user, seeded, err := newEngine(store).ProvisionUser(ctx, args[0], email)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Created user %s (ID %d) with %d default rules", user.Username, user.ID, seeded)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address for the user")

	return cmd
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all active users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			users, err := store.ListUsers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if len(users) == 0 {
				fmt.Println(cli.InfoStyle.Render("No users found. Use 'paisatrail users create' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Username"),
				cli.HeaderStyle.Render("Email"),
				cli.HeaderStyle.Render("Created"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 30),
				strings.Repeat("-", 10))

			for _, u := range users {
				email := u.Email
				if email == "" {
					email = cli.SubtleStyle.Render("(none)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, email, u.CreatedAt.Format("2006-01-02"))
			}

			return nil
		},
	}
}

func deactivateUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <user>",
		Short: "Deactivate a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			user, err := resolveUser(ctx, store, args[0])
			if err != nil {
				return err
			}

			if err := store.DeactivateUser(ctx, user.ID); err != nil {
				return fmt.Errorf("failed to deactivate user: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deactivated user %s", user.Username)))
			return nil
		},
	}
}
