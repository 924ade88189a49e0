package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/leave_management/internal/app"
	"github.com/Skotchmaster/leave_management/internal/config"
	"github.com/Skotchmaster/leave_management/internal/logging"
	"github.com/Skotchmaster/leave_management/internal/models"
)

func newUsersCmd() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	users.AddCommand(newSetRoleCmd())
	return users
}

func newSetRoleCmd() *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:     "set-role",
		Short:   "Change a user's role (user, manager or admin)",
		Example: `  leaved users set-role --email boss@example.com --role manager`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.Setup(cfg.LogLevel, cfg.ServiceName)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.Users.SetRole(ctx, email, models.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user to update")
	cmd.Flags().StringVar(&role, "role", "", "new role: user, manager or admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
