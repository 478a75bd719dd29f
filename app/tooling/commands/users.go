package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/zentask/app/zentask/config"
	"github.com/jrazmi/zentask/sdk/passwords"
	"github.com/jrazmi/zentask/sdk/validation"
	"github.com/spf13/cobra"
)

const minPasswordLength = 6

func usersCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(usersRegisterCmd(env))
	return cmd
}

func usersRegisterCmd(env Env) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user and their Inbox project",
		Example: `  tooling users register --email ada@example.com --password secret1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validation.IsEmail(email) {
				return errors.New("email must be a valid email address")
			}
			if len(password) < minPasswordLength {
				return fmt.Errorf("password must be at least %d characters", minPasswordLength)
			}
			if len(password) > passwords.MaxLength {
				return fmt.Errorf("password must be at most %d bytes", passwords.MaxLength)
			}

			return withSite(cmd.Context(), env, func(ctx context.Context, site *config.Site) error {
				res, err := site.Auth.Register(ctx, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %s (%s)\ntoken %s\n", res.User.ID, res.User.Email, res.Token)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
