package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/jrazmi/zentask/app/zentask/config"
	"github.com/spf13/cobra"
)

func tokensCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Work with bearer tokens",
	}
	cmd.AddCommand(tokensIssueCmd(env))
	return cmd
}

func tokensIssueCmd(env Env) *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Mint a bearer token for an existing user",
		Long:  "Mint a bearer token for an existing user. A zero --ttl uses TOKEN_TTL.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSite(cmd.Context(), env, func(ctx context.Context, site *config.Site) error {
				token, err := site.Auth.IssueToken(ctx, email, ttl)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the user")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime")
	cmd.MarkFlagRequired("email")

	return cmd
}
