// Package commands holds the operator subcommands of the tooling binary.
package commands

import (
	"context"
	"fmt"

	"github.com/jrazmi/zentask/app/zentask/config"
	"github.com/jrazmi/zentask/sdk/logger"
	"github.com/spf13/cobra"
)

// Env carries what every command needs to reach the database.
type Env struct {
	Build  string
	Prefix string
	Log    *logger.Logger
}

// NewRootCommand assembles the command tree.
func NewRootCommand(env Env) *cobra.Command {
	root := &cobra.Command{
		Use:           "tooling",
		Short:         "zentask operator tooling",
		Version:       env.Build,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(migrateCmd(env))
	root.AddCommand(usersCmd(env))
	root.AddCommand(tokensCmd(env))

	return root
}

// openStore opens the datastore without requiring token settings.
func openStore(env Env) (*config.Datastore, error) {
	cfg, err := config.LoadStore(env.Prefix)
	if err != nil {
		return nil, err
	}
	return config.OpenDatastore(env.Prefix, env.Log, cfg)
}

// withSite opens the datastore and auth case, runs fn and closes the
// datastore.
func withSite(ctx context.Context, env Env, fn func(ctx context.Context, site *config.Site) error) error {
	cfg, err := config.Load(env.Prefix)
	if err != nil {
		return err
	}

	ds, err := config.OpenDatastore(env.Prefix, env.Log, cfg.StoreConfig)
	if err != nil {
		return err
	}
	defer ds.Close()

	if cfg.AutoMigrate {
		if err := ds.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	site, err := config.NewSite(env.Build, env.Log, cfg, ds)
	if err != nil {
		return err
	}
	return fn(ctx, site)
}
