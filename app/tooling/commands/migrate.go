package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func migrateCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending embedded migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := openStore(env)
			if err != nil {
				return err
			}
			defer ds.Close()

			env.Log.InfoContext(cmd.Context(), "running migration", "driver", ds.Driver)
			if err := ds.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.AddCommand(migrateStatusCmd(env))
	return cmd
}

func migrateStatusCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List embedded migrations and whether each is applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := openStore(env)
			if err != nil {
				return err
			}
			defer ds.Close()

			files, err := ds.MigrationFiles()
			if err != nil {
				return fmt.Errorf("load migrations: %w", err)
			}
			statuses, err := ds.Repositories.Migrations.Status(cmd.Context(), files)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tAPPLIED\tAPPLIED AT\tNOTE")
			for _, st := range statuses {
				appliedAt := "-"
				if st.AppliedAt != nil {
					appliedAt = st.AppliedAt.UTC().Format(time.RFC3339)
				}
				note := ""
				if st.Modified {
					note = "modified"
				}
				fmt.Fprintf(w, "%s\t%t\t%s\t%s\n", st.Version, st.Applied, appliedAt, note)
			}
			return w.Flush()
		},
	}
}
