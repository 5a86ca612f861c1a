package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"campusevents/internal/adapters/export"
	"campusevents/internal/domain"
)

// NewExportCommand creates the headless export command: events and users
// snapshots plus the statistics report in both encodings.
func NewExportCommand(app *App, opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write CSV snapshots and the statistics report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			exporter := export.NewExporter(opts.ExportDir)

			events, err := app.Events.List(ctx)
			if err != nil {
				return err
			}
			users, err := app.Users.List(ctx)
			if err != nil {
				return err
			}

			path, err := exporter.SaveEvents(events)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s\n", path)

			path, err = exporter.SaveUsers(users)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s\n", path)

			sess, err := adminSession(ctx, app.Users)
			if err != nil {
				return err
			}
			stats, err := app.Stats.Overview(ctx, sess)
			if err != nil {
				return err
			}
			excelPath, wpsPath, err := exporter.SaveStatisticsReport(stats)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s\n", excelPath)
			fmt.Fprintf(out, "wrote %s\n", wpsPath)
			return nil
		},
	}
}

// NewCheckCommand creates the integrity check command.
func NewCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check referential integrity of the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			issues, err := app.Stats.Integrity(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintln(out, "registry is consistent")
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintln(out, issue)
			}
			return fmt.Errorf("%d integrity issues found", len(issues))
		},
	}
}

// adminSession builds a session for the first admin account, for headless
// commands that need admin-gated reads.
func adminSession(ctx context.Context, users domain.UserRepository) (domain.Session, error) {
	all, err := users.List(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, u := range all {
		if u.Role == domain.RoleAdmin {
			return domain.Session{ActorID: u.ID, Role: u.Role}, nil
		}
	}
	return domain.Session{}, fmt.Errorf("%w: no admin account in the registry", domain.ErrForbidden)
}
