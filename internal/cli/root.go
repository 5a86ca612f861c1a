// Package cli wires the services into a cobra command tree: an
// interactive menu session, headless exports, and an integrity check.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"campusevents/internal/domain"
)

// App bundles the services and stores the commands operate on.
type App struct {
	Users  domain.UserRepository
	Events domain.EventRepository

	EventService domain.EventService
	Attendees    domain.AttendeeService
	Search       domain.SearchService
	Stats        domain.StatsService

	Logger *slog.Logger
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ExportDir string
}

// NewRootCommand creates the root command. defaultExportDir seeds the
// --export-dir flag, typically from EXPORT_DIR.
func NewRootCommand(app *App, defaultExportDir string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "campusevents",
		Short: "Campus event registry",
		Long:  "An in-memory registry for campus events with role-based menus, search, statistics and CSV export.",
	}

	cmd.PersistentFlags().StringVar(&opts.ExportDir, "export-dir", defaultExportDir, "directory for CSV exports")

	cmd.AddCommand(NewRunCommand(app, opts))
	cmd.AddCommand(NewExportCommand(app, opts))
	cmd.AddCommand(NewCheckCommand(app))

	return cmd
}
