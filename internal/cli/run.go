package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"campusevents/internal/adapters/export"
	"campusevents/internal/domain"
)

// NewRunCommand creates the interactive menu command. The session starts
// at role selection and every action runs as the chosen actor.
func NewRunCommand(app *App, opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive menu session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &menuSession{
				app:      app,
				exporter: export.NewExporter(opts.ExportDir),
				in:       bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
			}
			s.mainLoop(cmd.Context())
			return nil
		},
	}
}

// menuSession is one interactive run. eof flips when input runs out, which
// unwinds every menu loop.
type menuSession struct {
	app      *App
	exporter *export.Exporter
	in       *bufio.Scanner
	out      io.Writer
	eof      bool
}

func (s *menuSession) mainLoop(ctx context.Context) {
	for !s.eof {
		fmt.Fprintln(s.out, "\nCAMPUS EVENTS")
		fmt.Fprintln(s.out, "1. Admin")
		fmt.Fprintln(s.out, "2. Event organizer")
		fmt.Fprintln(s.out, "3. Student")
		fmt.Fprintln(s.out, "4. Visitor")
		fmt.Fprintln(s.out, "0. Exit")

		switch s.prompt("choice") {
		case "1":
			s.enterAs(ctx, domain.RoleAdmin)
		case "2":
			s.enterAs(ctx, domain.RoleOrganizer)
		case "3":
			s.enterAs(ctx, domain.RoleStudent)
		case "4":
			s.enterAs(ctx, domain.RoleVisitor)
		case "0":
			return
		default:
			if !s.eof {
				fmt.Fprintln(s.out, "unknown choice")
			}
		}
	}
}

// enterAs picks an actor of the given role and opens that role's menu.
func (s *menuSession) enterAs(ctx context.Context, role domain.Role) {
	actor := s.selectActor(ctx, role)
	if actor == nil {
		return
	}
	sess := domain.Session{ActorID: actor.ID, Role: actor.Role}
	fmt.Fprintf(s.out, "acting as %s (%s)\n", actor.FullName, actor.Role)

	switch role {
	case domain.RoleAdmin:
		s.adminMenu(ctx, sess)
	case domain.RoleOrganizer:
		s.organizerMenu(ctx, sess, actor)
	case domain.RoleStudent, domain.RoleVisitor:
		s.attendeeMenu(ctx, sess)
	}
}

func (s *menuSession) selectActor(ctx context.Context, role domain.Role) *domain.User {
	all, err := s.app.Users.List(ctx)
	if err != nil {
		s.fail(err)
		return nil
	}
	var candidates []*domain.User
	for _, u := range all {
		if u.Role == role {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		fmt.Fprintf(s.out, "no %s accounts\n", role)
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	for i, u := range candidates {
		fmt.Fprintf(s.out, "%d. %s (%s)\n", i+1, u.FullName, u.Username)
	}
	n, ok := s.promptInt("account")
	if !ok || n < 1 || n > len(candidates) {
		return nil
	}
	return candidates[n-1]
}

func (s *menuSession) prompt(label string) string {
	if s.eof {
		return ""
	}
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		s.eof = true
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *menuSession) promptInt(label string) (int, bool) {
	raw := s.prompt(label)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(s.out, "not a number")
		return 0, false
	}
	return n, true
}

func (s *menuSession) fail(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
}
