package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
	"campusevents/internal/repository/memory"
	"campusevents/internal/services"
)

type testEnv struct {
	app     *App
	admin   *domain.User
	student *domain.User
	event   *domain.Event
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	users := memory.NewUserRepository()
	events := memory.NewEventRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	admin := domain.NewUser("admin", "System Admin", "admin@campus.edu", domain.RoleAdmin)
	organizer := domain.NewUser("org1", "Olive Organizer", "org1@campus.edu", domain.RoleOrganizer)
	student := domain.NewUser("stud1", "Sam Student", "stud1@campus.edu", domain.RoleStudent)
	for _, u := range []*domain.User{admin, organizer, student} {
		require.NoError(t, users.Create(ctx, u))
	}

	event, err := domain.NewEvent("Jazz Night", "live music", time.Now().AddDate(0, 0, 10), "19:00", "Hall B", 30, organizer.ID)
	require.NoError(t, err)
	require.NoError(t, events.Create(ctx, event))

	return &testEnv{
		app: &App{
			Users:        users,
			Events:       events,
			EventService: services.NewEventService(events, users, nil, logger),
			Attendees:    services.NewAttendeeService(events, users),
			Search:       services.NewSearchService(events),
			Stats:        services.NewStatsService(events, users),
			Logger:       logger,
		},
		admin:   admin,
		student: student,
		event:   event,
	}
}

func runScript(t *testing.T, env *testEnv, dir, script string) string {
	t.Helper()
	cmd := NewRootCommand(env.app, dir)
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(script))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"run"})
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRunStudentRegisterFlow(t *testing.T) {
	env := newTestEnv(t)
	script := strings.Join([]string{
		"3",          // student role
		"1",          // available events
		"3",          // register
		env.event.ID, //   for the seeded event
		"4",          // my registrations
		"0",          // back
		"0",          // exit
	}, "\n") + "\n"

	out := runScript(t, env, t.TempDir(), script)
	assert.Contains(t, out, "acting as Sam Student")
	assert.Contains(t, out, `registered for "Jazz Night" (1/30)`)

	stored, err := env.app.Events.GetByID(context.Background(), env.event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{env.student.ID}, stored.Attendees)
}

func TestRunAdminDeleteFlow(t *testing.T) {
	env := newTestEnv(t)
	script := strings.Join([]string{
		"1",          // admin role
		"3",          // delete event
		env.event.ID,
		"YES", // empty roster, no name confirmation needed
		"0",
		"0",
	}, "\n") + "\n"

	out := runScript(t, env, t.TempDir(), script)
	assert.Contains(t, out, `deleted "Jazz Night"`)

	_, err := env.app.Events.GetByID(context.Background(), env.event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunExitsOnEOF(t *testing.T) {
	env := newTestEnv(t)
	out := runScript(t, env, t.TempDir(), "3\n1\n")
	assert.Contains(t, out, "EVENTS MENU")
}

func TestExportCommand(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()

	cmd := NewRootCommand(env.app, ".")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"export", "--export-dir", dir})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{"events.csv", "users.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	reports, err := filepath.Glob(filepath.Join(dir, "statistics_report_*.csv"))
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestCheckCommand(t *testing.T) {
	env := newTestEnv(t)

	cmd := NewRootCommand(env.app, ".")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"check"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "registry is consistent")

	// A dangling attendee turns the check into a failure.
	env.event.Attendees = append(env.event.Attendees, "ghost")
	cmd = NewRootCommand(env.app, ".")
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"check"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "ghost")
}
