package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
	"campusevents/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// capturingEmailService records every cancellation notice instead of
// sending it.
type capturingEmailService struct {
	sent []*domain.CancellationEmailData
	err  error
}

func (c *capturingEmailService) SendEventCancellation(_ context.Context, data *domain.CancellationEmailData) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, data)
	return nil
}

type fixture struct {
	events domain.EventRepository
	users  domain.UserRepository
	email  *capturingEmailService

	admin     *domain.User
	organizer *domain.User
	organizer2 *domain.User
	student   *domain.User
	student2  *domain.User
	visitor   *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		events: memory.NewEventRepository(),
		users:  memory.NewUserRepository(),
		email:  &capturingEmailService{},
	}
	ctx := context.Background()

	f.admin = domain.NewUser("admin", "System Admin", "admin@campus.edu", domain.RoleAdmin)
	f.organizer = domain.NewUser("org1", "Olive Organizer", "org1@campus.edu", domain.RoleOrganizer)
	f.organizer2 = domain.NewUser("org2", "Oscar Organizer", "org2@campus.edu", domain.RoleOrganizer)
	f.student = domain.NewUser("stud1", "Sam Student", "stud1@campus.edu", domain.RoleStudent)
	f.student2 = domain.NewUser("stud2", "Sue Student", "stud2@campus.edu", domain.RoleStudent)
	f.visitor = domain.NewUser("vis1", "Vera Visitor", "vis1@guest.org", domain.RoleVisitor)
	for _, u := range []*domain.User{f.admin, f.organizer, f.organizer2, f.student, f.student2, f.visitor} {
		require.NoError(t, f.users.Create(ctx, u))
	}
	return f
}

func (f *fixture) session(u *domain.User) domain.Session {
	return domain.Session{ActorID: u.ID, Role: u.Role}
}

func (f *fixture) eventService() domain.EventService {
	return NewEventService(f.events, f.users, f.email, testLogger())
}

func (f *fixture) addEvent(t *testing.T, name string, daysAhead, capacity int, organizerID string, attendees ...string) *domain.Event {
	t.Helper()
	e, err := domain.NewEvent(name, "desc", time.Now().AddDate(0, 0, daysAhead), "10:00", "Hall", capacity, organizerID)
	require.NoError(t, err)
	for _, id := range attendees {
		require.NoError(t, e.AddAttendee(id))
	}
	require.NoError(t, f.events.Create(context.Background(), e))
	return e
}
