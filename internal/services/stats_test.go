package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

func TestOverview(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.events, f.users)
	ctx := context.Background()

	big := f.addEvent(t, "Big Conference", 10, 10, f.organizer.ID,
		f.student.ID, f.student2.ID, f.visitor.ID)
	f.addEvent(t, "Small Meetup", 5, 10, f.organizer2.ID, f.student.ID)
	empty := f.addEvent(t, "Empty Slot", 7, 20, f.organizer.ID)

	stats, err := svc.Overview(ctx, f.session(f.admin))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalEvents)
	assert.Equal(t, 4, stats.TotalAttendees)
	assert.Equal(t, 40, stats.TotalCapacity)
	assert.InDelta(t, 4.0/3.0, stats.AverageAttendees, 1e-9)
	assert.InDelta(t, 10.0, stats.FillRatePercent, 1e-9)

	require.NotNil(t, stats.MostPopular)
	assert.Equal(t, big.ID, stats.MostPopular.ID)
	require.NotNil(t, stats.LeastPopular)
	assert.Equal(t, empty.ID, stats.LeastPopular.ID)
}

func TestOverviewExtremesFirstEncounteredWins(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.events, f.users)
	ctx := context.Background()

	first := f.addEvent(t, "First Event", 5, 10, f.organizer.ID, f.student.ID)
	f.addEvent(t, "Second Event", 6, 10, f.organizer.ID, f.student2.ID)

	stats, err := svc.Overview(ctx, f.session(f.admin))
	require.NoError(t, err)
	assert.Equal(t, first.ID, stats.MostPopular.ID)
	assert.Equal(t, first.ID, stats.LeastPopular.ID)
}

func TestOverviewRoleBreakdown(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.events, f.users)
	ctx := context.Background()

	f.addEvent(t, "Mixed Crowd", 5, 10, f.organizer.ID,
		f.student.ID, f.student2.ID, f.visitor.ID)
	f.addEvent(t, "Students Only", 6, 10, f.organizer.ID, f.student.ID)

	stats, err := svc.Overview(ctx, f.session(f.admin))
	require.NoError(t, err)

	// One entry per role, in canonical role order.
	require.Len(t, stats.RoleBreakdown, len(domain.Roles))
	byRole := make(map[domain.Role]domain.RoleCount)
	for i, rc := range stats.RoleBreakdown {
		assert.Equal(t, domain.Roles[i], rc.Role)
		byRole[rc.Role] = rc
	}
	assert.Equal(t, 3, byRole[domain.RoleStudent].Count)
	assert.InDelta(t, 75.0, byRole[domain.RoleStudent].Percent, 1e-9)
	assert.Equal(t, 1, byRole[domain.RoleVisitor].Count)
	assert.Equal(t, 0, byRole[domain.RoleAdmin].Count)
}

func TestOverviewOrganizerBreakdownSortedByAttendees(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.events, f.users)
	ctx := context.Background()

	f.addEvent(t, "Quiet Event", 5, 10, f.organizer.ID, f.student.ID)
	f.addEvent(t, "Loud Event", 6, 10, f.organizer2.ID,
		f.student.ID, f.student2.ID, f.visitor.ID)

	stats, err := svc.Overview(ctx, f.session(f.admin))
	require.NoError(t, err)
	require.Len(t, stats.OrganizerBreakdown, 2)
	assert.Equal(t, f.organizer2.ID, stats.OrganizerBreakdown[0].OrganizerID)
	assert.Equal(t, f.organizer2.FullName, stats.OrganizerBreakdown[0].Name)
	assert.Equal(t, 3, stats.OrganizerBreakdown[0].Attendees)
	assert.InDelta(t, 3.0, stats.OrganizerBreakdown[0].Average, 1e-9)
	assert.Equal(t, f.organizer.ID, stats.OrganizerBreakdown[1].OrganizerID)
}

func TestOverviewBucketsSumToTotal(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.events, f.users)
	ctx := context.Background()

	f.addEvent(t, "Full House", 5, 2, f.organizer.ID, f.student.ID, f.student2.ID)
	f.addEvent(t, "Almost There", 6, 10, f.organizer.ID,
		f.student.ID, f.student2.ID, f.visitor.ID, f.admin.ID, f.organizer.ID,
		f.organizer2.ID, "x1", "x2")
	f.addEvent(t, "Ghost Town", 7, 10, f.organizer.ID)

	stats, err := svc.Overview(ctx, f.session(f.admin))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Buckets[domain.BucketFull])
	assert.Equal(t, 1, stats.Buckets[domain.BucketNearFull])
	assert.Equal(t, 1, stats.Buckets[domain.BucketEmpty])

	total := 0
	for _, n := range stats.Buckets {
		total += n
	}
	assert.Equal(t, stats.TotalEvents, total)
}

func TestOverviewEmptyRegistry(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.events, f.users)

	stats, err := svc.Overview(context.Background(), f.session(f.admin))
	require.NoError(t, err)
	assert.Zero(t, stats.TotalEvents)
	assert.Zero(t, stats.AverageAttendees)
	assert.Zero(t, stats.FillRatePercent)
	assert.Nil(t, stats.MostPopular)
	assert.Nil(t, stats.LeastPopular)
}

func TestOverviewAdminOnly(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.events, f.users)

	for _, u := range []*domain.User{f.organizer, f.student, f.visitor} {
		_, err := svc.Overview(context.Background(), f.session(u))
		assert.ErrorIs(t, err, domain.ErrForbidden, "role %s", u.Role)
	}
}

func TestOrganizerOverview(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.events, f.users)
	ctx := context.Background()

	f.addEvent(t, "Mine Alpha", 5, 10, f.organizer.ID, f.student.ID)
	best := f.addEvent(t, "Mine Beta", 6, 10, f.organizer.ID, f.student.ID, f.student2.ID)
	f.addEvent(t, "Not Mine", 7, 10, f.organizer2.ID, f.visitor.ID)

	report, err := svc.OrganizerOverview(ctx, f.session(f.organizer))
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalEvents)
	assert.Equal(t, 3, report.TotalAttendees)
	assert.Equal(t, 20, report.TotalCapacity)
	assert.InDelta(t, 1.5, report.AverageAttendees, 1e-9)
	assert.InDelta(t, 15.0, report.FillRatePercent, 1e-9)
	require.NotNil(t, report.BestEvent)
	assert.Equal(t, best.ID, report.BestEvent.ID)

	_, err = svc.OrganizerOverview(ctx, f.session(f.admin))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestIntegrity(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.events, f.users)
	ctx := context.Background()

	f.addEvent(t, "Clean Event", 5, 10, f.organizer.ID, f.student.ID)
	bad := f.addEvent(t, "Broken Event", 6, 10, "gone-organizer", "gone-attendee")

	issues, err := svc.Integrity(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0], bad.ID)
	assert.Contains(t, issues[0], "gone-organizer")
	assert.Contains(t, issues[1], "gone-attendee")
}
