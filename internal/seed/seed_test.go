package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
	"campusevents/internal/repository/memory"
)

func TestDemo(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	events := memory.NewEventRepository()

	require.NoError(t, Demo(ctx, users, events))

	allUsers, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, allUsers, 9)

	counts := make(map[domain.Role]int)
	for _, u := range allUsers {
		counts[u.Role]++
		assert.NotEmpty(t, u.ID)
	}
	assert.Equal(t, 1, counts[domain.RoleAdmin])
	assert.Equal(t, 3, counts[domain.RoleOrganizer])
	assert.Equal(t, 3, counts[domain.RoleStudent])
	assert.Equal(t, 2, counts[domain.RoleVisitor])

	allEvents, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, allEvents, 4)

	var rosterSizes []int
	for _, e := range allEvents {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.OrganizerID)
		rosterSizes = append(rosterSizes, e.AttendeeCount())
	}
	assert.Equal(t, []int{4, 1, 3, 2}, rosterSizes)

	// The seeded organizer and attendee IDs must all resolve.
	for _, e := range allEvents {
		_, err := users.GetByID(ctx, e.OrganizerID)
		assert.NoError(t, err)
		for _, id := range e.Attendees {
			_, err := users.GetByID(ctx, id)
			assert.NoError(t, err)
		}
	}
}
