package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

func mustEvent(t *testing.T, name string) *domain.Event {
	t.Helper()
	e, err := domain.NewEvent(name, "desc", time.Now().AddDate(0, 0, 7), "10:00", "Hall", 10, "org-1")
	require.NoError(t, err)
	return e
}

func TestEventRepositoryCreateAssignsShortID(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		e := mustEvent(t, "Sample Event Name")
		require.NoError(t, repo.Create(ctx, e))
		assert.Len(t, e.ID, 8)
		assert.False(t, seen[e.ID], "duplicate id generated")
		seen[e.ID] = true
	}
}

func TestEventRepositoryRejectsDuplicateExplicitID(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()

	e1 := mustEvent(t, "Sample Event Name")
	e1.ID = "fixed-id"
	require.NoError(t, repo.Create(ctx, e1))

	e2 := mustEvent(t, "Another Event Name")
	e2.ID = "fixed-id"
	assert.ErrorIs(t, repo.Create(ctx, e2), domain.ErrValidation)
}

func TestEventRepositoryListPreservesInsertionOrder(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()

	names := []string{"First Event Here", "Second Event Here", "Third Event Here"}
	for _, n := range names {
		require.NoError(t, repo.Create(ctx, mustEvent(t, n)))
	}

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, n := range names {
		assert.Equal(t, n, events[i].Name)
	}
}

func TestEventRepositoryDelete(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()

	e := mustEvent(t, "Sample Event Name")
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err := repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, e.ID), domain.ErrNotFound)

	events, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	u1 := domain.NewUser("alice", "Alice Nguyen", "alice@campus.edu", domain.RoleStudent)
	u2 := domain.NewUser("bob", "Bob Tran", "bob@campus.edu", domain.RoleVisitor)
	require.NoError(t, repo.Create(ctx, u1))
	require.NoError(t, repo.Create(ctx, u2))
	assert.Len(t, u1.ID, 8)

	got, err := repo.GetByID(ctx, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
