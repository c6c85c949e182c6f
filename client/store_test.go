package client

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inviteshare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedInvitations inserts count invitations for the owner with strictly
// increasing creation times, so index count-1 is the newest.
func seedInvitations(b *fakeBackend, owner string, count int) []models.Invitation {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b.mu.Lock()
	defer b.mu.Unlock()
	seeded := []models.Invitation{}
	for i := 0; i < count; i++ {
		inv := models.Invitation{
			ID:        fmt.Sprintf("%s-%d", owner, i),
			Owner:     owner,
			Reviewer:  fmt.Sprintf("reviewer-%d@x.com", i),
			Status:    models.InvitationPending,
			ReadPost:  true,
			ExpiresAt: base.AddDate(0, 0, 7),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		b.invitations = append(b.invitations, inv)
		seeded = append(seeded, inv)
	}
	return seeded
}

func TestInvitationStore_AllSortsNewestFirst(t *testing.T) {
	backend := newFakeBackend(t)
	seedInvitations(backend, "a@x.com", 5)
	seedInvitations(backend, "other@x.com", 3)
	store := NewInvitationStore(backend.client())

	all, err := store.All(context.Background(), InvitationFilter{Owner: "a@x.com"})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "must be newest first")
	}
	assert.Equal(t, "a@x.com-4", all[0].ID)
}

func TestInvitationStore_AllEmpty(t *testing.T) {
	backend := newFakeBackend(t)
	store := NewInvitationStore(backend.client())

	all, err := store.All(context.Background(), InvitationFilter{Owner: "nobody@x.com"})
	require.NoError(t, err)
	assert.Empty(t, all, "empty collection is not an error")
}

// Sequential pages must yield every record exactly once, newest first, with
// the final page reporting no more results.
func TestInvitationStore_QueryPages(t *testing.T) {
	backend := newFakeBackend(t)
	seedInvitations(backend, "a@x.com", 15)
	store := NewInvitationStore(backend.client())
	ctx := context.Background()

	page1, total, err := store.Query(ctx, InvitationFilter{Owner: "a@x.com"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	require.Len(t, page1, 10)

	page2, total, err := store.Query(ctx, InvitationFilter{Owner: "a@x.com"}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	require.Len(t, page2, 5)

	seen := map[string]bool{}
	previous := time.Time{}
	for i, inv := range append(page1, page2...) {
		assert.False(t, seen[inv.ID], "record %s appeared twice", inv.ID)
		seen[inv.ID] = true
		if i > 0 {
			assert.False(t, inv.CreatedAt.After(previous), "order broken at %d", i)
		}
		previous = inv.CreatedAt
	}
	assert.Len(t, seen, 15)

	beyond, total, err := store.Query(ctx, InvitationFilter{Owner: "a@x.com"}, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Empty(t, beyond)
}

func TestInvitationStore_RetriesTransportErrors(t *testing.T) {
	backend := newFakeBackend(t)
	seedInvitations(backend, "a@x.com", 2)
	store := NewInvitationStore(backend.client())

	backend.failRequests(2)
	all, err := store.All(context.Background(), InvitationFilter{Owner: "a@x.com"})
	require.NoError(t, err, "two failures fit within the retry budget")
	assert.Len(t, all, 2)

	backend.failRequests(5)
	_, err = store.All(context.Background(), InvitationFilter{Owner: "a@x.com"})
	require.Error(t, err, "retry budget is bounded")
}

func TestSortByNewest_StableTies(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	invitations := []models.Invitation{
		{ID: "first", CreatedAt: at},
		{ID: "second", CreatedAt: at},
		{ID: "third", CreatedAt: at},
	}
	SortByNewest(invitations)
	assert.Equal(t, "first", invitations[0].ID)
	assert.Equal(t, "second", invitations[1].ID)
	assert.Equal(t, "third", invitations[2].ID)
}

func TestInvitationFilter_Key(t *testing.T) {
	assert.Equal(t, "", InvitationFilter{}.Key())
	assert.Equal(t, "owner=a%40x.com", InvitationFilter{Owner: "a@x.com"}.Key())
	assert.Equal(t, "reviewer=b%40x.com", InvitationFilter{Reviewer: "b@x.com"}.Key())
	// owner and reviewer views never collide
	assert.NotEqual(t, InvitationFilter{Owner: "a@x.com"}.Key(), InvitationFilter{Reviewer: "a@x.com"}.Key())
}
