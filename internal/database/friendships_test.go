package database_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"wishloop/models"
)

func TestIsModeratorForIsSymmetric(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	f := &models.Friendship{
		ID: uuid.NewString(), UserID: "alice", FriendID: "mod",
		Type: models.RelationshipModerator, Status: models.FriendshipAccepted,
	}
	require.NoError(t, db.Friendships.Create(ctx, f))

	// The single stored edge grants moderator standing in both directions.
	ok, err := db.Friendships.IsModeratorFor(ctx, "alice", "mod")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = db.Friendships.IsModeratorFor(ctx, "mod", "alice")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsModeratorForRequiresAcceptedModeratorEdge(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pending := &models.Friendship{
		ID: uuid.NewString(), UserID: "alice", FriendID: "bob",
		Type: models.RelationshipModerator, Status: models.FriendshipPending,
	}
	require.NoError(t, db.Friendships.Create(ctx, pending))

	friend := &models.Friendship{
		ID: uuid.NewString(), UserID: "alice", FriendID: "carol",
		Type: models.RelationshipFriend, Status: models.FriendshipAccepted,
	}
	require.NoError(t, db.Friendships.Create(ctx, friend))

	ok, err := db.Friendships.IsModeratorFor(ctx, "alice", "bob")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = db.Friendships.IsModeratorFor(ctx, "alice", "carol")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFriendshipLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	f := &models.Friendship{
		ID: uuid.NewString(), UserID: "alice", FriendID: "bob",
		Type: models.RelationshipFriend, Status: models.FriendshipPending,
	}
	require.NoError(t, db.Friendships.Create(ctx, f))

	got, err := db.Friendships.Get(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Equal(t, models.FriendshipPending, got.Status)

	// The reverse direction is a distinct edge.
	got, err = db.Friendships.Get(ctx, "bob", "alice")
	require.NoError(t, err)
	require.Nil(t, got)

	f.Status = models.FriendshipAccepted
	require.NoError(t, db.Friendships.Update(ctx, f))

	edges, err := db.Friendships.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, models.FriendshipAccepted, edges[0].Status)

	require.NoError(t, db.Friendships.Delete(ctx, f.ID))
	got, err = db.Friendships.Get(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Nil(t, got)
}
