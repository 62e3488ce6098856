package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateReportsFreshEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	created, err := repo.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// Replaying the same edge hits the unique constraint and is a no-op.
	created, err = repo.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollowRepository_ViewsAgreeOnTheSameEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := repo.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// One row realizes both views: alice's following and bob's followers.
	following, err := repo.FollowingIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, following)

	followers, err := repo.FollowerIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID}, followers)

	// The reverse direction does not exist.
	reverse, err := repo.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestFollowRepository_DeleteRemovesBothViews(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := repo.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, alice.ID, bob.ID))

	following, err := repo.FollowingIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)

	followers, err := repo.FollowerIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)

	// Deleting again is harmless.
	assert.NoError(t, repo.Delete(ctx, alice.ID, bob.ID))
}

func TestFollowRepository_FollowersAndFollowingUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := repo.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, carol.ID, bob.ID)
	require.NoError(t, err)

	followers, err := repo.Followers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := repo.Following(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)
}
