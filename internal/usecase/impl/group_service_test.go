package impl

import (
	"context"
	"testing"

	"minex/internal/domain/entity"
	domainerrors "minex/internal/domain/errors"
	"minex/internal/infra/persistence/memory"
	"minex/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupService_CreateGroup(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	ada := f.register(t, "Ada", "a@x.com", entity.RoleMiner)
	ctx := context.Background()

	_, err := f.groups.CreateGroup(ctx, &usecase.CreateGroupInput{Name: "Cape Ore"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated, "group creation requires a session")

	f.signIn(t, "a@x.com")

	_, err = f.groups.CreateGroup(ctx, &usecase.CreateGroupInput{Name: " "})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	group, err := f.groups.CreateGroup(ctx, &usecase.CreateGroupInput{Name: "Cape Ore", Description: "West coast"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ada.ID}, group.Members)

	groups, err := f.groups.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Cape Ore", groups[0].Name)
}

func TestGroupService_JoinGroup_Idempotent(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	f.seed(t)
	ctx := context.Background()

	_, err := f.groups.JoinGroup(ctx, memory.SeedGroupID)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	f.signInSeed(t, "admin@example.com")

	_, err = f.groups.JoinGroup(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrGroupNotFound)

	for range 2 {
		group, err := f.groups.JoinGroup(ctx, memory.SeedGroupID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{memory.SeedAdminID, memory.SeedRyanID, memory.SeedMinaID}, group.Members)
	}
}

func TestGroupService_GroupFeed(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	f.seed(t)
	ctx := context.Background()

	f.signInSeed(t, "mina@example.com")
	groupID := memory.SeedGroupID
	shared, err := f.posts.CreatePost(ctx, &usecase.CreatePostInput{Title: "Group only", Body: "Members first", GroupID: &groupID})
	require.NoError(t, err)

	feed, err := f.groups.GroupFeed(ctx, memory.SeedGroupID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, shared.ID, feed[0].ID)

	_, err = f.groups.GroupFeed(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrGroupNotFound)
}
