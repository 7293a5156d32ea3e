package impl

import (
	"bytes"
	"context"
	"testing"

	"minex/internal/domain/entity"
	domainerrors "minex/internal/domain/errors"
	"minex/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialService_ToggleFollow_Involution(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	f.seed(t)
	ctx := context.Background()

	_, err := f.social.ToggleFollow(ctx, memory.SeedMinaID)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	f.signInSeed(t, "ryan@example.com")
	before, err := f.identity.CurrentUser(ctx)
	require.NoError(t, err)

	following, err := f.social.ToggleFollow(ctx, memory.SeedAdminID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = f.social.ToggleFollow(ctx, memory.SeedAdminID)
	require.NoError(t, err)
	assert.False(t, following)

	after, err := f.identity.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Following, after.Following)
}

func TestSocialService_ToggleFollow_Rejections(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	f.seed(t)
	f.signInSeed(t, "ryan@example.com")
	ctx := context.Background()

	_, err := f.social.ToggleFollow(ctx, memory.SeedRyanID)
	assert.ErrorIs(t, err, domainerrors.ErrSelfReference)

	_, err = f.social.ToggleFollow(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestSocialService_GetProfile(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	f.seed(t)
	ctx := context.Background()

	profile, err := f.social.GetProfile(ctx, memory.SeedMinaID)
	require.NoError(t, err)
	assert.Equal(t, "Mina", profile.User.Name)
	assert.Empty(t, profile.Posts)
	assert.Equal(t, 1, profile.FollowerCount)
	assert.False(t, profile.FollowedByViewer, "anonymous viewers follow nobody")

	f.signInSeed(t, "ryan@example.com")
	profile, err = f.social.GetProfile(ctx, memory.SeedMinaID)
	require.NoError(t, err)
	assert.True(t, profile.FollowedByViewer)

	profile, err = f.social.GetProfile(ctx, memory.SeedRyanID)
	require.NoError(t, err)
	require.Len(t, profile.Posts, 1)
	assert.Zero(t, profile.FollowerCount)

	_, err = f.social.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestSocialService_ListUsersAndStories(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	f.seed(t)
	ctx := context.Background()

	users, err := f.social.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, memory.SeedRyanID, users[0].ID)

	stories, err := f.social.ListStories(ctx, memory.SeedRyanID)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "Site visit", stories[0].Title)

	_, err = f.social.ListStories(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestSocialService_FollowQRCodeAndLink(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	f.seed(t)
	ctx := context.Background()

	png, err := f.social.FollowQRCode(ctx, memory.SeedAdminID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = f.social.FollowQRCode(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	f.signInSeed(t, "mina@example.com")
	link := "minex://follow/" + memory.SeedAdminID.String()

	for range 2 {
		target, err := f.social.FollowByLink(ctx, link)
		require.NoError(t, err)
		assert.Equal(t, memory.SeedAdminID, target.ID)

		mina, err := f.identity.CurrentUser(ctx)
		require.NoError(t, err)
		assert.True(t, mina.Follows(memory.SeedAdminID), "following by link never unfollows")
	}

	_, err = f.social.FollowByLink(ctx, "https://elsewhere.test/x")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestSocialService_FollowByLink_RejectsSelf(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	mina := f.register(t, "Mina", "mina@x.com", entity.RoleMiner)
	f.signIn(t, "mina@x.com")

	_, err := f.social.FollowByLink(context.Background(), "minex://follow/"+mina.ID.String())

	assert.ErrorIs(t, err, domainerrors.ErrSelfReference)
}
