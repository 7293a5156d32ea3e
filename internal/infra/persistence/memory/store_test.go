package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"minex/internal/domain/entity"
	"minex/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email string) *entity.User {
	now := time.Now()

	return &entity.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      email,
		Role:      entity.RoleBuyer,
		Following: []uuid.UUID{},
		Bookmarks: []uuid.UUID{},
		Stories:   []entity.Story{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	first, second := newUser("a@x.com"), newUser("b@x.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, second.ID, users[0].ID, "most recent first")

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	assert.ErrorIs(t, repo.Create(ctx, newUser("a@x.com")), repository.ErrEmailTaken)
}

func TestUserRepository_ReadsDoNotAlias(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	u := newUser("a@x.com")
	require.NoError(t, repo.Create(ctx, u))

	u.Name = "mutated after create"
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Name)

	got.Following = append(got.Following, uuid.New())
	again, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Following)
}

func TestUserRepository_FindFollowers(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	author, fan, other := newUser("a@x.com"), newUser("b@x.com"), newUser("c@x.com")
	fan.Following = []uuid.UUID{author.ID}
	for _, u := range []*entity.User{author, fan, other} {
		require.NoError(t, repo.Create(ctx, u))
	}

	followers, err := repo.FindFollowers(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, fan.ID, followers[0].ID)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)
	users := NewUserRepository(store)

	boom := errors.New("boom")
	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.UserRepo().Create(ctx, newUser("a@x.com")); err != nil {
			return err
		}
		if err := f.SessionRepo().Start(ctx, &entity.Session{ID: uuid.New(), UserID: uuid.New()}); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = NewSessionRepository(store).Current(ctx)
	assert.ErrorIs(t, err, repository.ErrNoActiveSession)
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)

	u := newUser("a@x.com")
	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.UserRepo().Create(ctx, u); err != nil {
			return err
		}
		// Reads inside the unit of work see its own writes.
		_, err := f.UserRepo().FindByEmail(ctx, "a@x.com")

		return err
	}))

	got, err := NewUserRepository(store).FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
}

func TestTransactionManager_PanicLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			_ = f.UserRepo().Create(ctx, newUser("a@x.com"))
			panic("boom")
		})
	})

	list, err := NewUserRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactionManager_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewTransactionManager(NewStore()).Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTransactionManager_SerialisesToggles(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)
	users := NewUserRepository(store)

	actor, target := newUser("a@x.com"), newUser("b@x.com")
	require.NoError(t, users.Create(ctx, actor))
	require.NoError(t, users.Create(ctx, target))

	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
				u, err := f.UserRepo().FindByID(ctx, actor.ID)
				if err != nil {
					return err
				}
				u.ToggleFollow(target.ID)

				return f.UserRepo().Update(ctx, u)
			})
		}()
	}
	wg.Wait()

	got, err := users.FindByID(ctx, actor.ID)
	require.NoError(t, err)
	// An even number of toggles lands back where it started.
	assert.False(t, got.Follows(target.ID))
}

func TestPostRepository_DeletePrunesBookmarks(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserRepository(store)
	posts := NewPostRepository(store)

	author := newUser("a@x.com")
	require.NoError(t, users.Create(ctx, author))
	post := &entity.Post{ID: uuid.New(), AuthorID: author.ID, Title: "t", Body: "b", CreatedAt: time.Now()}
	require.NoError(t, posts.Create(ctx, post))

	author.Bookmarks = []uuid.UUID{post.ID}
	require.NoError(t, users.Update(ctx, author))

	require.NoError(t, posts.Delete(ctx, post.ID))

	got, err := users.FindByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Bookmarks)
	assert.ErrorIs(t, posts.Delete(ctx, post.ID), repository.ErrPostNotFound)
}

func TestPostRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	posts := NewPostRepository(NewStore())

	author, groupID := uuid.New(), uuid.New()
	older := &entity.Post{ID: uuid.New(), AuthorID: author, Title: "older"}
	newer := &entity.Post{ID: uuid.New(), AuthorID: uuid.New(), Title: "newer", GroupID: &groupID}
	require.NoError(t, posts.Create(ctx, older))
	require.NoError(t, posts.Create(ctx, newer))

	all, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	byAuthor, err := posts.ListByAuthor(ctx, author)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, older.ID, byAuthor[0].ID)

	byGroup, err := posts.ListByGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	assert.Equal(t, newer.ID, byGroup[0].ID)
}

func TestChatRepository_PairIsUnordered(t *testing.T) {
	ctx := context.Background()
	chats := NewChatRepository(NewStore())

	a, b := uuid.New(), uuid.New()
	chat := &entity.Chat{ID: uuid.New(), UserA: a, UserB: b, Messages: []entity.Message{}}
	require.NoError(t, chats.Create(ctx, chat))

	found, err := chats.FindByPair(ctx, b, a)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, found.ID)

	dup := &entity.Chat{ID: uuid.New(), UserA: b, UserB: a}
	assert.ErrorIs(t, chats.Create(ctx, dup), repository.ErrChatExists)

	self := &entity.Chat{ID: uuid.New(), UserA: a, UserB: a}
	assert.Error(t, chats.Create(ctx, self))

	mine, err := chats.ListForUser(ctx, b)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(NewStore())

	recipient, other := uuid.New(), uuid.New()
	for _, uid := range []uuid.UUID{recipient, recipient, other} {
		require.NoError(t, repo.Create(ctx, &entity.Notification{ID: uuid.New(), UserID: uid, Title: "t"}))
	}

	changed, err := repo.MarkAllRead(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	changed, err = repo.MarkAllRead(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	list, err := repo.ListForUser(ctx, other)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(NewStore())

	_, err := repo.Current(ctx)
	assert.ErrorIs(t, err, repository.ErrNoActiveSession)

	first := &entity.Session{ID: uuid.New(), UserID: uuid.New()}
	second := &entity.Session{ID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, repo.Start(ctx, first))
	require.NoError(t, repo.Start(ctx, second))

	current, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	require.NoError(t, repo.End(ctx))
	require.NoError(t, repo.End(ctx))
	_, err = repo.Current(ctx)
	assert.ErrorIs(t, err, repository.ErrNoActiveSession)
}

func TestMineralAndGroupRepositories(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	groups := NewGroupRepository(store)
	minerals := NewMineralRepository(store)

	g := &entity.Group{ID: uuid.New(), Name: "Traders", Members: []uuid.UUID{}}
	require.NoError(t, groups.Create(ctx, g))
	g.AddMember(uuid.New())
	require.NoError(t, groups.Update(ctx, g))

	got, err := groups.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, 1)
	assert.ErrorIs(t, groups.Update(ctx, &entity.Group{ID: uuid.New()}), repository.ErrGroupNotFound)

	first := &entity.MineralListing{ID: uuid.New(), Name: "Chrome"}
	second := &entity.MineralListing{ID: uuid.New(), Name: "Manganese"}
	require.NoError(t, minerals.Create(ctx, first))
	require.NoError(t, minerals.Create(ctx, second))

	list, err := minerals.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Manganese", list[0].Name)
}
