// Package memory contains the in-process implementation of the persistence layer.
// All collections live in one Store guarded by a single RWMutex; units of work run
// against a copy of the state that replaces the live state only when they succeed.
package memory

import (
	"sync"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// Store owns every entity collection plus the process-wide session.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// state is the full data set. Order slices hold IDs most-recent-first.
type state struct {
	users       map[uuid.UUID]*entity.User
	userOrder   []uuid.UUID
	credentials map[uuid.UUID]*entity.Credential

	posts     map[uuid.UUID]*entity.Post
	postOrder []uuid.UUID

	chats     map[uuid.UUID]*entity.Chat
	chatOrder []uuid.UUID

	groups     map[uuid.UUID]*entity.Group
	groupOrder []uuid.UUID

	minerals      []*entity.MineralListing
	notifications []*entity.Notification

	session *entity.Session
}

func newState() *state {
	return &state{
		users:       make(map[uuid.UUID]*entity.User),
		credentials: make(map[uuid.UUID]*entity.Credential),
		posts:       make(map[uuid.UUID]*entity.Post),
		chats:       make(map[uuid.UUID]*entity.Chat),
		groups:      make(map[uuid.UUID]*entity.Group),
	}
}

// clone deep-copies the state so a unit of work can be discarded.
func (s *state) clone() *state {
	c := &state{
		users:         make(map[uuid.UUID]*entity.User, len(s.users)),
		userOrder:     append([]uuid.UUID(nil), s.userOrder...),
		credentials:   make(map[uuid.UUID]*entity.Credential, len(s.credentials)),
		posts:         make(map[uuid.UUID]*entity.Post, len(s.posts)),
		postOrder:     append([]uuid.UUID(nil), s.postOrder...),
		chats:         make(map[uuid.UUID]*entity.Chat, len(s.chats)),
		chatOrder:     append([]uuid.UUID(nil), s.chatOrder...),
		groups:        make(map[uuid.UUID]*entity.Group, len(s.groups)),
		groupOrder:    append([]uuid.UUID(nil), s.groupOrder...),
		minerals:      make([]*entity.MineralListing, len(s.minerals)),
		notifications: make([]*entity.Notification, len(s.notifications)),
	}

	for id, u := range s.users {
		c.users[id] = u.Clone()
	}
	for id, cred := range s.credentials {
		cp := *cred
		c.credentials[id] = &cp
	}
	for id, p := range s.posts {
		c.posts[id] = p.Clone()
	}
	for id, ch := range s.chats {
		c.chats[id] = ch.Clone()
	}
	for id, g := range s.groups {
		c.groups[id] = g.Clone()
	}
	for i, m := range s.minerals {
		cp := *m
		c.minerals[i] = &cp
	}
	for i, n := range s.notifications {
		cp := *n
		c.notifications[i] = &cp
	}
	if s.session != nil {
		cp := *s.session
		c.session = &cp
	}

	return c
}

// access routes a repository call to either the live state under the store lock,
// or to the working copy of the enclosing unit of work, which already holds the write lock.
type access struct {
	store *Store
	tx    *state
}

func (a access) read(fn func(s *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	return fn(a.store.state)
}

func (a access) write(fn func(s *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	return fn(a.store.state)
}

func prepend(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return append([]uuid.UUID{id}, ids...)
}

func without(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}

	return out
}
