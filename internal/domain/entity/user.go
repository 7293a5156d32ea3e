// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is a member of the trading community.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      Role        `json:"role"`
	Verified  bool        `json:"verified"`
	Suspended bool        `json:"suspended"`
	Following []uuid.UUID `json:"following"` // Set of followed user IDs, most recently followed first.
	Bookmarks []uuid.UUID `json:"bookmarks"` // Saved post IDs, most recently saved first.
	Stories   []Story     `json:"stories"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Story is a short image update shown on a member's profile.
type Story struct {
	ID    uuid.UUID `json:"id"`
	Image string    `json:"image"`
	Title string    `json:"title"`
}

// Credential holds the secret used to authenticate a user.
type Credential struct {
	UserID       uuid.UUID
	PasswordHash string
	UpdatedAt    time.Time
}

// Follows reports whether the user follows target.
func (u *User) Follows(target uuid.UUID) bool {
	return slices.Contains(u.Following, target)
}

// HasBookmarked reports whether the user saved the post.
func (u *User) HasBookmarked(postID uuid.UUID) bool {
	return slices.Contains(u.Bookmarks, postID)
}

// ToggleFollow flips membership of target in the following set and reports
// whether the user follows target afterwards.
func (u *User) ToggleFollow(target uuid.UUID) bool {
	var following bool
	u.Following, following = toggleMember(u.Following, target)

	return following
}

// ToggleBookmark flips membership of postID in the bookmarks and reports
// whether the post is bookmarked afterwards.
func (u *User) ToggleBookmark(postID uuid.UUID) bool {
	var saved bool
	u.Bookmarks, saved = toggleMember(u.Bookmarks, postID)

	return saved
}

// RemoveBookmark drops postID from the bookmarks and reports whether it was present.
func (u *User) RemoveBookmark(postID uuid.UUID) bool {
	before := len(u.Bookmarks)
	u.Bookmarks = slices.DeleteFunc(u.Bookmarks, func(id uuid.UUID) bool { return id == postID })

	return len(u.Bookmarks) != before
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Following = slices.Clone(u.Following)
	c.Bookmarks = slices.Clone(u.Bookmarks)
	c.Stories = slices.Clone(u.Stories)

	return &c
}

// toggleMember removes id when present, otherwise prepends it.
func toggleMember(ids []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	if idx := slices.Index(ids, id); idx >= 0 {
		return slices.Delete(slices.Clone(ids), idx, idx+1), false
	}

	return append([]uuid.UUID{id}, ids...), true
}
