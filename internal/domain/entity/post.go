package entity

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post is a feed entry. Comments are kept most recent first.
type Post struct {
	ID        uuid.UUID     `json:"id"`
	AuthorID  uuid.UUID     `json:"author_id"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	Image     string        `json:"image"`
	Likes     int           `json:"likes"`
	CreatedAt time.Time     `json:"created_at"`
	Comments  []Comment     `json:"comments"`
	GroupID   *uuid.UUID    `json:"group_id,omitempty"`
	Minerals  []MineralItem `json:"minerals"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// MineralItem is a line item embedded in a post describing offered material.
type MineralItem struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Grade   string    `json:"grade"`
	Tonnage float64   `json:"tonnage"`
}

// Matches reports whether the lower-cased query occurs in the title, body or
// any embedded mineral name. An empty query matches every post.
func (p *Post) Matches(query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), query) || strings.Contains(strings.ToLower(p.Body), query) {
		return true
	}

	return slices.ContainsFunc(p.Minerals, func(m MineralItem) bool {
		return strings.Contains(strings.ToLower(m.Name), query)
	})
}

// InGroup reports whether the post was shared to the group.
func (p *Post) InGroup(groupID uuid.UUID) bool {
	return p.GroupID != nil && *p.GroupID == groupID
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Comments = slices.Clone(p.Comments)
	c.Minerals = slices.Clone(p.Minerals)
	if p.GroupID != nil {
		g := *p.GroupID
		c.GroupID = &g
	}

	return &c
}
