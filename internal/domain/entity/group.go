package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Group is a topical community that posts can be shared to.
type Group struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Members     []uuid.UUID `json:"members"`
	CreatedAt   time.Time   `json:"created_at"`
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID uuid.UUID) bool {
	return slices.Contains(g.Members, userID)
}

// AddMember prepends userID unless already present. It reports whether the
// member list changed.
func (g *Group) AddMember(userID uuid.UUID) bool {
	if g.HasMember(userID) {
		return false
	}
	g.Members = append([]uuid.UUID{userID}, g.Members...)

	return true
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	c := *g
	c.Members = slices.Clone(g.Members)

	return &c
}
