// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the trading role a member holds in the community.
type Role string

const (
	// RoleMiner indicates a member who extracts and sells ore.
	RoleMiner Role = "miner"
	// RoleDealer indicates a member who brokers trades.
	RoleDealer Role = "dealer"
	// RoleBuyer indicates a member who buys material. It is the default role.
	RoleBuyer Role = "buyer"
	// RoleAdmin indicates a moderator who can verify and suspend members.
	RoleAdmin Role = "admin"
)

// AllRoles lists every valid role in display order.
var AllRoles = Roles{RoleMiner, RoleDealer, RoleBuyer, RoleAdmin}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	return AllRoles.Contains(r)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
