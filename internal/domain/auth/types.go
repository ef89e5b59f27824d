package auth

// Package auth contains domain-level types for the portal credential.
// It is pure and free of storage and transport concerns.

import "strings"

// Role represents the portal authorization role carried by a credential.
// Keep string form: it is persisted and sent on the wire as-is.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleReader Role = "reader"
)

// ParseRole maps a wire/storage value to a Role. Unknown values yield the empty role,
// which is treated as non-admin everywhere.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleReader:
		return RoleReader
	default:
		return ""
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleReader }

// IsAdmin reports whether r grants access to the admin surface.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

func (r Role) String() string { return string(r) }

// Credential is the identity triple persisted across client restarts.
// Token, Role and Email are always written and cleared together.
type Credential struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
}

// IsZero reports whether no field of the credential is set.
func (c Credential) IsZero() bool {
	return c.Token == "" && c.Role == "" && c.Email == ""
}

// Authenticated reports whether the credential carries a token.
func (c Credential) Authenticated() bool { return c.Token != "" }

// IsAdmin reports whether the credential is an authenticated admin.
func (c Credential) IsAdmin() bool { return c.Authenticated() && c.Role.IsAdmin() }
