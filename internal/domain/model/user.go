//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"

	"github.com/target/mdbook-portal/internal/domain/auth"
)

// User is the client-side copy of a portal account.
type User struct {
	ID     ID        `json:"id"     yaml:"id"`
	Email  string    `json:"email"  yaml:"email"`
	Role   auth.Role `json:"role"   yaml:"role"`
	Active bool      `json:"active" yaml:"active"`
}

// Identity is the server view of the current user returned by GET /me.
type Identity = User

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate enforces the required login fields.
func (r LoginRequest) Validate() error {
	return requireEmailPassword(r.Email, r.Password)
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	Token string    `json:"token"`
	Role  auth.Role `json:"role"`
	Email string    `json:"email"`
}

// Credential converts the login response into the persisted credential triple.
func (r LoginResponse) Credential() auth.Credential {
	return auth.Credential{Token: r.Token, Role: auth.ParseRole(string(r.Role)), Email: r.Email}
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate enforces the required registration fields.
func (r RegisterRequest) Validate() error {
	return requireEmailPassword(r.Email, r.Password)
}

// CreateUserRequest is the payload for POST /admin/users.
type CreateUserRequest struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// Validate enforces required fields and defaults the role to reader.
func (r *CreateUserRequest) Validate() error {
	if err := requireEmailPassword(r.Email, r.Password); err != nil {
		return err
	}
	if r.Role == "" {
		r.Role = auth.RoleReader
	}
	if !r.Role.Valid() {
		return errors.New("role must be admin or reader")
	}
	return nil
}

// UpdateUserRequest is the partial payload for PATCH /admin/users/{id}.
// Only non-nil fields are sent.
type UpdateUserRequest struct {
	Role   *auth.Role `json:"role,omitempty"`
	Active *bool      `json:"active,omitempty"`
}

// Validate ensures at least one field is set and the role, if any, is known.
func (r UpdateUserRequest) Validate() error {
	if r.Role == nil && r.Active == nil {
		return errors.New("no changes")
	}
	if r.Role != nil && !r.Role.Valid() {
		return errors.New("role must be admin or reader")
	}
	return nil
}

func requireEmailPassword(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("email and password required")
	}
	return nil
}
