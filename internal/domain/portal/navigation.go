// Package portal holds the pure UI state of the portal controller: navigation
// and book selection. Values are immutable; transitions return new values.
package portal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/target/mdbook-portal/internal/domain/auth"
)

var (
	// ErrNavigationForbidden is returned when a transition would reach an admin-only state.
	ErrNavigationForbidden = errors.New("navigation requires the admin role")
	// ErrUnknownNavigation is returned for module or view names outside the known set.
	ErrUnknownNavigation = errors.New("unknown navigation target")
)

// Module is a top-level area of the portal.
type Module string

const (
	ModuleBooks Module = "books"
	ModuleUsers Module = "users"
)

// View is a sub-view inside a module.
type View string

const (
	ViewList   View = "list"
	ViewCreate View = "create"
)

// ParseModule maps user input to a Module.
func ParseModule(s string) (Module, error) {
	switch m := Module(strings.ToLower(strings.TrimSpace(s))); m {
	case ModuleBooks, ModuleUsers:
		return m, nil
	default:
		return "", fmt.Errorf("%w: module %q", ErrUnknownNavigation, s)
	}
}

// ParseView maps user input to a View.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewList, ViewCreate:
		return v, nil
	default:
		return "", fmt.Errorf("%w: view %q", ErrUnknownNavigation, s)
	}
}

// Navigation is the active module and per-module views, bound to the role it
// was built for. Only the transitions below construct non-default values, so
// a non-admin Navigation can never point at the users module or a create view.
type Navigation struct {
	role      auth.Role
	module    Module
	booksView View
	usersView View
}

// NewNavigation returns the landing state for role: the books list.
func NewNavigation(role auth.Role) Navigation {
	return Navigation{
		role:      role,
		module:    ModuleBooks,
		booksView: ViewList,
		usersView: ViewList,
	}
}

func (n Navigation) Role() auth.Role      { return n.role }
func (n Navigation) Module() Module       { return n.normalized().module }
func (n Navigation) BooksView() View      { return n.normalized().booksView }
func (n Navigation) UsersView() View      { return n.normalized().usersView }
func (n Navigation) UsersReachable() bool { return n.role.IsAdmin() }

// normalized maps the zero value to the landing state.
func (n Navigation) normalized() Navigation {
	if n.module == "" {
		return NewNavigation(n.role)
	}
	return n
}

// WithModule switches the active module.
func (n Navigation) WithModule(m Module) (Navigation, error) {
	switch m {
	case ModuleBooks:
	case ModuleUsers:
		if !n.role.IsAdmin() {
			return n, ErrNavigationForbidden
		}
	default:
		return n, fmt.Errorf("%w: module %q", ErrUnknownNavigation, m)
	}
	next := n.normalized()
	next.module = m
	return next, nil
}

// WithBooksView switches the books sub-view and activates the books module.
func (n Navigation) WithBooksView(v View) (Navigation, error) {
	switch v {
	case ViewList:
	case ViewCreate:
		if !n.role.IsAdmin() {
			return n, ErrNavigationForbidden
		}
	default:
		return n, fmt.Errorf("%w: view %q", ErrUnknownNavigation, v)
	}
	next := n.normalized()
	next.module = ModuleBooks
	next.booksView = v
	return next, nil
}

// WithUsersView switches the users sub-view and activates the users module.
func (n Navigation) WithUsersView(v View) (Navigation, error) {
	if v != ViewList && v != ViewCreate {
		return n, fmt.Errorf("%w: view %q", ErrUnknownNavigation, v)
	}
	if !n.role.IsAdmin() {
		return n, ErrNavigationForbidden
	}
	next := n.normalized()
	next.module = ModuleUsers
	next.usersView = v
	return next, nil
}

// ForRole rebinds the navigation to role. Views kept are only those role may reach;
// anything else falls back to the books list.
func (n Navigation) ForRole(role auth.Role) Navigation {
	if role.IsAdmin() {
		next := n.normalized()
		next.role = role
		return next
	}
	return NewNavigation(role)
}
