package testutil

import (
	"fmt"
	"strings"

	"github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/domain/model"
)

// BookBuilder provides a fluent interface for building Book fixtures.
type BookBuilder struct {
	book model.Book
}

// NewBook creates a BookBuilder with sensible defaults.
func NewBook() *BookBuilder {
	return &BookBuilder{book: model.Book{ID: "1", Title: "Guide", Slug: "guide"}}
}

// WithID sets the book id.
func (b *BookBuilder) WithID(id model.ID) *BookBuilder {
	b.book.ID = id
	return b
}

// WithTitle sets the title and derives the slug from it.
func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.book.Title = title
	b.book.Slug = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")
	return b
}

// WithSlug overrides the slug.
func (b *BookBuilder) WithSlug(slug string) *BookBuilder {
	b.book.Slug = slug
	return b
}

// Build returns the Book.
func (b *BookBuilder) Build() model.Book {
	return b.book
}

// Books returns n books with ids "1".."n".
func Books(n int) []model.Book {
	out := make([]model.Book, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, NewBook().WithID(model.ID(fmt.Sprint(i))).WithTitle(fmt.Sprintf("Book %d", i)).Build())
	}
	return out
}

// UserBuilder provides a fluent interface for building User fixtures.
type UserBuilder struct {
	user model.User
}

// NewUser creates a UserBuilder for an active reader.
func NewUser() *UserBuilder {
	return &UserBuilder{user: model.User{ID: "1", Email: "reader@example.com", Role: auth.RoleReader, Active: true}}
}

// WithID sets the user id.
func (b *UserBuilder) WithID(id model.ID) *UserBuilder {
	b.user.ID = id
	return b
}

// WithEmail sets the email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithRole sets the role.
func (b *UserBuilder) WithRole(role auth.Role) *UserBuilder {
	b.user.Role = role
	return b
}

// Inactive marks the user as deactivated.
func (b *UserBuilder) Inactive() *UserBuilder {
	b.user.Active = false
	return b
}

// Build returns the User.
func (b *UserBuilder) Build() model.User {
	return b.user
}
