//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// Book is the client-side copy of a server book record.
// Build status is not carried explicitly; it is inferred from list refreshes.
type Book struct {
	ID        ID     `json:"id"                  yaml:"id"`
	Title     string `json:"title"               yaml:"title"`
	Slug      string `json:"slug"                yaml:"slug"`
	SourceDir string `json:"sourceDir,omitempty" yaml:"sourceDir,omitempty"`
	BuildDir  string `json:"buildDir,omitempty"  yaml:"buildDir,omitempty"`
	Active    *bool  `json:"active,omitempty"    yaml:"active,omitempty"`
}

// CreateBookRequest is the payload for POST /admin/books.
// An empty Slug lets the server derive one from the title.
type CreateBookRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Validate enforces the required title field.
func (r CreateBookRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// UpdateBookRequest is the partial payload for PATCH /admin/books/{id}.
// Nil fields are omitted from the body and left untouched by the server.
type UpdateBookRequest struct {
	Title  *string `json:"title,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Validate ensures at least one field is set.
func (r UpdateBookRequest) Validate() error {
	if r.Title == nil && r.Active == nil {
		return errors.New("no changes")
	}
	return nil
}

// FindBook returns the book with the given id from books.
func FindBook(books []Book, id ID) (Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}
