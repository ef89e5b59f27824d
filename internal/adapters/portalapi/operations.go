package portalapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/target/mdbook-portal/internal/domain/model"
	"github.com/target/mdbook-portal/internal/ports"
)

// Reads live under /books; every mutation and the user directory live under /admin.
func bookPath(id model.ID) string      { return "/books/" + url.PathEscape(id.String()) }
func adminBookPath(id model.ID) string { return "/admin" + bookPath(id) }
func adminUserPath(id model.ID) string { return "/admin/users/" + url.PathEscape(id.String()) }

// Login exchanges email and password for a credential.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	var out model.LoginResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: req}, &out)
	return out, err
}

// Register creates a reader account.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.ActionResult, error) {
	var out model.ActionResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: req}, &out)
	return out, err
}

// Me returns the identity the server associates with the current token.
func (c *Client) Me(ctx context.Context) (model.Identity, error) {
	var out model.Identity
	err := c.do(ctx, request{method: http.MethodGet, path: "/me"}, &out)
	return out, err
}

// ListBooks returns every book visible to the caller. A null body yields an empty list.
func (c *Client) ListBooks(ctx context.Context) ([]model.Book, error) {
	var out []model.Book
	if err := c.do(ctx, request{method: http.MethodGet, path: "/books"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Book{}
	}
	return out, nil
}

// GetBook fetches a single book.
func (c *Client) GetBook(ctx context.Context, id model.ID) (model.Book, error) {
	var out model.Book
	err := c.do(ctx, request{method: http.MethodGet, path: bookPath(id)}, &out)
	return out, err
}

// CreateBook creates a book and returns the server's record of it.
func (c *Client) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	var out model.Book
	err := c.do(ctx, request{method: http.MethodPost, path: "/admin/books", body: req}, &out)
	return out, err
}

// UpdateBook sends a partial update; only the fields set on req are serialized.
func (c *Client) UpdateBook(ctx context.Context, id model.ID, req model.UpdateBookRequest) (model.ActionResult, error) {
	var out model.ActionResult
	err := c.do(ctx, request{method: http.MethodPatch, path: adminBookPath(id), body: req}, &out)
	return out, err
}

// DeleteBook removes a book.
func (c *Client) DeleteBook(ctx context.Context, id model.ID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: adminBookPath(id)}, nil)
}

// BuildBook asks the server to rebuild a book's rendered output.
func (c *Client) BuildBook(ctx context.Context, id model.ID) (model.ActionResult, error) {
	var out model.ActionResult
	err := c.do(ctx, request{method: http.MethodPost, path: adminBookPath(id) + "/build"}, &out)
	return out, err
}

// UploadBook sends a zip archive as the multipart `file` field.
func (c *Client) UploadBook(ctx context.Context, id model.ID, upload ports.Upload) (model.ActionResult, error) {
	var out model.ActionResult
	err := c.do(ctx, request{method: http.MethodPost, path: adminBookPath(id) + "/upload", upload: &upload}, &out)
	return out, err
}

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/users"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.User{}
	}
	return out, nil
}

// CreateUser creates an account with an explicit role.
func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.ActionResult, error) {
	var out model.ActionResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/admin/users", body: req}, &out)
	return out, err
}

// UpdateUser changes role and/or active flag.
func (c *Client) UpdateUser(ctx context.Context, id model.ID, req model.UpdateUserRequest) (model.ActionResult, error) {
	var out model.ActionResult
	err := c.do(ctx, request{method: http.MethodPatch, path: adminUserPath(id), body: req}, &out)
	return out, err
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id model.ID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: adminUserPath(id)}, nil)
}
