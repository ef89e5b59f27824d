package ports

import (
	"context"
	"io"

	"github.com/target/mdbook-portal/internal/domain/model"
)

// Upload is a single archive to send as the multipart `file` field.
type Upload struct {
	Filename string
	Body     io.Reader
}

// PortalAPI is the catalogue of portal server operations used by the controller.
type PortalAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.ActionResult, error)
	Me(ctx context.Context) (model.Identity, error)

	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id model.ID) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id model.ID, req model.UpdateBookRequest) (model.ActionResult, error)
	DeleteBook(ctx context.Context, id model.ID) error
	BuildBook(ctx context.Context, id model.ID) (model.ActionResult, error)
	UploadBook(ctx context.Context, id model.ID, upload Upload) (model.ActionResult, error)

	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.ActionResult, error)
	UpdateUser(ctx context.Context, id model.ID, req model.UpdateUserRequest) (model.ActionResult, error)
	DeleteUser(ctx context.Context, id model.ID) error

	ContentURL(id model.ID, subPath string) string
}
