package service

import (
	"context"
	"strings"

	"github.com/target/mdbook-portal/internal/domain/model"
	apperrors "github.com/target/mdbook-portal/internal/errors"
	"github.com/target/mdbook-portal/internal/ports"
)

// RefreshBooks refetches the book list.
func (s *PortalService) RefreshBooks(ctx context.Context) error {
	return s.loadBooks(ctx, s.clearError())
}

// loadBooks fetches the book list for epoch. The loading flag is raised for
// the duration of the call.
func (s *PortalService) loadBooks(ctx context.Context, epoch uint64) error {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return nil
	}
	s.loading++
	s.mu.Unlock()

	books, err := s.api.ListBooks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		s.logger.DebugContext(ctx, "discarding stale book list", "epoch", epoch, "current_epoch", s.epoch)
		return err
	}
	s.loading--
	if err != nil {
		s.errMsg = apperrors.Message(err)
		return err
	}
	s.books = books
	return nil
}

// FetchBook fetches a single book. Failures land in the error slot; the
// book list is left untouched.
func (s *PortalService) FetchBook(ctx context.Context, id model.ID) (model.Book, error) {
	epoch := s.clearError()
	book, err := s.api.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, s.fail(epoch, err)
	}
	return book, nil
}

// CreateBook creates a book and refetches the list. An empty slug lets the
// server derive one. The created record is returned for display; the list
// itself always comes from the refetch.
func (s *PortalService) CreateBook(ctx context.Context, title, slug string) (model.Book, error) {
	epoch, err := s.beginAdmin(ctx, "create book")
	if err != nil {
		return model.Book{}, err
	}
	req := model.CreateBookRequest{Title: strings.TrimSpace(title), Slug: strings.TrimSpace(slug)}
	if err := req.Validate(); err != nil {
		return model.Book{}, s.fail(epoch, apperrors.Validation(err.Error()))
	}

	var created model.Book
	err = s.mutate(ctx, epoch, "create_book", func(ctx context.Context) error {
		var err error
		created, err = s.api.CreateBook(ctx, req)
		return err
	}, s.loadBooks)
	return created, err
}

// UpdateBook sends a partial update (title and/or active) and refetches the list.
func (s *PortalService) UpdateBook(ctx context.Context, id model.ID, req model.UpdateBookRequest) error {
	epoch, err := s.beginAdmin(ctx, "update book")
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return s.fail(epoch, apperrors.Validation(err.Error()))
	}
	return s.mutate(ctx, epoch, "update_book", func(ctx context.Context) error {
		_, err := s.api.UpdateBook(ctx, id, req)
		return err
	}, s.loadBooks)
}

// DeleteBook deletes a book and refetches the list. An open viewer on the
// deleted book is left open and reported as stale.
func (s *PortalService) DeleteBook(ctx context.Context, id model.ID) error {
	epoch, err := s.beginAdmin(ctx, "delete book")
	if err != nil {
		return err
	}
	return s.mutate(ctx, epoch, "delete_book", func(ctx context.Context) error {
		return s.api.DeleteBook(ctx, id)
	}, s.loadBooks)
}

// BuildBook triggers a rebuild and refetches the list.
func (s *PortalService) BuildBook(ctx context.Context, id model.ID) (model.ActionResult, error) {
	epoch, err := s.beginAdmin(ctx, "build book")
	if err != nil {
		return model.ActionResult{}, err
	}
	var res model.ActionResult
	err = s.mutate(ctx, epoch, "build_book", func(ctx context.Context) error {
		var err error
		res, err = s.api.BuildBook(ctx, id)
		return err
	}, s.loadBooks)
	return res, err
}

// UploadBook sends an archive and refetches the list. A nil upload, or one
// without a body, is a no-op: no request is made and the error slot is kept.
func (s *PortalService) UploadBook(ctx context.Context, id model.ID, upload *ports.Upload) (model.ActionResult, error) {
	if upload == nil || upload.Body == nil {
		return model.ActionResult{}, nil
	}
	epoch, err := s.beginAdmin(ctx, "upload book")
	if err != nil {
		return model.ActionResult{}, err
	}
	var res model.ActionResult
	err = s.mutate(ctx, epoch, "upload_book", func(ctx context.Context) error {
		var err error
		res, err = s.api.UploadBook(ctx, id, *upload)
		return err
	}, s.loadBooks)
	return res, err
}
