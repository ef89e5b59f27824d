package service

import (
	"context"
	"fmt"

	"github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/domain/model"
	"github.com/target/mdbook-portal/internal/domain/portal"
	apperrors "github.com/target/mdbook-portal/internal/errors"
)

// View is a copy of everything a front end renders.
type View struct {
	Authenticated bool
	Admin         bool
	Role          auth.Role
	Email         string

	Books []model.Book
	Users []model.User

	// Selected is the book open in the viewer, nil when closed. SelectionStale
	// is set when that book is no longer in Books; the viewer is not auto-closed.
	Selected       *model.Book
	SelectionStale bool
	ViewerURL      string

	Navigation portal.Navigation
	Loading    bool
	Error      string
}

// Snapshot returns the current view state. Slices are copies.
func (s *PortalService) Snapshot() View {
	cred := s.session.Credential()

	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Authenticated:  cred.Authenticated(),
		Admin:          cred.IsAdmin(),
		Role:           cred.Role,
		Email:          cred.Email,
		Books:          append([]model.Book(nil), s.books...),
		Users:          append([]model.User(nil), s.users...),
		SelectionStale: s.selection.StaleIn(s.books),
		Navigation:     s.nav,
		Loading:        s.loading > 0,
		Error:          s.errMsg,
	}
	if book, ok := s.selection.Book(); ok {
		v.Selected = &book
		v.ViewerURL = s.api.ContentURL(book.ID, "")
	}
	return v
}

// Books returns a copy of the current book list.
func (s *PortalService) Books() []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Book(nil), s.books...)
}

// Users returns a copy of the current user list.
func (s *PortalService) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User(nil), s.users...)
}

// Error returns the message in the error slot.
func (s *PortalService) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// OpenBook opens b in the viewer. No request is made.
func (s *PortalService) OpenBook(b model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = portal.Open(b)
}

// OpenBookByID opens the book with id from the current list. No request is made.
func (s *PortalService) OpenBookByID(id model.ID) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := model.FindBook(s.books, id)
	if !ok {
		err := &apperrors.AppError{
			Code:    apperrors.ErrCodeValidation,
			Message: fmt.Sprintf("book %s is not in the list", id),
		}
		s.errMsg = err.Message
		return model.Book{}, err
	}
	s.selection = portal.Open(book)
	return book, nil
}

// CloseViewer clears the selection.
func (s *PortalService) CloseViewer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = portal.Closed()
}

// ViewerURL returns the content URL of the open book (with an optional
// sub-path), or "" when the viewer is closed.
func (s *PortalService) ViewerURL(subPath string) string {
	s.mu.Lock()
	book, ok := s.selection.Book()
	s.mu.Unlock()
	if !ok {
		return ""
	}
	return s.api.ContentURL(book.ID, subPath)
}

// ShowModule switches the active module. Non-admins get portal.ErrNavigationForbidden
// for the users module and the navigation is left unchanged.
func (s *PortalService) ShowModule(ctx context.Context, m portal.Module) error {
	return s.navigate(ctx, func(n portal.Navigation) (portal.Navigation, error) { return n.WithModule(m) })
}

// ShowBooksView switches the books sub-view.
func (s *PortalService) ShowBooksView(ctx context.Context, v portal.View) error {
	return s.navigate(ctx, func(n portal.Navigation) (portal.Navigation, error) { return n.WithBooksView(v) })
}

// ShowUsersView switches the users sub-view.
func (s *PortalService) ShowUsersView(ctx context.Context, v portal.View) error {
	return s.navigate(ctx, func(n portal.Navigation) (portal.Navigation, error) { return n.WithUsersView(v) })
}

// navigate applies a transition to the navigation. The role check uses the
// role the navigation is bound to, which always matches the current epoch.
func (s *PortalService) navigate(ctx context.Context, transition func(portal.Navigation) (portal.Navigation, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := transition(s.nav)
	if err != nil {
		s.logger.DebugContext(ctx, "navigation refused", "role", s.nav.Role(), "error", err)
		return err
	}
	s.nav = next
	return nil
}
