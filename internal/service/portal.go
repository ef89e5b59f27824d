package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/domain/model"
	"github.com/target/mdbook-portal/internal/domain/portal"
	apperrors "github.com/target/mdbook-portal/internal/errors"
	"github.com/target/mdbook-portal/internal/ports"
)

// ErrAdminRequired is the cause of every admin action refused locally for a non-admin session.
var ErrAdminRequired = errors.New("admin role required")

// PortalServiceOptions groups dependencies for PortalService.
type PortalServiceOptions struct {
	API     ports.PortalAPI // Required: portal gateway
	Session ports.Session   // Required: credential store
	Logger  *slog.Logger    // Optional: structured logger
}

// PortalService is the application controller: it holds the lists, selection,
// navigation and error slot a front end renders, and sequences every server call.
//
// Each authenticated session runs under an epoch. A fetch records the epoch it
// was issued in and its result is applied only if the epoch is unchanged when
// it completes, so responses arriving after logout or re-login are dropped.
// Network calls never run under mu.
type PortalService struct {
	api         ports.PortalAPI
	session     ports.Session
	logger      *slog.Logger
	unsubscribe func()

	mu        sync.Mutex
	epoch     uint64
	cred      auth.Credential // credential the current epoch was opened for
	books     []model.Book
	users     []model.User
	selection portal.Selection
	nav       portal.Navigation
	errMsg    string
	loading   int
}

// NewPortalService constructs a PortalService following opts.Session.
func NewPortalService(opts PortalServiceOptions) *PortalService {
	if opts.API == nil {
		panic("PortalAPI is required")
	}
	if opts.Session == nil {
		panic("Session is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cred := opts.Session.Credential()
	s := &PortalService{
		api:     opts.API,
		session: opts.Session,
		logger:  logger.With("component", "portal"),
		cred:    cred,
		nav:     portal.NewNavigation(cred.Role),
	}
	s.unsubscribe = opts.Session.Subscribe(s.onCredentialChange)
	return s
}

// Close stops following session changes.
func (s *PortalService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// onCredentialChange opens a new epoch when the session changes underneath the
// controller (e.g. a Reload picked up another client's login).
func (s *PortalService) onCredentialChange(cred auth.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cred == s.cred {
		return
	}
	s.resetLocked(cred)
}

// resetLocked starts a new epoch for cred. Lists and selection of the previous
// epoch are dropped; navigation is rebuilt for the new role.
func (s *PortalService) resetLocked(cred auth.Credential) uint64 {
	if cred.Token != s.cred.Token {
		s.nav = portal.NewNavigation(cred.Role)
	} else {
		s.nav = s.nav.ForRole(cred.Role)
	}
	s.epoch++
	s.cred = cred
	s.books = nil
	s.users = nil
	s.selection = portal.Closed()
	s.loading = 0
	return s.epoch
}

// Start performs the initial load: if a credential is already persisted the
// session is entered and the lists are fetched.
func (s *PortalService) Start(ctx context.Context) error {
	cred := s.session.Credential()

	s.mu.Lock()
	epoch := s.resetLocked(cred)
	s.errMsg = ""
	s.mu.Unlock()

	if !cred.Authenticated() {
		return nil
	}
	return s.enterSession(ctx, epoch, cred.Role)
}

// Login exchanges credentials for a token, persists it and enters the session.
// On failure nothing but the error slot changes. Once the credential is saved
// Login succeeds; list fetch failures are reported through the error slot.
func (s *PortalService) Login(ctx context.Context, email, password string) error {
	epoch := s.clearError()
	req := model.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := req.Validate(); err != nil {
		return s.fail(epoch, apperrors.Validation(err.Error()))
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "login failed", "email", req.Email, "error_class", apperrors.Classify(err))
		return s.fail(epoch, err)
	}
	cred := resp.Credential()
	if !cred.Authenticated() {
		return s.fail(epoch, &apperrors.AppError{
			Code:    apperrors.ErrCodeRequest,
			Message: "login response did not include a token",
		})
	}
	if err := s.session.Persist(ctx, cred.Token, cred.Role, cred.Email); err != nil {
		return s.fail(epoch, apperrors.Wrap(err, apperrors.ErrCodeStorage, "could not save the session"))
	}

	s.mu.Lock()
	epoch = s.resetLocked(cred)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session started", "email", cred.Email, "role", cred.Role)
	if err := s.enterSession(ctx, epoch, cred.Role); err != nil {
		s.logger.WarnContext(ctx, "session entry incomplete", "error", err)
	}
	return nil
}

// Register creates a reader account. The current session is not changed.
func (s *PortalService) Register(ctx context.Context, email, password string) (model.ActionResult, error) {
	epoch := s.clearError()
	req := model.RegisterRequest{Email: strings.TrimSpace(email), Password: password}
	if err := req.Validate(); err != nil {
		return model.ActionResult{}, s.fail(epoch, apperrors.Validation(err.Error()))
	}
	res, err := s.api.Register(ctx, req)
	if err != nil {
		return model.ActionResult{}, s.fail(epoch, err)
	}
	return res, nil
}

// Logout clears the persisted credential and drops all session state. The
// controller ends Unauthenticated even if the backend delete fails.
func (s *PortalService) Logout(ctx context.Context) error {
	err := s.session.Clear(ctx)

	s.mu.Lock()
	epoch := s.resetLocked(auth.Credential{})
	s.errMsg = ""
	s.mu.Unlock()

	if err != nil {
		s.logger.WarnContext(ctx, "logout could not remove saved credential", "error", err)
		return s.fail(epoch, apperrors.Wrap(err, apperrors.ErrCodeStorage, "could not remove the saved session"))
	}
	s.logger.InfoContext(ctx, "session ended")
	return nil
}

// Identity returns the server view of the current user.
func (s *PortalService) Identity(ctx context.Context) (model.Identity, error) {
	epoch := s.clearError()
	me, err := s.api.Me(ctx)
	if err != nil {
		return model.Identity{}, s.fail(epoch, err)
	}
	return me, nil
}

// enterSession fetches the books and, for admins, the users. The fetches are
// independent: each failure lands in the error slot on its own and neither
// reverts the authentication state.
func (s *PortalService) enterSession(ctx context.Context, epoch uint64, role auth.Role) error {
	var (
		g                  errgroup.Group
		booksErr, usersErr error
	)
	g.Go(func() error {
		booksErr = s.loadBooks(ctx, epoch)
		return nil
	})
	if role.IsAdmin() {
		g.Go(func() error {
			usersErr = s.loadUsers(ctx, epoch)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(booksErr, usersErr)
}

// clearError empties the error slot and returns the current epoch.
func (s *PortalService) clearError() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
	return s.epoch
}

// fail records err in the error slot if epoch is still current and returns err.
func (s *PortalService) fail(epoch uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch == s.epoch {
		s.errMsg = apperrors.Message(err)
	}
	return err
}

// beginAdmin clears the error slot and checks the session role. A non-admin
// session gets an admin_required error without any network traffic.
func (s *PortalService) beginAdmin(ctx context.Context, action string) (uint64, error) {
	admin := s.session.Credential().IsAdmin()
	epoch := s.clearError()
	if admin {
		return epoch, nil
	}
	s.logger.WarnContext(ctx, "admin action refused", "action", action)
	appErr := apperrors.AdminRequired(action)
	appErr.Cause = ErrAdminRequired
	return epoch, s.fail(epoch, appErr)
}

// mutate issues call and, only if it succeeds, refetches the affected list once.
func (s *PortalService) mutate(
	ctx context.Context,
	epoch uint64,
	action string,
	call func(context.Context) error,
	refetch func(context.Context, uint64) error,
) error {
	if err := call(ctx); err != nil {
		s.logger.WarnContext(ctx, "portal action failed",
			"action", action,
			"error_class", apperrors.Classify(err),
			"error", err)
		return s.fail(epoch, err)
	}
	s.logger.DebugContext(ctx, "portal action succeeded", "action", action)
	if err := refetch(ctx, epoch); err != nil {
		return fmt.Errorf("refresh after %s: %w", action, err)
	}
	return nil
}
