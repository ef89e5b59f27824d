package service

import (
	"context"
	"strings"

	"github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/domain/model"
	apperrors "github.com/target/mdbook-portal/internal/errors"
)

// RefreshUsers refetches the user list. Admin only.
func (s *PortalService) RefreshUsers(ctx context.Context) error {
	epoch, err := s.beginAdmin(ctx, "list users")
	if err != nil {
		return err
	}
	return s.loadUsers(ctx, epoch)
}

// loadUsers fetches the user list for epoch, holding the loading flag like loadBooks.
func (s *PortalService) loadUsers(ctx context.Context, epoch uint64) error {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return nil
	}
	s.loading++
	s.mu.Unlock()

	users, err := s.api.ListUsers(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		s.logger.DebugContext(ctx, "discarding stale user list", "epoch", epoch, "current_epoch", s.epoch)
		return err
	}
	s.loading--
	if err != nil {
		s.errMsg = apperrors.Message(err)
		return err
	}
	s.users = users
	return nil
}

// CreateUser creates an account and refetches the user list. An empty role
// defaults to reader.
func (s *PortalService) CreateUser(ctx context.Context, email, password string, role auth.Role) error {
	epoch, err := s.beginAdmin(ctx, "create user")
	if err != nil {
		return err
	}
	req := model.CreateUserRequest{Email: strings.TrimSpace(email), Password: password, Role: role}
	if err := req.Validate(); err != nil {
		return s.fail(epoch, apperrors.Validation(err.Error()))
	}
	return s.mutate(ctx, epoch, "create_user", func(ctx context.Context) error {
		_, err := s.api.CreateUser(ctx, req)
		return err
	}, s.loadUsers)
}

// ChangeUserRole sets a user's role; the active flag is not sent.
func (s *PortalService) ChangeUserRole(ctx context.Context, id model.ID, role auth.Role) error {
	epoch, err := s.beginAdmin(ctx, "change user role")
	if err != nil {
		return err
	}
	if !role.Valid() {
		return s.fail(epoch, apperrors.Validation("role must be admin or reader"))
	}
	return s.updateUser(ctx, epoch, "change_user_role", id, model.UpdateUserRequest{Role: &role})
}

// SetUserActive activates or deactivates a user; the role is not sent.
func (s *PortalService) SetUserActive(ctx context.Context, id model.ID, active bool) error {
	epoch, err := s.beginAdmin(ctx, "change user status")
	if err != nil {
		return err
	}
	return s.updateUser(ctx, epoch, "set_user_active", id, model.UpdateUserRequest{Active: &active})
}

func (s *PortalService) updateUser(ctx context.Context, epoch uint64, action string, id model.ID, req model.UpdateUserRequest) error {
	return s.mutate(ctx, epoch, action, func(ctx context.Context) error {
		_, err := s.api.UpdateUser(ctx, id, req)
		return err
	}, s.loadUsers)
}

// DeleteUser removes an account and refetches the user list.
func (s *PortalService) DeleteUser(ctx context.Context, id model.ID) error {
	epoch, err := s.beginAdmin(ctx, "delete user")
	if err != nil {
		return err
	}
	return s.mutate(ctx, epoch, "delete_user", func(ctx context.Context) error {
		return s.api.DeleteUser(ctx, id)
	}, s.loadUsers)
}
