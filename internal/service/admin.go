package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"account-api/internal/domain"
)

// CreateRole adds a role by name. A second call with the same name conflicts.
func (s *AccountService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation(domain.MsgRoleRequired)
	}
	_, err := s.roles.FindByName(ctx, name)
	switch {
	case err == nil:
		s.log.Warn("role already exists", zap.String("role", name))
		return nil, domain.Conflict(domain.MsgRoleExists)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, s.unexpected(ctx, "find role", err, zap.String("role", name))
	}

	role := &domain.Role{RoleName: name}
	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict(domain.MsgRoleExists)
		}
		return nil, s.unexpected(ctx, "create role", err, zap.String("role", name))
	}
	s.log.Info("role created", zap.String("role", name))
	return role, nil
}

// GetAllUsers lists live accounts holding the "user" role.
func (s *AccountService) GetAllUsers(ctx context.Context) ([]domain.UserView, error) {
	role, err := s.resolveRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListByRole(ctx, role.ID)
	if err != nil {
		return nil, s.unexpected(ctx, "list users", err)
	}
	out := make([]domain.UserView, 0, len(users))
	for i := range users {
		out = append(out, users[i].View())
	}
	return out, nil
}

func (s *AccountService) ActivateUser(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true)
}

func (s *AccountService) DeactivateUser(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false)
}

func (s *AccountService) setActive(ctx context.Context, id string, active bool) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation(domain.MsgIDRequired)
	}
	changed, err := s.users.SetActive(ctx, id, active)
	if err != nil {
		return s.unexpected(ctx, "set active", err, zap.String("user_id", id), zap.Bool("active", active))
	}
	if !changed {
		s.log.Warn("user not found or already in target state", zap.String("user_id", id), zap.Bool("active", active))
		return domain.NotFoundOrInState(id, active)
	}
	s.forget(ctx, id)
	s.log.Info("user active flag changed", zap.String("user_id", id), zap.Bool("active", active))
	return nil
}

// UpdateUserByAdmin patches another user's profile. Admin accounts are
// immutable through this path.
func (s *AccountService) UpdateUserByAdmin(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.UserView, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Validation(domain.MsgIDRequired)
	}
	u, err := s.liveUser(ctx, "find user", id, domain.NotFound(domain.MsgUserNotFound))
	if err != nil {
		return nil, err
	}
	if u.Role.RoleName == domain.RoleAdmin {
		s.log.Warn("update of admin account rejected", zap.String("user_id", id))
		return nil, domain.Forbidden(domain.MsgAdminUpdate)
	}
	return s.applyPatch(ctx, id, patch)
}

// GetUser returns a live user by id, through the cache when configured.
func (s *AccountService) GetUser(ctx context.Context, id string) (*domain.UserView, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Validation(domain.MsgIDRequired)
	}
	load := func(ctx context.Context) (*domain.UserView, error) {
		u, err := s.liveUser(ctx, "find user", id, domain.UserNotFoundByID(id))
		if err != nil {
			return nil, err
		}
		v := u.View()
		return &v, nil
	}
	if s.userCache == nil {
		return load(ctx)
	}
	v, err := s.userCache.Get(ctx, id, load)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, s.unexpected(ctx, "cached user lookup", err, zap.String("user_id", id))
	}
	return v, nil
}
