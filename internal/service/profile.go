package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"account-api/internal/domain"
)

// UpdateUser patches the caller's own profile. id must come from the
// verified identity, never from the request body.
func (s *AccountService) UpdateUser(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.UserView, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Validation(domain.MsgIDRequired)
	}
	if _, err := s.liveUser(ctx, "find user", id, domain.NotFound(domain.MsgUserNotFound)); err != nil {
		return nil, err
	}
	return s.applyPatch(ctx, id, patch)
}

func (s *AccountService) applyPatch(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.UserView, error) {
	if err := s.users.UpdateProfile(ctx, id, patch); err != nil {
		return nil, s.unexpected(ctx, "update user", err, zap.String("user_id", id))
	}
	s.forget(ctx, id)

	u, err := s.liveUser(ctx, "reload user", id, domain.NotFound(domain.MsgUserNotFound))
	if err != nil {
		return nil, err
	}
	s.log.Info("user updated", zap.String("user_id", id))
	v := u.View()
	return &v, nil
}

// SoftDeleteUser stamps deleted_at on the caller's own account.
func (s *AccountService) SoftDeleteUser(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation(domain.MsgIDRequired)
	}
	ok, err := s.users.SoftDelete(ctx, id, s.now().UTC())
	if err != nil {
		return s.unexpected(ctx, "soft delete", err, zap.String("user_id", id))
	}
	if !ok {
		s.log.Warn("user not found or already deleted", zap.String("user_id", id))
		return domain.NotFound(domain.MsgDeleteFailed)
	}
	s.forget(ctx, id)
	s.log.Info("user soft deleted", zap.String("user_id", id))
	return nil
}
