package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"account-api/internal/domain"
)

// EnsureRoles creates any of names that are missing. It is safe to run
// on every deploy.
func (s *AccountService) EnsureRoles(ctx context.Context, names ...string) error {
	for _, name := range names {
		_, err := s.roles.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return s.unexpected(ctx, "find role", err, zap.String("role", name))
		}
		if err := s.roles.Create(ctx, &domain.Role{RoleName: name}); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return s.unexpected(ctx, "create role", err, zap.String("role", name))
		}
		s.log.Info("role seeded", zap.String("role", name))
	}
	return nil
}

// BootstrapAdmin registers the first admin. An existing account with the
// same email is left untouched and reported as created=false.
func (s *AccountService) BootstrapAdmin(ctx context.Context, in SignUpInput) (created bool, err error) {
	if _, err := s.AdminRegister(ctx, in); err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
