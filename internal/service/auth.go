package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"account-api/internal/domain"
	"account-api/pkg/utils"
)

type SignUpInput struct {
	Email    string
	Name     string
	Age      int
	Address  string
	Password string
}

type RegisterInput struct {
	SignUpInput
	RoleName string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User        domain.UserView `json:"user"`
	AccessToken string          `json:"accessToken"`
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// AdminRegister creates an account holding the fixed admin role.
func (s *AccountService) AdminRegister(ctx context.Context, in SignUpInput) (*domain.UserView, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, s.unexpected(ctx, "hash password", err)
	}
	role, err := s.resolveRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, in, hashed, role)
}

// Register is self-service sign-up. It never grants the admin role.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*domain.UserView, error) {
	roleName := strings.TrimSpace(in.RoleName)
	if roleName == "" {
		return nil, domain.Validation(domain.MsgRoleRequired)
	}
	if strings.EqualFold(roleName, domain.RoleAdmin) {
		s.log.Warn("self registration as admin rejected", zap.String("email", in.Email))
		return nil, domain.Forbidden(domain.MsgAdminSelfRegister)
	}
	in.Email = normalizeEmail(in.Email)
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}
	role, err := s.resolveRole(ctx, roleName)
	if err != nil {
		return nil, err
	}
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, s.unexpected(ctx, "hash password", err)
	}
	return s.create(ctx, in.SignUpInput, hashed, role)
}

func (s *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return s.unexpected(ctx, "check email", err)
	}
	if exists {
		return domain.Conflict(domain.MsgUserExists)
	}
	return nil
}

func (s *AccountService) resolveRole(ctx context.Context, name string) (*domain.Role, error) {
	role, err := s.roles.FindByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Warn("role does not exist", zap.String("role", name))
		return nil, domain.RoleNotFound(name)
	}
	if err != nil {
		return nil, s.unexpected(ctx, "find role", err, zap.String("role", name))
	}
	return role, nil
}

func (s *AccountService) create(ctx context.Context, in SignUpInput, hashed string, role *domain.Role) (*domain.UserView, error) {
	u := &domain.User{
		ID:       utils.NewID(),
		Email:    in.Email,
		Name:     strings.TrimSpace(in.Name),
		Age:      in.Age,
		Address:  strings.TrimSpace(in.Address),
		Password: hashed,
		IsActive: true,
		RoleID:   role.ID,
		Role:     *role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict(domain.MsgUserExists)
		}
		return nil, s.unexpected(ctx, "create user", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", role.RoleName))
	v := u.View()
	return &v, nil
}

// Login verifies credentials and issues an access token carrying {id, role}.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, domain.ErrNotFound) {
		loginAttempts.WithLabelValues("not_found").Inc()
		return nil, domain.NotFound(domain.MsgUserNotFound)
	}
	if err != nil {
		return nil, s.unexpected(ctx, "find user", err)
	}
	// inactive and deleted accounts are rejected before any hash comparison
	if !u.IsActive || u.Deleted() {
		loginAttempts.WithLabelValues("inactive").Inc()
		return nil, domain.Inactive()
	}
	if !s.hasher.Compare(in.Password, u.Password) {
		loginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.InvalidCredentials()
	}

	tok, err := s.tokens.Issue(u.ID, u.Role.RoleName)
	if err != nil {
		return nil, s.unexpected(ctx, "issue token", err, zap.String("user_id", u.ID))
	}
	loginAttempts.WithLabelValues("success").Inc()
	s.log.Info("user logged in", zap.String("user_id", u.ID))
	return &LoginResult{User: u.LoginView(), AccessToken: tok}, nil
}
