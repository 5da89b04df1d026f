// Package handler binds the account service onto HTTP routes.
package handler

import (
	"context"

	"account-api/internal/domain"
	"account-api/internal/service"
)

// Accounts is the slice of the account service the handlers need.
type Accounts interface {
	AdminRegister(ctx context.Context, in service.SignUpInput) (*domain.UserView, error)
	Register(ctx context.Context, in service.RegisterInput) (*domain.UserView, error)
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)

	UpdateUser(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.UserView, error)
	SoftDeleteUser(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (*domain.UserView, error)

	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	GetAllUsers(ctx context.Context) ([]domain.UserView, error)
	ActivateUser(ctx context.Context, id string) error
	DeactivateUser(ctx context.Context, id string) error
	UpdateUserByAdmin(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.UserView, error)
}

var _ Accounts = (*service.AccountService)(nil)
