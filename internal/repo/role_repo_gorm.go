package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"account-api/internal/domain"
)

type RoleRepo struct{ db *gorm.DB }

func NewRoleRepo(db *gorm.DB) *RoleRepo { return &RoleRepo{db: db} }

func (r *RoleRepo) Create(ctx context.Context, role *domain.Role) error {
	err := r.db.WithContext(ctx).Create(role).Error
	if isDupKey(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *RoleRepo) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).Where("role_name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Migrate creates or updates the account tables. Roles first, users hold the FK.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Role{}, &domain.User{})
}
