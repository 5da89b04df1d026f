package domain

import "context"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Role struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RoleName string `gorm:"uniqueIndex;size:32;not null" json:"roleName"`
}

func (Role) TableName() string { return "roles" }

type RoleRepository interface {
	Create(ctx context.Context, r *Role) error
	// FindByName returns ErrNotFound when the role does not exist.
	FindByName(ctx context.Context, name string) (*Role, error)
}
