package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string     `gorm:"size:64;not null" json:"name"`
	Age          int        `gorm:"not null" json:"age"`
	Address      string     `gorm:"size:255" json:"address"`
	Password     string     `gorm:"size:100;not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	RefreshToken *string    `gorm:"size:512" json:"-"`
	RoleID       uint       `gorm:"not null;index" json:"-"`
	Role         Role       `gorm:"foreignKey:RoleID" json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// Deleted reports whether the account was soft deleted.
func (u *User) Deleted() bool { return u.DeletedAt != nil }

// UserView is the outward shape of a user. Password, refresh token and
// deletion timestamp never leave the service.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Address   string    `json:"address"`
	IsActive  *bool     `json:"isActive,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) View() UserView {
	active := u.IsActive
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Age:       u.Age,
		Address:   u.Address,
		IsActive:  &active,
		Role:      u.Role.RoleName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginView additionally hides the active flag.
func (u *User) LoginView() UserView {
	v := u.View()
	v.IsActive = nil
	return v
}

// ProfilePatch carries the only fields a profile update may touch.
type ProfilePatch struct {
	Name    *string
	Address *string
	Age     *int
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Address == nil && p.Age == nil
}

// Columns returns the column/value pairs to write.
func (p ProfilePatch) Columns() map[string]any {
	cols := make(map[string]any, 3)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	if p.Age != nil {
		cols["age"] = *p.Age
	}
	return cols
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	// FindByID and FindByEmail return ErrNotFound when no row matches.
	// Soft-deleted rows are returned; callers decide.
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, roleID uint) ([]User, error)
	UpdateProfile(ctx context.Context, id string, p ProfilePatch) error
	// SetActive flips is_active only when the live row is in the opposite
	// state. It reports false when nothing changed.
	SetActive(ctx context.Context, id string, active bool) (bool, error)
	// SoftDelete stamps deleted_at on a live row. It reports false when
	// nothing changed.
	SoftDelete(ctx context.Context, id string, at time.Time) (bool, error)
}
