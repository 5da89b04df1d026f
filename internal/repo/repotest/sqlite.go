// Package repotest opens throwaway in-memory databases for tests.
package repotest

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"account-api/internal/domain"
	"account-api/internal/repo"
)

// NewDB returns a migrated, private in-memory database. A single connection
// keeps the shared-cache database alive and serializes writers.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repo.Migrate(db))
	return db
}

// SeedRoles inserts the admin and user roles and returns them by name.
func SeedRoles(t testing.TB, db *gorm.DB) map[string]domain.Role {
	t.Helper()
	out := make(map[string]domain.Role, 2)
	for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
		r := domain.Role{RoleName: name}
		require.NoError(t, db.Create(&r).Error)
		out[name] = r
	}
	return out
}
