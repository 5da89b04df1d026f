package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"account-api/internal/domain"
)

var (
	adminRole = &domain.Role{ID: 1, RoleName: domain.RoleAdmin}
	userRole  = &domain.Role{ID: 2, RoleName: domain.RoleUser}
	errDB     = errors.New("db down")
)

type fixture struct {
	users  *mockUserRepository
	roles  *mockRoleRepository
	hasher *mockHasher
	issuer *mockIssuer
	svc    *AccountService
}

func newFixture() *fixture {
	f := &fixture{
		users:  new(mockUserRepository),
		roles:  new(mockRoleRepository),
		hasher: new(mockHasher),
		issuer: new(mockIssuer),
	}
	f.svc = NewAccountService(f.users, f.roles, f.hasher, f.issuer, nil, Options{})
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.users.AssertExpectations(t)
	f.roles.AssertExpectations(t)
	f.hasher.AssertExpectations(t)
	f.issuer.AssertExpectations(t)
}

func storedUser(role *domain.Role) *domain.User {
	return &domain.User{
		ID:       "u-1",
		Email:    "a@x.com",
		Name:     "Alice",
		Age:      30,
		Address:  "1 Main St",
		Password: "hashed",
		IsActive: true,
		RoleID:   role.ID,
		Role:     *role,
	}
}

func signUp() SignUpInput {
	return SignUpInput{Email: " A@x.com ", Name: "Alice", Age: 30, Address: "1 Main St", Password: "Aa1!aaaa"}
}

func assertKind(t *testing.T, err error, kind domain.Kind) *domain.Error {
	t.Helper()
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, kind, de.Kind, de.Message)
	return de
}

// --- AdminRegister ---

func TestAdminRegister_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.users.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	f.hasher.On("Hash", "Aa1!aaaa").Return("hashed", nil)
	f.roles.On("FindByName", ctx, domain.RoleAdmin).Return(adminRole, nil)
	f.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "a@x.com" && u.Password == "hashed" && u.RoleID == adminRole.ID && u.IsActive && u.ID != ""
	})).Return(nil)

	v, err := f.svc.AdminRegister(ctx, signUp())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, v.Role)
	assert.Equal(t, "a@x.com", v.Email)
	f.assertExpectations(t)
}

func TestAdminRegister_EmailTaken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("ExistsByEmail", ctx, "a@x.com").Return(true, nil)

	_, err := f.svc.AdminRegister(ctx, signUp())
	assertKind(t, err, domain.KindConflict)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAdminRegister_AdminRoleMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	f.hasher.On("Hash", "Aa1!aaaa").Return("hashed", nil)
	f.roles.On("FindByName", ctx, domain.RoleAdmin).Return(nil, domain.ErrNotFound)

	_, err := f.svc.AdminRegister(ctx, signUp())
	assertKind(t, err, domain.KindNotFound)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminRegister_StoreFailureIsUnexpected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("ExistsByEmail", ctx, "a@x.com").Return(false, errDB)

	_, err := f.svc.AdminRegister(ctx, signUp())
	de := assertKind(t, err, domain.KindUnexpected)
	assert.Equal(t, domain.MsgUnexpected, de.Message)
	assert.ErrorIs(t, err, errDB)
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.users.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	f.roles.On("FindByName", ctx, domain.RoleUser).Return(userRole, nil)
	f.hasher.On("Hash", "Aa1!aaaa").Return("hashed", nil)
	f.users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	v, err := f.svc.Register(ctx, RegisterInput{SignUpInput: signUp(), RoleName: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, v.Role)
	require.NotNil(t, v.IsActive)
	assert.True(t, *v.IsActive)
	f.assertExpectations(t)
}

func TestRegister_AdminRoleForbidden(t *testing.T) {
	for _, role := range []string{"admin", "Admin", " ADMIN "} {
		f := newFixture()
		_, err := f.svc.Register(context.Background(), RegisterInput{SignUpInput: signUp(), RoleName: role})
		assertKind(t, err, domain.KindForbidden)
		f.users.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestRegister_RoleRequired(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), RegisterInput{SignUpInput: signUp()})
	assertKind(t, err, domain.KindValidation)
}

func TestRegister_EmailTaken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("ExistsByEmail", ctx, "a@x.com").Return(true, nil)

	_, err := f.svc.Register(ctx, RegisterInput{SignUpInput: signUp(), RoleName: domain.RoleUser})
	assertKind(t, err, domain.KindConflict)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_UnknownRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	f.roles.On("FindByName", ctx, "editor").Return(nil, domain.ErrNotFound)

	_, err := f.svc.Register(ctx, RegisterInput{SignUpInput: signUp(), RoleName: "editor"})
	de := assertKind(t, err, domain.KindNotFound)
	assert.Contains(t, de.Message, "editor")
	f.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestRegister_RaceOnInsertIsConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	f.roles.On("FindByName", ctx, domain.RoleUser).Return(userRole, nil)
	f.hasher.On("Hash", "Aa1!aaaa").Return("hashed", nil)
	f.users.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

	_, err := f.svc.Register(ctx, RegisterInput{SignUpInput: signUp(), RoleName: domain.RoleUser})
	assertKind(t, err, domain.KindConflict)
}

func TestRegister_HashFailureIsUnexpected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	f.roles.On("FindByName", ctx, domain.RoleUser).Return(userRole, nil)
	f.hasher.On("Hash", "Aa1!aaaa").Return("", errors.New("too long"))

	_, err := f.svc.Register(ctx, RegisterInput{SignUpInput: signUp(), RoleName: domain.RoleUser})
	assertKind(t, err, domain.KindUnexpected)
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := storedUser(userRole)

	f.users.On("FindByEmail", ctx, "a@x.com").Return(u, nil)
	f.hasher.On("Compare", "Aa1!aaaa", "hashed").Return(true)
	f.issuer.On("Issue", "u-1", domain.RoleUser).Return("signed.jwt.token", nil)

	res, err := f.svc.Login(ctx, LoginInput{Email: "A@X.com", Password: "Aa1!aaaa"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", res.AccessToken)
	assert.Equal(t, "u-1", res.User.ID)
	assert.Nil(t, res.User.IsActive)
	f.assertExpectations(t)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("FindByEmail", ctx, "a@x.com").Return(nil, domain.ErrNotFound)

	_, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "x"})
	assertKind(t, err, domain.KindNotFound)
}

func TestLogin_InactiveNeverComparesPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := storedUser(userRole)
	u.IsActive = false
	f.users.On("FindByEmail", ctx, "a@x.com").Return(u, nil)

	_, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "Aa1!aaaa"})
	de := assertKind(t, err, domain.KindInactive)
	assert.Equal(t, domain.MsgUserInactive, de.Message)
	f.hasher.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
	f.issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestLogin_DeletedAccountIsInactive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := storedUser(userRole)
	now := time.Now()
	u.DeletedAt = &now
	f.users.On("FindByEmail", ctx, "a@x.com").Return(u, nil)

	_, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "Aa1!aaaa"})
	assertKind(t, err, domain.KindInactive)
	f.hasher.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("FindByEmail", ctx, "a@x.com").Return(storedUser(userRole), nil)
	f.hasher.On("Compare", "wrong", "hashed").Return(false)

	_, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrong"})
	assertKind(t, err, domain.KindInvalidCredentials)
	f.issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestLogin_SigningFailureIsUnexpected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("FindByEmail", ctx, "a@x.com").Return(storedUser(userRole), nil)
	f.hasher.On("Compare", "Aa1!aaaa", "hashed").Return(true)
	f.issuer.On("Issue", "u-1", domain.RoleUser).Return("", errors.New("no key"))

	_, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "Aa1!aaaa"})
	assertKind(t, err, domain.KindUnexpected)
}

// --- CreateRole ---

func TestCreateRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateRole(ctx, "  ")
	assertKind(t, err, domain.KindValidation)

	f.roles.On("FindByName", ctx, "editor").Return(nil, domain.ErrNotFound).Once()
	f.roles.On("Create", ctx, mock.MatchedBy(func(r *domain.Role) bool { return r.RoleName == "editor" })).Return(nil).Once()
	r, err := f.svc.CreateRole(ctx, " editor ")
	require.NoError(t, err)
	assert.Equal(t, "editor", r.RoleName)

	f.roles.On("FindByName", ctx, "editor").Return(&domain.Role{ID: 3, RoleName: "editor"}, nil).Once()
	_, err = f.svc.CreateRole(ctx, "editor")
	assertKind(t, err, domain.KindConflict)
	f.assertExpectations(t)
}

func TestCreateRole_DuplicateOnInsert(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.roles.On("FindByName", ctx, "admin").Return(nil, domain.ErrNotFound)
	f.roles.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

	_, err := f.svc.CreateRole(ctx, "admin")
	assertKind(t, err, domain.KindConflict)
}

// --- GetAllUsers ---

func TestGetAllUsers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.roles.On("FindByName", ctx, domain.RoleUser).Return(userRole, nil)
	f.users.On("ListByRole", ctx, userRole.ID).Return([]domain.User{*storedUser(userRole)}, nil)

	list, err := f.svc.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u-1", list[0].ID)
}

func TestGetAllUsers_UserRoleMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.roles.On("FindByName", ctx, domain.RoleUser).Return(nil, domain.ErrNotFound)

	_, err := f.svc.GetAllUsers(ctx)
	assertKind(t, err, domain.KindNotFound)
	f.users.AssertNotCalled(t, "ListByRole", mock.Anything, mock.Anything)
}

func TestGetAllUsers_StoreFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.roles.On("FindByName", ctx, domain.RoleUser).Return(userRole, nil)
	f.users.On("ListByRole", ctx, userRole.ID).Return(nil, errDB)

	_, err := f.svc.GetAllUsers(ctx)
	assertKind(t, err, domain.KindUnexpected)
}

// --- Activate / Deactivate ---

func TestSetActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assertKind(t, f.svc.ActivateUser(ctx, ""), domain.KindValidation)
	assertKind(t, f.svc.DeactivateUser(ctx, " "), domain.KindValidation)

	f.users.On("SetActive", ctx, "u-1", false).Return(true, nil).Once()
	require.NoError(t, f.svc.DeactivateUser(ctx, "u-1"))

	f.users.On("SetActive", ctx, "u-1", false).Return(false, nil).Once()
	de := assertKind(t, f.svc.DeactivateUser(ctx, "u-1"), domain.KindNotFound)
	assert.Contains(t, de.Message, "already inactive")

	f.users.On("SetActive", ctx, "u-1", true).Return(false, nil).Once()
	de = assertKind(t, f.svc.ActivateUser(ctx, "u-1"), domain.KindNotFound)
	assert.Contains(t, de.Message, "already active")

	f.users.On("SetActive", ctx, "u-2", true).Return(false, errDB).Once()
	assertKind(t, f.svc.ActivateUser(ctx, "u-2"), domain.KindUnexpected)
	f.assertExpectations(t)
}

// --- UpdateUserByAdmin ---

func TestUpdateUserByAdmin_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	name := "Renamed"
	patch := domain.ProfilePatch{Name: &name}

	before := storedUser(userRole)
	after := storedUser(userRole)
	after.Name = name

	f.users.On("FindByID", ctx, "u-1").Return(before, nil).Once()
	f.users.On("UpdateProfile", ctx, "u-1", patch).Return(nil)
	f.users.On("FindByID", ctx, "u-1").Return(after, nil).Once()

	v, err := f.svc.UpdateUserByAdmin(ctx, "u-1", patch)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", v.Name)
	f.assertExpectations(t)
}

func TestUpdateUserByAdmin_AdminTargetForbidden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("FindByID", ctx, "u-1").Return(storedUser(adminRole), nil)

	_, err := f.svc.UpdateUserByAdmin(ctx, "u-1", domain.ProfilePatch{})
	de := assertKind(t, err, domain.KindForbidden)
	assert.Equal(t, "operation not allowed", de.Message)
	f.users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUserByAdmin_Missing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.UpdateUserByAdmin(ctx, "", domain.ProfilePatch{})
	assertKind(t, err, domain.KindValidation)

	f.users.On("FindByID", ctx, "nope").Return(nil, domain.ErrNotFound)
	_, err = f.svc.UpdateUserByAdmin(ctx, "nope", domain.ProfilePatch{})
	assertKind(t, err, domain.KindNotFound)

	gone := storedUser(userRole)
	now := time.Now()
	gone.DeletedAt = &now
	f.users.On("FindByID", ctx, "gone").Return(gone, nil)
	_, err = f.svc.UpdateUserByAdmin(ctx, "gone", domain.ProfilePatch{})
	assertKind(t, err, domain.KindNotFound)
}

// --- GetUser ---

func TestGetUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.GetUser(ctx, "")
	assertKind(t, err, domain.KindValidation)

	f.users.On("FindByID", ctx, "u-1").Return(storedUser(userRole), nil)
	v, err := f.svc.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", v.Email)

	f.users.On("FindByID", ctx, "u-9").Return(nil, domain.ErrNotFound)
	_, err = f.svc.GetUser(ctx, "u-9")
	de := assertKind(t, err, domain.KindNotFound)
	assert.Equal(t, "User with id u-9 not found", de.Message)
}

// --- Self-service ---

func TestUpdateUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	age := 31
	patch := domain.ProfilePatch{Age: &age}

	f.users.On("FindByID", ctx, "u-1").Return(storedUser(userRole), nil)
	f.users.On("UpdateProfile", ctx, "u-1", patch).Return(nil)

	_, err := f.svc.UpdateUser(ctx, "u-1", patch)
	require.NoError(t, err)

	f.users.On("FindByID", ctx, "ghost").Return(nil, domain.ErrNotFound)
	_, err = f.svc.UpdateUser(ctx, "ghost", patch)
	assertKind(t, err, domain.KindNotFound)
}

func TestUpdateUser_StoreFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("FindByID", ctx, "u-1").Return(storedUser(userRole), nil)
	f.users.On("UpdateProfile", ctx, "u-1", mock.Anything).Return(errDB)

	_, err := f.svc.UpdateUser(ctx, "u-1", domain.ProfilePatch{})
	assertKind(t, err, domain.KindUnexpected)
}

func TestSoftDeleteUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f.svc.now = func() time.Time { return fixed }

	f.users.On("SoftDelete", ctx, "u-1", fixed).Return(true, nil).Once()
	require.NoError(t, f.svc.SoftDeleteUser(ctx, "u-1"))

	f.users.On("SoftDelete", ctx, "u-1", fixed).Return(false, nil).Once()
	de := assertKind(t, f.svc.SoftDeleteUser(ctx, "u-1"), domain.KindNotFound)
	assert.Equal(t, domain.MsgDeleteFailed, de.Message)

	f.users.On("SoftDelete", ctx, "u-1", fixed).Return(false, errDB).Once()
	assertKind(t, f.svc.SoftDeleteUser(ctx, "u-1"), domain.KindUnexpected)

	assertKind(t, f.svc.SoftDeleteUser(ctx, ""), domain.KindValidation)
	f.assertExpectations(t)
}
