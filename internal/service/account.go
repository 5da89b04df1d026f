package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"account-api/internal/core/cache"
	"account-api/internal/domain"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hashed string) bool
}

type TokenIssuer interface {
	Issue(id, role string) (string, error)
}

type Options struct {
	// Cache is optional; GetUser reads through it when set.
	Cache    *cache.Cache
	CacheTTL time.Duration
}

// AccountService owns registration, login and account administration.
// Every error it returns is a *domain.Error.
type AccountService struct {
	users  domain.UserRepository
	roles  domain.RoleRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    *zap.Logger

	userCache *cache.Entity[domain.UserView]
	now       func() time.Time
}

func NewAccountService(
	users domain.UserRepository,
	roles domain.RoleRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	log *zap.Logger,
	opts Options,
) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	s := &AccountService{
		users:  users,
		roles:  roles,
		hasher: hasher,
		tokens: tokens,
		log:    log.Named("account"),
		now:    time.Now,
	}
	if opts.Cache != nil {
		s.userCache = cache.NewEntity[domain.UserView](opts.Cache, "user", opts.CacheTTL)
	}
	return s
}

// unexpected logs the internal cause and hides it from the caller.
func (s *AccountService) unexpected(ctx context.Context, op string, err error, fields ...zap.Field) *domain.Error {
	if ctx.Err() != nil {
		fields = append(fields, zap.NamedError("ctx", ctx.Err()))
	}
	s.log.Error(op+" failed", append(fields, zap.Error(err))...)
	return domain.Unexpected(err)
}

// liveUser loads a user that exists and is not soft deleted.
func (s *AccountService) liveUser(ctx context.Context, op, id string, notFound *domain.Error) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, s.unexpected(ctx, op, err, zap.String("user_id", id))
	}
	if u.Deleted() {
		return nil, notFound
	}
	return u, nil
}

func (s *AccountService) forget(ctx context.Context, id string) {
	if s.userCache == nil {
		return
	}
	if err := s.userCache.Invalidate(ctx, id); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("user_id", id), zap.Error(err))
	}
}
