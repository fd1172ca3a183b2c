package secondfactor

import (
	"context"
	"log/slog"
	"time"

	"vigil/internal/domain/entity"
	"vigil/internal/domain/service"
	"vigil/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "vigil:code"
	maxIssueAttempts = 5
)

// RedisRegistry shares codes between instances through Redis.
// Entries carry a native TTL, so expiry is enforced on read and the server
// reclaims the keys. Redeem uses GETDEL, which is atomic on the server.
type RedisRegistry struct {
	client    redis.UniversalClient
	ttl       time.Duration
	keyPrefix string
	now       func() time.Time
	logger    *slog.Logger
}

// NewRedisRegistry creates a registry on top of an existing client.
func NewRedisRegistry(client redis.UniversalClient, ttl time.Duration, keyPrefix string, logger *slog.Logger) *RedisRegistry {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}

	return &RedisRegistry{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		now:       time.Now,
		logger:    logger,
	}
}

var _ service.CodeRegistry = (*RedisRegistry)(nil)

func (r *RedisRegistry) key(purpose entity.CodePurpose, code string) string {
	return r.keyPrefix + ":" + purpose.String() + ":" + code
}

func (r *RedisRegistry) Issue(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose) (*entity.SecondFactorCode, error) {
	issuedAt := r.now()

	for range maxIssueAttempts {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}

		// SET NX keeps a live code from being rebound to another user.
		stored, err := r.client.SetNX(ctx, r.key(purpose, code), userID.String(), r.ttl).Result()
		if err != nil {
			return nil, errors.Wrap(err, "failed to store second factor code")
		}
		if !stored {
			continue
		}

		return &entity.SecondFactorCode{
			Code:      code,
			Purpose:   purpose,
			UserID:    userID,
			IssuedAt:  issuedAt,
			ExpiresAt: issuedAt.Add(r.ttl),
		}, nil
	}

	return nil, errors.New("failed to allocate a unique second factor code")
}

func (r *RedisRegistry) Redeem(ctx context.Context, code string, purpose entity.CodePurpose) (uuid.UUID, error) {
	value, err := r.client.GetDel(ctx, r.key(purpose, code)).Result()

	return r.parseOwner(value, err)
}

func (r *RedisRegistry) Peek(ctx context.Context, code string, purpose entity.CodePurpose) (uuid.UUID, error) {
	value, err := r.client.Get(ctx, r.key(purpose, code)).Result()

	return r.parseOwner(value, err)
}

func (r *RedisRegistry) parseOwner(value string, err error) (uuid.UUID, error) {
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, service.ErrCodeInvalidOrExpired
	}
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to read second factor code")
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		r.logger.Error("Corrupt second factor entry", slog.String("value", value), slog.Any("error", err))

		return uuid.Nil, service.ErrCodeInvalidOrExpired
	}

	return userID, nil
}
