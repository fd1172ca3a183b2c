package secondfactor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vigil/internal/domain/entity"
	"vigil/internal/domain/service"
	"vigil/internal/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRegistry(t *testing.T) (*RedisRegistry, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRegistry(client, 5*time.Minute, "", slog.Default()), server
}

func TestRedisRegistry_IssueStoresWithTTL(t *testing.T) {
	registry, server := newTestRedisRegistry(t)
	userID := uuid.New()

	code, err := registry.Issue(context.Background(), userID, entity.CodePurposeLogin)
	require.NoError(t, err)

	key := "vigil:code:2fa:" + code.Code
	value, err := server.Get(key)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), value)
	assert.Equal(t, 5*time.Minute, server.TTL(key))
}

func TestRedisRegistry_RedeemOnce(t *testing.T) {
	registry, _ := newTestRedisRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	code, err := registry.Issue(ctx, userID, entity.CodePurposeLogin)
	require.NoError(t, err)

	got, err := registry.Redeem(ctx, code.Code, entity.CodePurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = registry.Redeem(ctx, code.Code, entity.CodePurposeLogin)
	assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))
}

func TestRedisRegistry_Expiry(t *testing.T) {
	registry, server := newTestRedisRegistry(t)
	ctx := context.Background()

	code, err := registry.Issue(ctx, uuid.New(), entity.CodePurposeLogin)
	require.NoError(t, err)

	server.FastForward(5 * time.Minute)

	_, err = registry.Redeem(ctx, code.Code, entity.CodePurposeLogin)
	assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))
}

func TestRedisRegistry_PurposeIsolation(t *testing.T) {
	registry, _ := newTestRedisRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	code, err := registry.Issue(ctx, userID, entity.CodePurposeReset)
	require.NoError(t, err)

	_, err = registry.Redeem(ctx, code.Code, entity.CodePurposeLogin)
	assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))

	got, err := registry.Peek(ctx, code.Code, entity.CodePurposeReset)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	got, err = registry.Redeem(ctx, code.Code, entity.CodePurposeReset)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestRedisRegistry_ConcurrentRedeem(t *testing.T) {
	registry, _ := newTestRedisRegistry(t)
	ctx := context.Background()

	code, err := registry.Issue(ctx, uuid.New(), entity.CodePurposeLogin)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := registry.Redeem(ctx, code.Code, entity.CodePurposeLogin); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}

func TestRedisRegistry_CorruptValue(t *testing.T) {
	registry, server := newTestRedisRegistry(t)

	require.NoError(t, server.Set("vigil:code:2fa:111111", "garbage"))

	_, err := registry.Redeem(context.Background(), "111111", entity.CodePurposeLogin)
	assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))
}

func TestRedisRegistry_ServerDown(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	registry := NewRedisRegistry(client, time.Minute, "test", slog.Default())
	server.Close()

	_, err = registry.Redeem(context.Background(), "111111", entity.CodePurposeLogin)
	require.Error(t, err)
	assert.False(t, errors.Is(err, service.ErrCodeInvalidOrExpired))
}
