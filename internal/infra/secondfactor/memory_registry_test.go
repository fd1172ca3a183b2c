package secondfactor

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vigil/internal/domain/entity"
	"vigil/internal/domain/service"
	"vigil/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newTestMemoryRegistry(t *testing.T) (*MemoryRegistry, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	registry := NewMemoryRegistry(5*time.Minute, time.Minute, slog.Default())
	registry.now = clock.Now

	return registry, clock
}

func TestMemoryRegistry_IssueFormat(t *testing.T) {
	registry, clock := newTestMemoryRegistry(t)
	userID := uuid.New()

	code, err := registry.Issue(context.Background(), userID, entity.CodePurposeLogin)
	require.NoError(t, err)

	assert.Len(t, code.Code, 6)
	n, err := strconv.Atoi(code.Code)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)

	assert.Equal(t, userID, code.UserID)
	assert.Equal(t, entity.CodePurposeLogin, code.Purpose)
	assert.Equal(t, clock.Now(), code.IssuedAt)
	assert.Equal(t, clock.Now().Add(5*time.Minute), code.ExpiresAt)
}

func TestMemoryRegistry_RedeemOnce(t *testing.T) {
	registry, _ := newTestMemoryRegistry(t)
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

func TestMemoryRegistry_UnknownCode(t *testing.T) {
	registry, _ := newTestMemoryRegistry(t)

	_, err := registry.Redeem(context.Background(), "123456", entity.CodePurposeLogin)
	assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))
}

func TestMemoryRegistry_Expiry(t *testing.T) {
	ctx := context.Background()

	t.Run("redeemable just before expiry", func(t *testing.T) {
		registry, clock := newTestMemoryRegistry(t)
		code, err := registry.Issue(ctx, uuid.New(), entity.CodePurposeLogin)
		require.NoError(t, err)

		clock.Advance(5*time.Minute - time.Second)
		_, err = registry.Redeem(ctx, code.Code, entity.CodePurposeLogin)
		assert.NoError(t, err)
	})

	t.Run("rejected at expiry", func(t *testing.T) {
		registry, clock := newTestMemoryRegistry(t)
		code, err := registry.Issue(ctx, uuid.New(), entity.CodePurposeLogin)
		require.NoError(t, err)

		clock.Advance(5 * time.Minute)
		_, err = registry.Redeem(ctx, code.Code, entity.CodePurposeLogin)
		assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))
		assert.Zero(t, registry.Len(), "expired entry must be removed on lookup")
	})

	t.Run("rejected after expiry without a sweep", func(t *testing.T) {
		registry, clock := newTestMemoryRegistry(t)
		code, err := registry.Issue(ctx, uuid.New(), entity.CodePurposeReset)
		require.NoError(t, err)

		clock.Advance(6 * time.Minute)
		_, err = registry.Redeem(ctx, code.Code, entity.CodePurposeReset)
		assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))
	})
}

func TestMemoryRegistry_PurposeIsolation(t *testing.T) {
	registry, _ := newTestMemoryRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	code, err := registry.Issue(ctx, userID, entity.CodePurposeLogin)
	require.NoError(t, err)

	_, err = registry.Redeem(ctx, code.Code, entity.CodePurposeReset)
	assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))

	// the failed cross-purpose attempt must not consume the login code
	got, err := registry.Redeem(ctx, code.Code, entity.CodePurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestMemoryRegistry_ConcurrentRedeem(t *testing.T) {
	registry, _ := newTestMemoryRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	code, err := registry.Issue(ctx, userID, entity.CodePurposeLogin)
	require.NoError(t, err)

	const workers = 64
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		start     = make(chan struct{})
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if got, err := registry.Redeem(ctx, code.Code, entity.CodePurposeLogin); err == nil {
				assert.Equal(t, userID, got)
				successes.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}

func TestMemoryRegistry_Peek(t *testing.T) {
	registry, clock := newTestMemoryRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	code, err := registry.Issue(ctx, userID, entity.CodePurposeReset)
	require.NoError(t, err)

	for range 2 {
		got, err := registry.Peek(ctx, code.Code, entity.CodePurposeReset)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	}

	_, err = registry.Peek(ctx, code.Code, entity.CodePurposeLogin)
	assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))

	clock.Advance(5 * time.Minute)
	_, err = registry.Peek(ctx, code.Code, entity.CodePurposeReset)
	assert.True(t, errors.Is(err, service.ErrCodeInvalidOrExpired))
	assert.Zero(t, registry.Len())
}

func TestMemoryRegistry_Sweep(t *testing.T) {
	registry, clock := newTestMemoryRegistry(t)
	ctx := context.Background()

	_, err := registry.Issue(ctx, uuid.New(), entity.CodePurposeLogin)
	require.NoError(t, err)
	_, err = registry.Issue(ctx, uuid.New(), entity.CodePurposeReset)
	require.NoError(t, err)

	clock.Advance(3 * time.Minute)
	fresh, err := registry.Issue(ctx, uuid.New(), entity.CodePurposeLogin)
	require.NoError(t, err)

	clock.Advance(3 * time.Minute)
	assert.Equal(t, 2, registry.Sweep(clock.Now()))
	assert.Equal(t, 1, registry.Len())

	_, err = registry.Redeem(ctx, fresh.Code, entity.CodePurposeLogin)
	assert.NoError(t, err)
}

func TestMemoryRegistry_BackgroundSweeper(t *testing.T) {
	registry := NewMemoryRegistry(time.Millisecond, 5*time.Millisecond, slog.Default())
	ctx := context.Background()

	_, err := registry.Issue(ctx, uuid.New(), entity.CodePurposeLogin)
	require.NoError(t, err)

	registry.Start()
	registry.Start() // second start is a no-op

	assert.Eventually(t, func() bool { return registry.Len() == 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, registry.Stop(ctx))
	require.NoError(t, registry.Stop(ctx))
}
