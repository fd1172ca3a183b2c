package secondfactor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"vigil/internal/domain/entity"
	"vigil/internal/domain/service"
	"vigil/internal/errors"

	"github.com/google/uuid"
)

type entryKey struct {
	purpose entity.CodePurpose
	code    string
}

// MemoryRegistry is a process-local CodeRegistry.
// Redeem removes the entry under the same lock that looks it up, so a code is
// handed out at most once. Expired entries are rejected on lookup and
// reclaimed by a periodic sweep.
type MemoryRegistry struct {
	mu      sync.Mutex
	entries map[entryKey]*entity.SecondFactorCode

	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time
	logger        *slog.Logger

	stop chan struct{}
	done chan struct{}
}

// NewMemoryRegistry creates an empty registry. Start must be called to run the sweeper.
func NewMemoryRegistry(ttl, sweepInterval time.Duration, logger *slog.Logger) *MemoryRegistry {
	return &MemoryRegistry{
		entries:       make(map[entryKey]*entity.SecondFactorCode),
		ttl:           ttl,
		sweepInterval: sweepInterval,
		now:           time.Now,
		logger:        logger,
	}
}

var _ service.CodeRegistry = (*MemoryRegistry)(nil)

func (r *MemoryRegistry) Issue(_ context.Context, userID uuid.UUID, purpose entity.CodePurpose) (*entity.SecondFactorCode, error) {
	issuedAt := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Regenerate on collision with a live entry so that an outstanding code
	// is never silently rebound to another user.
	for range maxIssueAttempts {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}

		key := entryKey{purpose: purpose, code: code}
		if existing, ok := r.entries[key]; ok && !existing.Expired(issuedAt) {
			continue
		}

		entry := &entity.SecondFactorCode{
			Code:      code,
			Purpose:   purpose,
			UserID:    userID,
			IssuedAt:  issuedAt,
			ExpiresAt: issuedAt.Add(r.ttl),
		}
		r.entries[key] = entry

		copied := *entry

		return &copied, nil
	}

	return nil, errors.New("failed to allocate a unique second factor code")
}

func (r *MemoryRegistry) Redeem(_ context.Context, code string, purpose entity.CodePurpose) (uuid.UUID, error) {
	key := entryKey{purpose: purpose, code: code}

	r.mu.Lock()
	entry, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	r.mu.Unlock()

	if !ok || entry.Expired(r.now()) {
		return uuid.Nil, service.ErrCodeInvalidOrExpired
	}

	return entry.UserID, nil
}

func (r *MemoryRegistry) Peek(_ context.Context, code string, purpose entity.CodePurpose) (uuid.UUID, error) {
	key := entryKey{purpose: purpose, code: code}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return uuid.Nil, service.ErrCodeInvalidOrExpired
	}
	if entry.Expired(r.now()) {
		delete(r.entries, key)

		return uuid.Nil, service.ErrCodeInvalidOrExpired
	}

	return entry.UserID, nil
}

// Sweep drops every entry expired at now and returns how many were removed.
func (r *MemoryRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, entry := range r.entries {
		if entry.Expired(now) {
			delete(r.entries, key)
			removed++
		}
	}

	return removed
}

// Len returns the number of stored entries, expired or not.
func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Start launches the background sweeper. It is a no-op when already running
// or when the sweep interval is not positive.
func (r *MemoryRegistry) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop != nil || r.sweepInterval <= 0 {
		return
	}

	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go r.sweepLoop(r.stop, r.done)
}

// Stop halts the sweeper and waits for it to exit or for ctx to end.
func (r *MemoryRegistry) Stop(ctx context.Context) error {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return nil
	}

	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *MemoryRegistry) sweepLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if removed := r.Sweep(r.now()); removed > 0 {
				r.logger.Debug("Expired second factor codes reclaimed", slog.Int("count", removed))
			}
		}
	}
}
