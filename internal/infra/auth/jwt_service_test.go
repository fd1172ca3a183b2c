package auth

import (
	"strings"
	"testing"
	"time"

	"vigil/config"
	"vigil/internal/domain/entity"
	"vigil/internal/domain/service"
	"vigil/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_session_secret_key_very_long_for_testing"

func newTestJWTService(t *testing.T, now func() time.Time) *jwtService {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{SessionTTL: time.Hour}}
	cfg.SecretKey.Session = testSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	s := svc.(*jwtService)
	if now != nil {
		s.now = now
	}

	return s
}

func testUser() *entity.User {
	return &entity.User{ID: uuid.New(), Email: "officer@example.com", Role: entity.RoleAdmin, Active: true}
}

func TestJWTService_MintAndVerify(t *testing.T) {
	svc := newTestJWTService(t, nil)
	user := testUser()

	session, err := svc.Mint(user)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, time.Hour, session.ExpiresAt.Sub(session.IssuedAt))

	claims, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, session.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestJWTService_Expiry(t *testing.T) {
	current := time.Now()
	svc := newTestJWTService(t, func() time.Time { return current })

	session, err := svc.Mint(testUser())
	require.NoError(t, err)

	current = current.Add(59 * time.Minute)
	_, err = svc.Verify(session.Token)
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = svc.Verify(session.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	svc := newTestJWTService(t, nil)

	claims := jwt.MapClaims{
		"sub":   uuid.NewString(),
		"email": "attacker@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(forged)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestJWTService(t, nil)

	claims := jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(hs512)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))
}

func TestJWTService_RejectsMissingExpiryAndBadSubject(t *testing.T) {
	svc := newTestJWTService(t, nil)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": uuid.NewString()}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(noExp)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))

	badSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(badSub)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc := newTestJWTService(t, nil)

	session, err := svc.Mint(testUser())
	require.NoError(t, err)

	parts := strings.Split(session.Token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = svc.Verify(tampered)
	assert.Error(t, err)

	_, err = svc.Verify("")
	assert.Error(t, err)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}
