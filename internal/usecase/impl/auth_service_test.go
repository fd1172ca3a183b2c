package impl

import (
	"context"
	"testing"
	"time"

	"vigil/internal/domain/entity"
	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/domain/repository"
	"vigil/internal/domain/service"
	"vigil/internal/infra/auth"
	"vigil/internal/infra/secondfactor"
	mockRepo "vigil/internal/mocks/repository"
	mockSvc "vigil/internal/mocks/service"
	"vigil/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testDummyHash = "$2a$04$dummy.hash.for.unknown.emails.only.xxxxxxxxxxxxxxxxxxxx"

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	codeRegistry *mockSvc.MockCodeRegistry
	codeSender   *mockSvc.MockCodeSender
	googleAuth   *mockSvc.MockOAuthAuthService
}

func createTestAuthService(t *testing.T, exposeCode bool) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	codeRegistry := mockSvc.NewMockCodeRegistry(t)
	codeSender := mockSvc.NewMockCodeSender(t)
	googleAuth := mockSvc.NewMockOAuthAuthService(t)

	cfg := newTestConfig()
	cfg.Auth.ExposeCodeInResponse = exposeCode

	hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return(testDummyHash, nil).Once()

	svc := NewAuthService(AuthServiceParams{
		UserRepo:          userRepo,
		Hasher:            hasher,
		TokenService:      tokenService,
		CodeRegistry:      codeRegistry,
		CodeSender:        codeSender,
		GoogleAuthService: googleAuth,
		Config:            cfg,
		Logger:            newDiscardLogger(),
	})

	return authServiceFixtures{
		service:      svc,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		codeRegistry: codeRegistry,
		codeSender:   codeSender,
		googleAuth:   googleAuth,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()
	user := newActiveUser(entity.RoleAdmin)
	session := &entity.Session{Token: "signed", UserID: user.ID, Email: user.Email}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("Password123!", user.PasswordHash).Return(true)
	fx.tokenService.EXPECT().Mint(user).Return(session, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	require.NoError(t, err)
	assert.False(t, output.Pending)
	assert.Equal(t, session, output.Session)
	assert.Equal(t, user.ID, output.User.ID)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Check("whatever", testDummyHash).Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "whatever"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()
	user := newActiveUser(entity.RoleAdmin)

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", user.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "wrong"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_StatusCheckedAfterCredentials(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*entity.User)
		password bool
		wantErr  error
	}{
		{"blocked with wrong password", func(u *entity.User) { u.Blocked = true }, false, domainerrors.ErrInvalidCredentials},
		{"blocked with right password", func(u *entity.User) { u.Blocked = true }, true, domainerrors.ErrAccountBlocked},
		{"deactivated with right password", func(u *entity.User) { u.Active = false }, true, domainerrors.ErrAccountInactive},
		{"blocked with 2FA enabled", func(u *entity.User) { u.Blocked = true; u.TwoFactorEnabled = true }, true, domainerrors.ErrAccountBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t, false)
			ctx := context.Background()
			user := newActiveUser(entity.RoleAdmin)
			tt.mutate(user)

			fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
			fx.hasher.EXPECT().Check("pw", user.PasswordHash).Return(tt.password)

			output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "pw"})

			assert.Nil(t, output)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestAuthService_Login_SecondFactorPending(t *testing.T) {
	for _, exposeCode := range []bool{false, true} {
		fx := createTestAuthService(t, exposeCode)
		ctx := context.Background()
		user := newActiveUser(entity.RoleAdmin)
		user.TwoFactorEnabled = true
		code := &entity.SecondFactorCode{Code: "123456", Purpose: entity.CodePurposeLogin, UserID: user.ID}

		fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		fx.hasher.EXPECT().Check("pw", user.PasswordHash).Return(true)
		fx.codeRegistry.EXPECT().Issue(ctx, user.ID, entity.CodePurposeLogin).Return(code, nil)
		fx.codeSender.EXPECT().SendCode(ctx, user.Email, code).Return()

		output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "pw"})

		require.NoError(t, err)
		assert.True(t, output.Pending)
		assert.Nil(t, output.Session)
		if exposeCode {
			assert.Equal(t, "123456", output.TempToken)
		} else {
			assert.Empty(t, output.TempToken)
		}
	}
}

func TestAuthService_Login_IssueFailure(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()
	user := newActiveUser(entity.RoleAdmin)
	user.TwoFactorEnabled = true

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("pw", user.PasswordHash).Return(true)
	fx.codeRegistry.EXPECT().Issue(ctx, user.ID, entity.CodePurposeLogin).Return(nil, errors.New("registry exhausted"))

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "pw"})

	assert.True(t, errors.Is(err, domainerrors.ErrInternalError))
}

func TestAuthService_VerifySecondFactor_InvalidCode(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	fx.codeRegistry.EXPECT().Redeem(ctx, "000000", entity.CodePurposeLogin).Return(uuid.Nil, service.ErrCodeInvalidOrExpired)

	output, err := fx.service.VerifySecondFactor(ctx, &usecase.VerifySecondFactorInput{Code: "000000"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrExpiredCode))
}

func TestAuthService_VerifySecondFactor_BlockedMeanwhile(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()
	user := newActiveUser(entity.RoleAdmin)
	user.Blocked = true

	fx.codeRegistry.EXPECT().Redeem(ctx, "123456", entity.CodePurposeLogin).Return(user.ID, nil)
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

	_, err := fx.service.VerifySecondFactor(ctx, &usecase.VerifySecondFactorInput{Code: "123456"})

	assert.True(t, errors.Is(err, domainerrors.ErrAccountBlocked))
}

func TestAuthService_GoogleLogin(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := NewAuthService(AuthServiceParams{Config: newTestConfig(), Logger: newDiscardLogger()})

		_, err := svc.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{IDToken: "t"})

		assert.True(t, errors.Is(err, domainerrors.ErrOAuthNotConfigured))
	})

	t.Run("invalid token", func(t *testing.T) {
		fx := createTestAuthService(t, false)
		ctx := context.Background()
		fx.googleAuth.EXPECT().VerifyIDToken(ctx, "bad").Return(nil, errors.New("audience mismatch"))

		_, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{IDToken: "bad"})

		assert.True(t, errors.Is(err, domainerrors.ErrOAuthTokenInvalid))
	})

	t.Run("unknown email", func(t *testing.T) {
		fx := createTestAuthService(t, false)
		ctx := context.Background()
		fx.googleAuth.EXPECT().VerifyIDToken(ctx, "tok").Return(&service.OAuthUser{Email: "ghost@example.com", EmailVerified: true}, nil)
		fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

		_, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{IDToken: "tok"})

		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})

	t.Run("links account and signs in", func(t *testing.T) {
		fx := createTestAuthService(t, false)
		ctx := context.Background()
		user := newActiveUser(entity.RoleNormal)
		session := &entity.Session{Token: "signed", UserID: user.ID}

		fx.googleAuth.EXPECT().VerifyIDToken(ctx, "tok").Return(&service.OAuthUser{Email: user.Email, EmailVerified: true}, nil)
		fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		linked := *user
		linked.HasGoogleAuth = true
		fx.userRepo.EXPECT().
			UpdateFields(ctx, user.ID, mock.MatchedBy(func(u *repository.UserUpdate) bool {
				return u.HasGoogleAuth != nil && *u.HasGoogleAuth && u.PasswordHash == nil && u.Blocked == nil
			})).
			Return(&linked, nil)
		fx.tokenService.EXPECT().Mint(&linked).Return(session, nil)

		output, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{IDToken: "tok"})

		require.NoError(t, err)
		assert.Equal(t, session, output.Session)
	})
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	t.Run("unknown email succeeds without issuing", func(t *testing.T) {
		fx := createTestAuthService(t, true)
		ctx := context.Background()
		fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

		output, err := fx.service.RequestPasswordReset(ctx, &usecase.RequestPasswordResetInput{Email: "ghost@example.com"})

		require.NoError(t, err)
		assert.Empty(t, output.TempToken)
	})

	t.Run("known email issues reset code", func(t *testing.T) {
		fx := createTestAuthService(t, false)
		ctx := context.Background()
		user := newActiveUser(entity.RoleAdmin)
		code := &entity.SecondFactorCode{Code: "654321", Purpose: entity.CodePurposeReset, UserID: user.ID}

		fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		fx.codeRegistry.EXPECT().Issue(ctx, user.ID, entity.CodePurposeReset).Return(code, nil)
		fx.codeSender.EXPECT().SendCode(ctx, user.Email, code).Return()

		output, err := fx.service.RequestPasswordReset(ctx, &usecase.RequestPasswordResetInput{Email: user.Email})

		require.NoError(t, err)
		assert.Empty(t, output.TempToken)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()
	user := newActiveUser(entity.RoleAdmin)

	fx.codeRegistry.EXPECT().Redeem(ctx, "654321", entity.CodePurposeReset).Return(user.ID, nil)
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.hasher.EXPECT().Hash("NewPassword1!").Return("new_hash", nil)
	fx.userRepo.EXPECT().
		UpdateFields(ctx, user.ID, mock.MatchedBy(func(u *repository.UserUpdate) bool {
			return u.PasswordHash != nil && *u.PasswordHash == "new_hash" && u.Blocked == nil && u.Active == nil
		})).
		Return(user, nil)

	err := fx.service.ResetPassword(ctx, &usecase.ResetPasswordInput{Code: "654321", NewPassword: "NewPassword1!"})

	require.NoError(t, err)
}

func TestAuthService_VerifyResetCode(t *testing.T) {
	fx := createTestAuthService(t, false)
	ctx := context.Background()

	fx.codeRegistry.EXPECT().Peek(ctx, "111111", entity.CodePurposeReset).Return(uuid.New(), nil)
	fx.codeRegistry.EXPECT().Peek(ctx, "222222", entity.CodePurposeReset).Return(uuid.Nil, service.ErrCodeInvalidOrExpired)

	assert.NoError(t, fx.service.VerifyResetCode(ctx, &usecase.VerifyResetCodeInput{Code: "111111"}))
	err := fx.service.VerifyResetCode(ctx, &usecase.VerifyResetCodeInput{Code: "222222"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrExpiredCode))
}

func TestAuthService_DummyHashFollowsConfiguredCost(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.BcryptCost = 5

	svc := NewAuthService(AuthServiceParams{
		UserRepo:     mockRepo.NewMockUserRepository(t),
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: mockSvc.NewMockTokenService(t),
		CodeRegistry: mockSvc.NewMockCodeRegistry(t),
		CodeSender:   mockSvc.NewMockCodeSender(t),
		Config:       cfg,
		Logger:       newDiscardLogger(),
	}).(*authService)

	cost, err := bcrypt.Cost([]byte(svc.dummyHash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestAuthService_DummyHashFallback(t *testing.T) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	hasher.EXPECT().Hash(mock.Anything).Return("", errors.New("entropy exhausted"))

	svc := NewAuthService(AuthServiceParams{
		UserRepo:     mockRepo.NewMockUserRepository(t),
		Hasher:       hasher,
		TokenService: mockSvc.NewMockTokenService(t),
		CodeRegistry: mockSvc.NewMockCodeRegistry(t),
		CodeSender:   mockSvc.NewMockCodeSender(t),
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	}).(*authService)

	assert.Equal(t, fallbackDummyHash, svc.dummyHash)
}

// TestAuthService_SecondFactorFlow runs login, code delivery and redemption
// against the real registry, hasher and token service.
func TestAuthService_SecondFactorFlow(t *testing.T) {
	cfg := newTestConfig()
	hasher := auth.NewBcryptHasher(cfg)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	registry := secondfactor.NewMemoryRegistry(5*time.Minute, time.Minute, newDiscardLogger())

	hash, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	user := newActiveUser(entity.RoleAdmin)
	user.PasswordHash = hash
	user.TwoFactorEnabled = true

	userRepo := mockRepo.NewMockUserRepository(t)
	userRepo.EXPECT().FindByEmail(mock.Anything, user.Email).Return(user, nil)
	userRepo.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)

	var delivered []*entity.SecondFactorCode
	sender := mockSvc.NewMockCodeSender(t)
	sender.EXPECT().SendCode(mock.Anything, user.Email, mock.Anything).
		Run(func(_ context.Context, _ string, code *entity.SecondFactorCode) {
			delivered = append(delivered, code)
		}).
		Return()

	svc := NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokens,
		CodeRegistry: registry,
		CodeSender:   sender,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})
	ctx := context.Background()

	output, err := svc.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Password123!"})
	require.NoError(t, err)
	require.True(t, output.Pending)
	require.Len(t, delivered, 1)
	code := delivered[0].Code

	_, err = svc.VerifySecondFactor(ctx, &usecase.VerifySecondFactorInput{Code: "not-a-code"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrExpiredCode))

	verified, err := svc.VerifySecondFactor(ctx, &usecase.VerifySecondFactorInput{Code: code})
	require.NoError(t, err)
	claims, err := tokens.Verify(verified.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)

	_, err = svc.VerifySecondFactor(ctx, &usecase.VerifySecondFactorInput{Code: code})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrExpiredCode), "a code redeems once")

	// A reset code must not satisfy the login purpose.
	_, err = svc.RequestPasswordReset(ctx, &usecase.RequestPasswordResetInput{Email: user.Email})
	require.NoError(t, err)
	require.Len(t, delivered, 2)
	_, err = svc.VerifySecondFactor(ctx, &usecase.VerifySecondFactorInput{Code: delivered[1].Code})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrExpiredCode))
	require.NoError(t, svc.VerifyResetCode(ctx, &usecase.VerifyResetCodeInput{Code: delivered[1].Code}))
}
