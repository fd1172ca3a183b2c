package impl

import (
	"context"
	"testing"
	"time"

	"vigil/internal/domain/entity"
	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/domain/repository"
	"vigil/internal/domain/service"
	mockRepo "vigil/internal/mocks/repository"
	mockSvc "vigil/internal/mocks/service"
	"vigil/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAccessService(t *testing.T, modelKey string) (usecase.AccessUsecase, *mockRepo.MockUserRepository, *mockSvc.MockTokenService) {
	userRepo := mockRepo.NewMockUserRepository(t)
	tokenService := mockSvc.NewMockTokenService(t)
	cfg := newTestConfig()
	cfg.SecretKey.ModelAPIKey = modelKey

	svc := NewAccessService(AccessServiceParams{
		UserRepo:     userRepo,
		TokenService: tokenService,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})

	return svc, userRepo, tokenService
}

func TestAccessService_Authenticate(t *testing.T) {
	svc, _, tokens := createTestAccessService(t, "k")
	ctx := context.Background()
	claims := &entity.SessionClaims{Email: "a@example.com", ExpiresAt: time.Now().Add(time.Hour)}

	tokens.EXPECT().Verify("good").Return(claims, nil)
	tokens.EXPECT().Verify("expired").Return(nil, errors.Wrap(service.ErrInvalidToken, "token is expired"))

	got, err := svc.Authenticate(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, claims, got)

	_, err = svc.Authenticate(ctx, "expired")
	assert.True(t, errors.Is(err, domainerrors.ErrSessionInvalid))

	_, err = svc.Authenticate(ctx, "")
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAccessService_Authorize(t *testing.T) {
	tests := []struct {
		name    string
		user    func() *entity.User
		roles   []entity.Role
		wantErr bool
	}{
		{"any role admits active admin", func() *entity.User { return newActiveUser(entity.RoleAdmin) }, nil, false},
		{"superadmin route admits superadmin", func() *entity.User { return newActiveUser(entity.RoleSuperAdmin) }, []entity.Role{entity.RoleSuperAdmin}, false},
		{"superadmin route rejects admin", func() *entity.User { return newActiveUser(entity.RoleAdmin) }, []entity.Role{entity.RoleSuperAdmin}, true},
		{"deactivated superadmin rejected", func() *entity.User {
			u := newActiveUser(entity.RoleSuperAdmin)
			u.Active = false
			return u
		}, []entity.Role{entity.RoleSuperAdmin}, true},
		{"blocked user rejected", func() *entity.User {
			u := newActiveUser(entity.RoleNormal)
			u.Blocked = true
			return u
		}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _ := createTestAccessService(t, "k")
			ctx := context.Background()
			user := tt.user()
			userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

			got, err := svc.Authorize(ctx, user.ID, tt.roles...)

			if tt.wantErr {
				assert.Nil(t, got)
				assert.True(t, errors.Is(err, domainerrors.ErrForbidden), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

func TestAccessService_Authorize_MissingUser(t *testing.T) {
	svc, userRepo, _ := createTestAccessService(t, "k")
	ctx := context.Background()
	user := newActiveUser(entity.RoleAdmin)
	userRepo.EXPECT().FindByID(ctx, user.ID).Return(nil, repository.ErrUserNotFound)

	_, err := svc.Authorize(ctx, user.ID)

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestAccessService_VerifyMachineKey(t *testing.T) {
	svc, _, _ := createTestAccessService(t, "model-secret")

	assert.NoError(t, svc.VerifyMachineKey("model-secret"))
	assert.True(t, errors.Is(svc.VerifyMachineKey("model-secreT"), domainerrors.ErrInvalidMachineKey))
	assert.True(t, errors.Is(svc.VerifyMachineKey(""), domainerrors.ErrInvalidMachineKey))

	unset, _, _ := createTestAccessService(t, "")
	assert.True(t, errors.Is(unset.VerifyMachineKey(""), domainerrors.ErrInvalidMachineKey), "an unset secret admits nobody")
}
