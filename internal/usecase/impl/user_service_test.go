package impl

import (
	"context"
	"testing"

	"vigil/config"
	"vigil/internal/domain/entity"
	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/domain/repository"
	mockRepo "vigil/internal/mocks/repository"
	mockSvc "vigil/internal/mocks/service"
	"vigil/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service   usecase.UserUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
	hasher    *mockSvc.MockPasswordHasher
}

func createTestUserService(t *testing.T, bootstrap *config.BootstrapConfig) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	cfg := newTestConfig()
	cfg.Bootstrap = bootstrap

	svc := NewUserService(UserServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		Hasher:    hasher,
		Config:    cfg,
		Logger:    newDiscardLogger(),
	})

	return userServiceFixtures{
		service:   svc,
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
	}
}

// expectTx runs the callback against a factory whose UserRepo is txUserRepo.
func expectTx(t *testing.T, fx userServiceFixtures, txUserRepo *mockRepo.MockUserRepository) {
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().UserRepo().Return(txUserRepo)

			return fn(factory)
		})
}

func TestUserService_CreateUser_Success(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	txUserRepo := mockRepo.NewMockUserRepository(t)
	input := &usecase.CreateUserInput{Names: "Ada", Email: "ada@example.com", Phone: "+1", Password: "Password123!"}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed", nil)
	expectTx(t, fx, txUserRepo)
	txUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	txUserRepo.EXPECT().FindByPhone(ctx, input.Phone).Return(nil, repository.ErrUserNotFound)
	txUserRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) { user.ID = uuid.New() }).
		Return(nil)

	user, err := fx.service.CreateUser(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role, "default role")
	assert.True(t, user.Active)
	assert.Equal(t, "hashed", user.PasswordHash)
}

func TestUserService_CreateUser_Conflicts(t *testing.T) {
	t.Run("email taken", func(t *testing.T) {
		fx := createTestUserService(t, nil)
		ctx := context.Background()
		txUserRepo := mockRepo.NewMockUserRepository(t)
		input := &usecase.CreateUserInput{Email: "ada@example.com", Phone: "+1", Password: "pw"}

		fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
		expectTx(t, fx, txUserRepo)
		txUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(newActiveUser(entity.RoleAdmin), nil)

		_, err := fx.service.CreateUser(ctx, input)

		assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	})

	t.Run("phone taken", func(t *testing.T) {
		fx := createTestUserService(t, nil)
		ctx := context.Background()
		txUserRepo := mockRepo.NewMockUserRepository(t)
		input := &usecase.CreateUserInput{Email: "ada@example.com", Phone: "+1", Password: "pw"}

		fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
		expectTx(t, fx, txUserRepo)
		txUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
		txUserRepo.EXPECT().FindByPhone(ctx, input.Phone).Return(newActiveUser(entity.RoleAdmin), nil)

		_, err := fx.service.CreateUser(ctx, input)

		assert.True(t, errors.Is(err, domainerrors.ErrPhoneAlreadyExists))
	})

	t.Run("store-level duplicate", func(t *testing.T) {
		fx := createTestUserService(t, nil)
		ctx := context.Background()
		txUserRepo := mockRepo.NewMockUserRepository(t)
		input := &usecase.CreateUserInput{Email: "ada@example.com", Phone: "+1", Password: "pw"}

		fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
		expectTx(t, fx, txUserRepo)
		txUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
		txUserRepo.EXPECT().FindByPhone(ctx, input.Phone).Return(nil, repository.ErrUserNotFound)
		txUserRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.Wrap(repository.ErrDuplicateUser, "email"))

		_, err := fx.service.CreateUser(ctx, input)

		assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	})
}

func TestUserService_CreateUser_InvalidRole(t *testing.T) {
	fx := createTestUserService(t, nil)

	_, err := fx.service.CreateUser(context.Background(), &usecase.CreateUserInput{Role: "ROOT"})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserService_Deactivate(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	actor := newActiveUser(entity.RoleSuperAdmin)
	target := newActiveUser(entity.RoleAdmin)

	_, err := fx.service.Deactivate(ctx, actor.ID, actor.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrCannotDeactivateSelf))

	fx.userRepo.EXPECT().
		UpdateFields(ctx, target.ID, mock.MatchedBy(func(u *repository.UserUpdate) bool {
			return u.Active != nil && !*u.Active && u.DeactivatedBy != nil && *u.DeactivatedBy == actor.ID &&
				u.Blocked == nil && u.TwoFactorEnabled == nil
		})).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, u *repository.UserUpdate) (*entity.User, error) {
			stored := *target
			stored.Active = *u.Active
			stored.DeactivatedBy = u.DeactivatedBy

			return &stored, nil
		})

	got, err := fx.service.Deactivate(ctx, actor.ID, target.ID)

	require.NoError(t, err)
	assert.False(t, got.Active)
	require.NotNil(t, got.DeactivatedBy)
	assert.Equal(t, actor.ID, *got.DeactivatedBy)
}

func TestUserService_SetAccess(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	target := newActiveUser(entity.RoleAdmin)

	blocked := *target
	blocked.Blocked = true
	fx.userRepo.EXPECT().
		UpdateFields(ctx, target.ID, &repository.UserUpdate{Blocked: ptrTo(true)}).
		Return(&blocked, nil)

	got, err := fx.service.SetAccess(ctx, target.ID, true)

	require.NoError(t, err)
	assert.True(t, got.Blocked)

	missing := uuid.New()
	fx.userRepo.EXPECT().
		UpdateFields(ctx, missing, &repository.UserUpdate{Blocked: ptrTo(false)}).
		Return(nil, repository.ErrUserNotFound)
	_, err = fx.service.SetAccess(ctx, missing, false)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Run("wrong current password", func(t *testing.T) {
		fx := createTestUserService(t, nil)
		ctx := context.Background()
		user := newActiveUser(entity.RoleAdmin)

		fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		fx.hasher.EXPECT().Check("old", user.PasswordHash).Return(false)

		err := fx.service.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{CurrentPassword: "old", NewPassword: "new"})

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("success", func(t *testing.T) {
		fx := createTestUserService(t, nil)
		ctx := context.Background()
		user := newActiveUser(entity.RoleAdmin)

		fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		fx.hasher.EXPECT().Check("old", user.PasswordHash).Return(true)
		fx.hasher.EXPECT().Hash("NewPassword1!").Return("new_hash", nil)
		fx.userRepo.EXPECT().
			UpdateFields(ctx, user.ID, &repository.UserUpdate{PasswordHash: ptrTo("new_hash")}).
			Return(user, nil)

		err := fx.service.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{CurrentPassword: "old", NewPassword: "NewPassword1!"})

		require.NoError(t, err)
	})
}

func TestUserService_AdminChangePassword(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	user := newActiveUser(entity.RoleAdmin)

	fx.hasher.EXPECT().Hash("Reset123!").Return("admin_hash", nil)
	fx.userRepo.EXPECT().
		UpdateFields(ctx, user.ID, &repository.UserUpdate{PasswordHash: ptrTo("admin_hash")}).
		Return(user, nil)

	require.NoError(t, fx.service.AdminChangePassword(ctx, user.ID, "Reset123!"))

	missing := uuid.New()
	fx.hasher.EXPECT().Hash("Reset123!").Return("admin_hash", nil)
	fx.userRepo.EXPECT().
		UpdateFields(ctx, missing, &repository.UserUpdate{PasswordHash: ptrTo("admin_hash")}).
		Return(nil, repository.ErrUserNotFound)

	err := fx.service.AdminChangePassword(ctx, missing, "Reset123!")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_ToggleSecondFactor(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	user := newActiveUser(entity.RoleAdmin)

	enabled := *user
	enabled.TwoFactorEnabled = true
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil).Once()
	fx.userRepo.EXPECT().
		UpdateFields(ctx, user.ID, &repository.UserUpdate{TwoFactorEnabled: ptrTo(true)}).
		Return(&enabled, nil).Once()

	got, err := fx.service.ToggleSecondFactor(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.TwoFactorEnabled)

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(&enabled, nil).Once()
	fx.userRepo.EXPECT().
		UpdateFields(ctx, user.ID, &repository.UserUpdate{TwoFactorEnabled: ptrTo(false)}).
		Return(user, nil).Once()

	got, err = fx.service.ToggleSecondFactor(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.TwoFactorEnabled)
}

func TestUserService_EnsureSuperAdmin(t *testing.T) {
	bootstrap := &config.BootstrapConfig{Names: "Root", Email: "root@example.com", Phone: "+0", Password: "Root123!"}

	t.Run("not configured", func(t *testing.T) {
		fx := createTestUserService(t, nil)
		require.NoError(t, fx.service.EnsureSuperAdmin(context.Background()))
	})

	t.Run("already present", func(t *testing.T) {
		fx := createTestUserService(t, bootstrap)
		ctx := context.Background()
		fx.userRepo.EXPECT().ExistsWithRole(ctx, entity.RoleSuperAdmin).Return(true, nil)

		require.NoError(t, fx.service.EnsureSuperAdmin(ctx))
	})

	t.Run("creates superadmin", func(t *testing.T) {
		fx := createTestUserService(t, bootstrap)
		ctx := context.Background()
		txUserRepo := mockRepo.NewMockUserRepository(t)

		fx.userRepo.EXPECT().ExistsWithRole(ctx, entity.RoleSuperAdmin).Return(false, nil)
		fx.hasher.EXPECT().Hash(bootstrap.Password).Return("hashed", nil)
		expectTx(t, fx, txUserRepo)
		txUserRepo.EXPECT().FindByEmail(ctx, bootstrap.Email).Return(nil, repository.ErrUserNotFound)
		txUserRepo.EXPECT().FindByPhone(ctx, bootstrap.Phone).Return(nil, repository.ErrUserNotFound)
		txUserRepo.EXPECT().
			Create(ctx, mock.MatchedBy(func(u *entity.User) bool { return u.Role == entity.RoleSuperAdmin })).
			Return(nil)

		require.NoError(t, fx.service.EnsureSuperAdmin(ctx))
	})
}
