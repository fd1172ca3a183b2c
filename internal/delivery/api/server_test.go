package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vigil/config"
	apimiddleware "vigil/internal/delivery/api/middleware"
	"vigil/internal/delivery/api/router"
	"vigil/internal/delivery/api/router/handler"
	deliverycontext "vigil/internal/delivery/context"
	"vigil/internal/domain/constants"
	"vigil/internal/domain/entity"
	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/infra/realtime"
	mockUC "vigil/internal/mocks/usecase"
	"vigil/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success   bool            `json:"success"`
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"requestId"`
	Error     *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

type apiFixtures struct {
	echo           *echo.Echo
	authUC         *mockUC.MockAuthUsecase
	accessUC       *mockUC.MockAccessUsecase
	userUC         *mockUC.MockUserUsecase
	notificationUC *mockUC.MockNotificationUsecase
}

func newAPIFixtures(t *testing.T) apiFixtures {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.HTTP.AllowedOrigins = []string{"http://console.local"}

	fx := apiFixtures{
		authUC:         mockUC.NewMockAuthUsecase(t),
		accessUC:       mockUC.NewMockAccessUsecase(t),
		userUC:         mockUC.NewMockUserUsecase(t),
		notificationUC: mockUC.NewMockNotificationUsecase(t),
	}

	fx.echo = NewEcho(cfg, logger, apimiddleware.NewErrorMiddleware(logger))
	router.NewRouter(router.RouterParams{
		UserHandler: handler.NewUserHandler(handler.UserHandlerParams{
			AuthUC: fx.authUC,
			UserUC: fx.userUC,
			Logger: logger,
		}),
		NotificationHandler: handler.NewNotificationHandler(handler.NotificationHandlerParams{
			NotificationUC: fx.notificationUC,
			Logger:         logger,
		}),
		RealtimeHandler: handler.NewRealtimeHandler(handler.RealtimeHandlerParams{
			Hub:    realtime.NewHub(8, logger),
			Config: cfg,
			Logger: logger,
		}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{AccessUC: fx.accessUC}),
	}).RegisterRoutes(fx.echo)

	return fx
}

func (fx apiFixtures) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return rec, body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}

	return nil
}

func newSession(user *entity.User) *entity.Session {
	issued := time.Now()

	return &entity.Session{
		Token:     "signed.jwt.token",
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(time.Hour),
	}
}

func TestHealthCheck_EchoesRequestID(t *testing.T) {
	fx := newAPIFixtures(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-123")
	rec, body := fx.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "req-123", body.RequestID)
	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestLogin_SetsSessionCookieAndReturnsToken(t *testing.T) {
	fx := newAPIFixtures(t)
	user := &entity.User{ID: uuid.New(), Email: "ops@vigil.local", Role: entity.RoleAdmin, Active: true}

	fx.authUC.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Email: "ops@vigil.local", Password: "s3cret-pass"}).
		Return(&usecase.LoginOutput{Session: newSession(user), User: user}, nil)

	rec, body := fx.do(t, jsonRequest(http.MethodPost, "/api/users/login", `{"email":"ops@vigil.local","password":"s3cret-pass"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), `"token":"signed.jwt.token"`)
	assert.NotContains(t, string(body.Data), "pending")

	cookie := findCookie(rec, constants.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "plain HTTP request")
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestLogin_CookieIsCrossSiteOverTLS(t *testing.T) {
	fx := newAPIFixtures(t)
	user := &entity.User{ID: uuid.New(), Email: "ops@vigil.local", Active: true}

	fx.authUC.EXPECT().Login(mock.Anything, mock.Anything).
		Return(&usecase.LoginOutput{Session: newSession(user), User: user}, nil)

	req := jsonRequest(http.MethodPost, "/api/users/login", `{"email":"ops@vigil.local","password":"s3cret-pass"}`)
	req.Header.Set(echo.HeaderXForwardedProto, "https")
	rec, _ := fx.do(t, req)

	cookie := findCookie(rec, constants.SessionCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestLogin_PendingSecondFactorSetsNoCookie(t *testing.T) {
	fx := newAPIFixtures(t)

	fx.authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(&usecase.LoginOutput{Pending: true}, nil)

	rec, body := fx.do(t, jsonRequest(http.MethodPost, "/api/users/login", `{"email":"ops@vigil.local","password":"s3cret-pass"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pending":true}`, string(body.Data))
	assert.Nil(t, findCookie(rec, constants.SessionCookieName))
}

func TestLogin_ValidationFailure(t *testing.T) {
	fx := newAPIFixtures(t)

	rec, body := fx.do(t, jsonRequest(http.MethodPost, "/api/users/login", `{"email":"not-an-email"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Details, "email")
	assert.Contains(t, body.Error.Details, "password")
}

func TestLogin_InvalidCredentialsHidesDetails(t *testing.T) {
	fx := newAPIFixtures(t)

	fx.authUC.EXPECT().Login(mock.Anything, mock.Anything).
		Return(nil, errors.WithStack(domainerrors.ErrInvalidCredentials.WithDetails("hash mismatch")))

	rec, body := fx.do(t, jsonRequest(http.MethodPost, "/api/users/login", `{"email":"ops@vigil.local","password":"wrong"}`))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
	assert.Empty(t, body.Error.Details)
}

func TestLogout_ExpiresCookie(t *testing.T) {
	fx := newAPIFixtures(t)

	rec, body := fx.do(t, httptest.NewRequest(http.MethodPost, "/api/users/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	cookie := findCookie(rec, constants.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestProfile_RequiresSession(t *testing.T) {
	fx := newAPIFixtures(t)

	fx.accessUC.EXPECT().Authenticate(mock.Anything, "").Return(nil, errors.WithStack(domainerrors.ErrUnauthorized))

	rec, body := fx.do(t, httptest.NewRequest(http.MethodGet, "/api/users/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestProfile_BearerHeader(t *testing.T) {
	fx := newAPIFixtures(t)
	user := &entity.User{ID: uuid.New(), Email: "ops@vigil.local", Role: entity.RoleNormal, Active: true}

	fx.accessUC.EXPECT().Authenticate(mock.Anything, "header-token").
		Return(&entity.SessionClaims{UserID: user.ID, Email: user.Email}, nil)
	fx.accessUC.EXPECT().Authorize(mock.Anything, user.ID, mock.Anything).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	rec, body := fx.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), user.ID.String())
	assert.NotContains(t, string(body.Data), "password", "hash is never serialized")
}

func TestProfile_CookieWinsOverHeader(t *testing.T) {
	fx := newAPIFixtures(t)
	user := &entity.User{ID: uuid.New(), Active: true}

	fx.accessUC.EXPECT().Authenticate(mock.Anything, "cookie-token").
		Return(&entity.SessionClaims{UserID: user.ID}, nil)
	fx.accessUC.EXPECT().Authorize(mock.Anything, user.ID, mock.Anything).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "cookie-token"})
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	rec, _ := fx.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoute_ForbiddenForOtherRoles(t *testing.T) {
	fx := newAPIFixtures(t)
	userID := uuid.New()

	fx.accessUC.EXPECT().Authenticate(mock.Anything, "tok").Return(&entity.SessionClaims{UserID: userID}, nil)
	fx.accessUC.EXPECT().Authorize(mock.Anything, userID, []entity.Role{entity.RoleSuperAdmin}).
		Return(nil, errors.WithStack(domainerrors.ErrForbidden.WithDetails("role ADMIN not allowed")))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec, body := fx.do(t, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Empty(t, body.Error.Details)
}

func TestAdminRoute_Deactivate(t *testing.T) {
	fx := newAPIFixtures(t)
	actor := &entity.User{ID: uuid.New(), Role: entity.RoleSuperAdmin, Active: true}
	targetID := uuid.New()

	fx.accessUC.EXPECT().Authenticate(mock.Anything, "tok").Return(&entity.SessionClaims{UserID: actor.ID}, nil)
	fx.accessUC.EXPECT().Authorize(mock.Anything, actor.ID, []entity.Role{entity.RoleSuperAdmin}).Return(actor, nil)
	fx.userUC.EXPECT().Deactivate(mock.Anything, actor.ID, targetID).
		Return(&entity.User{ID: targetID, Active: false, DeactivatedBy: &actor.ID}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/users/desactivate/"+targetID.String(), nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec, body := fx.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), `"deactivatedBy":"`+actor.ID.String()+`"`)
}

func TestMachineGate_PublishNotification(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		fx := newAPIFixtures(t)

		fx.accessUC.EXPECT().VerifyMachineKey("").Return(errors.WithStack(domainerrors.ErrInvalidMachineKey))

		rec, body := fx.do(t, jsonRequest(http.MethodPost, "/api/notifications", `{"title":"t","description":"d"}`))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "INVALID_MODEL_API_KEY", body.Error.Code)
	})

	t.Run("valid key", func(t *testing.T) {
		fx := newAPIFixtures(t)
		crimeID := uuid.New()

		fx.accessUC.EXPECT().VerifyMachineKey("model-secret").Return(nil)
		fx.notificationUC.EXPECT().
			Publish(mock.Anything, &usecase.PublishNotificationInput{Title: "Robbery", Description: "Camera 4", CrimeID: &crimeID}).
			Return(&entity.Notification{ID: uuid.New(), Title: "Robbery", Description: "Camera 4", CrimeID: &crimeID}, nil)

		req := jsonRequest(http.MethodPost, "/api/notifications",
			`{"title":"Robbery","description":"Camera 4","crimeId":"`+crimeID.String()+`"}`)
		req.Header.Set(constants.ModelAPIKeyHeader, "model-secret")
		rec, body := fx.do(t, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, body.Success)
	})
}

func TestNotifications_MarkAllReadAndBadID(t *testing.T) {
	fx := newAPIFixtures(t)
	user := &entity.User{ID: uuid.New(), Active: true}

	fx.accessUC.EXPECT().Authenticate(mock.Anything, "tok").Return(&entity.SessionClaims{UserID: user.ID}, nil)
	fx.accessUC.EXPECT().Authorize(mock.Anything, user.ID, mock.Anything).Return(user, nil)
	fx.notificationUC.EXPECT().MarkAllRead(mock.Anything, user.ID).Return(&usecase.MarkAllReadOutput{Updated: 3}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/notifications/mark-all-read", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec, body := fx.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":3}`, string(body.Data))

	req = httptest.NewRequest(http.MethodPatch, "/api/notifications/not-a-uuid/read", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec, body = fx.do(t, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
}

func TestUnexpectedErrorBecomesInternal(t *testing.T) {
	fx := newAPIFixtures(t)

	fx.accessUC.EXPECT().VerifyMachineKey("k").Return(nil)
	fx.userUC.EXPECT().ListUsers(mock.Anything).Return(nil, errors.New("connection reset"))

	req := httptest.NewRequest(http.MethodGet, "/api/users/model-access", nil)
	req.Header.Set(constants.ModelAPIKeyHeader, "k")
	rec, body := fx.do(t, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
