package handler

import (
	"log/slog"
	"net/http"
	"time"

	"vigil/internal/delivery/api/middleware"
	"vigil/internal/delivery/api/response"
	"vigil/internal/domain/constants"
	"vigil/internal/domain/entity"
	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/errors"
	"vigil/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves sign-in, password recovery, self-service and account administration.
type UserHandler struct {
	authUC usecase.AuthUsecase
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		authUC: params.AuthUC,
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// --- Request DTOs ---

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type CodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type AdminChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type CreateUserRequest struct {
	Names    string `json:"names" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN SUPERADMIN NORMAL"`
}

type SetAccessRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

// --- Response DTOs ---

// LoginResponse is either a session or a pending second-factor challenge.
type LoginResponse struct {
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
	User      *entity.User `json:"user,omitempty"`
	Pending   bool         `json:"pending,omitempty"`
	TempToken string       `json:"tempToken,omitempty"`
}

type ResetRequestResponse struct {
	TempToken string `json:"tempToken,omitempty"`
}

// --- Sign-in ---

// Login handles POST /api/users/login
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return h.writeLogin(c, output)
}

// GoogleLogin handles POST /api/users/google-login
func (h *UserHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.GoogleLogin(c.Request().Context(), &usecase.GoogleLoginInput{IDToken: req.IDToken})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return h.writeLogin(c, output)
}

// VerifySecondFactor handles POST /api/users/two-factor
func (h *UserHandler) VerifySecondFactor(c echo.Context) error {
	var req CodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.VerifySecondFactor(c.Request().Context(), &usecase.VerifySecondFactorInput{Code: req.Code})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return h.writeLogin(c, output)
}

// Logout handles POST /api/users/logout. Sessions are stateless, so this only
// clears the cookie; the token itself stays valid until it expires.
func (h *UserHandler) Logout(c echo.Context) error {
	cookie := sessionCookie(c, "")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

func (h *UserHandler) writeLogin(c echo.Context, output *usecase.LoginOutput) error {
	if output.Pending {
		return response.Success(c, http.StatusOK, LoginResponse{
			Pending:   true,
			TempToken: output.TempToken,
		}, "Verification code sent")
	}

	cookie := sessionCookie(c, output.Session.Token)
	cookie.MaxAge = int(output.Session.ExpiresAt.Sub(output.Session.IssuedAt).Seconds())
	c.SetCookie(cookie)

	expiresAt := output.Session.ExpiresAt

	return response.Success(c, http.StatusOK, LoginResponse{
		Token:     output.Session.Token,
		ExpiresAt: &expiresAt,
		User:      output.User,
	}, "Login successful")
}

// sessionCookie builds the authToken cookie. Over TLS it is Secure and
// SameSite=None so a frontend on another origin can send it; over plain HTTP
// it falls back to Lax.
func sessionCookie(c echo.Context, value string) *http.Cookie {
	secure := c.Scheme() == "https"

	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}

	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

// --- Password recovery ---

// RequestPasswordReset handles POST /api/users/request-reset
func (h *UserHandler) RequestPasswordReset(c echo.Context) error {
	var req RequestResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.RequestPasswordReset(c.Request().Context(), &usecase.RequestPasswordResetInput{Email: req.Email})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ResetRequestResponse{TempToken: output.TempToken},
		"If the account exists, a reset code has been sent")
}

// VerifyResetCode handles POST /api/users/verify-reset
func (h *UserHandler) VerifyResetCode(c echo.Context) error {
	var req CodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authUC.VerifyResetCode(c.Request().Context(), &usecase.VerifyResetCodeInput{Code: req.Code}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Code is valid")
}

// ResetPassword handles POST /api/users/reset-password
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.authUC.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Password has been reset")
}

// --- Self-service ---

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	if user, ok := middleware.GetUser(c); ok {
		return response.Success(c, http.StatusOK, user, "")
	}

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// ChangePassword handles PUT /api/users/change-password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.userUC.ChangePassword(c.Request().Context(), userID, &usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Password updated")
}

// ToggleSecondFactor handles PATCH /api/users/toggle-2fa
func (h *UserHandler) ToggleSecondFactor(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.ToggleSecondFactor(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "Two-factor setting updated")
}

// --- Administration ---

// ListUsers handles GET /api/users and the machine route /api/users/model-access
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Names:    req.Names,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, user, "User created")
}

// SetAccess handles PUT /api/users/access/:id
func (h *UserHandler) SetAccess(c echo.Context) error {
	targetID, err := pathID(c)
	if err != nil {
		return err
	}

	var req SetAccessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.SetAccess(c.Request().Context(), targetID, *req.Blocked)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "Access updated")
}

// Deactivate handles PUT /api/users/desactivate/:id
func (h *UserHandler) Deactivate(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	targetID, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.Deactivate(c.Request().Context(), actorID, targetID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "User deactivated")
}

// AdminChangePassword handles PUT /api/users/change-user-password/:id
func (h *UserHandler) AdminChangePassword(c echo.Context) error {
	targetID, err := pathID(c)
	if err != nil {
		return err
	}

	var req AdminChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userUC.AdminChangePassword(c.Request().Context(), targetID, req.NewPassword); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Password updated")
}

// AdminToggleSecondFactor handles PATCH /api/users/user-toggle-2fa/:id
func (h *UserHandler) AdminToggleSecondFactor(c echo.Context) error {
	targetID, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.ToggleSecondFactor(c.Request().Context(), targetID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "Two-factor setting updated")
}

// --- helpers ---

// The helpers below return domain errors for the HTTP error handler to render.

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("malformed request body"))
	}

	return c.Validate(req)
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	return userID, nil
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid id"))
	}

	return id, nil
}
