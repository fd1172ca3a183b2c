package middleware

import (
	"strings"

	"vigil/internal/delivery/api/response"
	"vigil/internal/domain/constants"
	"vigil/internal/domain/entity"
	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	contextKeyUserID = "userID"
	contextKeyEmail  = "email"
	contextKeyUser   = "user"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AccessUC usecase.AccessUsecase
}

// AuthMiddleware runs the session gate and the machine-key gate.
type AuthMiddleware struct {
	accessUC usecase.AccessUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{accessUC: params.AccessUC}
}

// Authenticate verifies the session token from the authToken cookie or the
// Authorization header and attaches the user ID to the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.accessUC.Authenticate(c.Request().Context(), sessionToken(c))
		if err != nil {
			return response.HandleAppError(c, err)
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyEmail, claims.Email)

		return next(c)
	}
}

// RequireRole re-reads the authenticated user and rejects missing, inactive,
// blocked or out-of-role accounts. With no roles any active user passes.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := GetUserID(c)
			if !ok {
				return response.HandleAppError(c, domainerrors.ErrUnauthorized)
			}

			user, err := m.accessUC.Authorize(c.Request().Context(), userID, roles...)
			if err != nil {
				return response.HandleAppError(c, err)
			}

			c.Set(contextKeyUser, user)

			return next(c)
		}
	}
}

// RequireModelKey admits requests carrying the inference service's shared secret.
func (m *AuthMiddleware) RequireModelKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := m.accessUC.VerifyMachineKey(c.Request().Header.Get(constants.ModelAPIKeyHeader)); err != nil {
			return response.HandleAppError(c, err)
		}

		return next(c)
	}
}

// sessionToken prefers the cookie and falls back to a Bearer header.
func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

// GetUserID returns the authenticated user ID set by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok
}

// GetUser returns the user loaded by RequireRole.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextKeyUser).(*entity.User)

	return user, ok && user != nil
}
