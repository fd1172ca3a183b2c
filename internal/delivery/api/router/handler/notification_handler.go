package handler

import (
	"log/slog"
	"net/http"

	"vigil/internal/delivery/api/response"
	"vigil/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
	Logger         *slog.Logger
}

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
	logger         *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: params.NotificationUC,
		logger:         params.Logger,
	}
}

// PublishNotificationRequest is sent by the inference service.
type PublishNotificationRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"required"`
	CrimeID     *uuid.UUID `json:"crimeId"`
}

type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}

// Publish handles POST /api/notifications
func (h *NotificationHandler) Publish(c echo.Context) error {
	var req PublishNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	notification, err := h.notificationUC.Publish(c.Request().Context(), &usecase.PublishNotificationInput{
		Title:       req.Title,
		Description: req.Description,
		CrimeID:     req.CrimeID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, notification, "Notification published")
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationUC.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, notifications, "")
}

// MarkRead handles PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	notificationID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.notificationUC.MarkRead(c.Request().Context(), userID, notificationID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}

// MarkAllRead handles PATCH /api/notifications/mark-all-read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	output, err := h.notificationUC.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, MarkAllReadResponse{Updated: output.Updated}, "All notifications marked as read")
}

// Delete handles DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c echo.Context) error {
	notificationID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.notificationUC.Delete(c.Request().Context(), notificationID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification deleted")
}
