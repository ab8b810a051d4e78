package handler

import (
	"log/slog"
	"net/http"

	"gymgate/internal/delivery/http/response"
	"gymgate/internal/domain/entity"
	domainerrors "gymgate/internal/domain/errors"
	"gymgate/internal/domain/repository"
	"gymgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for notification-related handlers
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListNotifications returns the authenticated user's notifications.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	filter := &repository.NotificationFilter{}
	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := entity.NotificationStatus(statusStr)
		filter.Status = &status
	}
	if typeStr := c.QueryParam("type"); typeStr != "" {
		filter.Type = &typeStr
	}

	result, err := h.uc.ListForUser(c.Request().Context(), userID, filter, parsePage(c))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Notifications retrieved successfully")
}

// MarkRead marks one of the user's notifications as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "id must be a valid UUID")
	}

	notification, err := h.uc.MarkRead(c.Request().Context(), userID, id)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, notification, "Notification marked as read")
}

// getUserID extracts the authenticated user id from the context.
func (h *NotificationHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}

// handleAppError handles application errors
func (h *NotificationHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
