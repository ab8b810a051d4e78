// Package impl contains the use case implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymgate/internal/domain/entity"
	domainerrors "gymgate/internal/domain/errors"
	"gymgate/internal/domain/repository"
	"gymgate/internal/domain/service"
	"gymgate/internal/observability"
	"gymgate/internal/usecase"

	"github.com/google/uuid"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.DirectoryUserRepository
	pushSender       service.PushSender
	logger           *slog.Logger
}

// NewNotificationService creates a new notification dispatcher instance
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.DirectoryUserRepository,
	pushSender service.PushSender,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		pushSender:       pushSender,
		logger:           logger,
	}
}

// Notify stores a notification and pushes it to the user's devices. Failures
// on either channel are logged and swallowed so the triggering operation is
// never disturbed.
func (s *notificationService) Notify(ctx context.Context, input usecase.NotifyInput) *entity.Notification {
	notification := &entity.Notification{
		UserID:   input.UserID,
		Type:     input.Type,
		Title:    input.Title,
		Body:     input.Body,
		Priority: input.Priority,
		Status:   entity.NotificationUnread,
		Payload:  input.Payload,
		BranchID: input.BranchID,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("Failed to store notification",
			slog.String("user_id", input.UserID.String()),
			slog.String("type", input.Type),
			slog.String("error", err.Error()),
		)
		observability.NotificationsDispatchedTotal.WithLabelValues("store_failed").Inc()

		return nil
	}

	if s.pushSender != nil {
		data := map[string]string{
			"notification_id": notification.ID.String(),
			"type":            notification.Type,
		}
		if err := s.pushSender.SendToUser(ctx, input.UserID, input.Title, input.Body, data); err != nil {
			s.logger.Warn("Failed to push notification",
				slog.String("notification_id", notification.ID.String()),
				slog.String("error", err.Error()),
			)
			observability.NotificationsDispatchedTotal.WithLabelValues("push_failed").Inc()

			return notification
		}
	}

	observability.NotificationsDispatchedTotal.WithLabelValues("delivered").Inc()

	return notification
}

// NotifyBranchAdmins fans the notification out to every branch admin. A
// failed directory lookup means nobody gets notified; that too is logged
// and swallowed.
func (s *notificationService) NotifyBranchAdmins(ctx context.Context, branchID uuid.UUID, input usecase.NotifyInput) []*entity.Notification {
	admins, err := s.userRepo.FindByBranch(ctx, branchID, entity.RoleBranchAdmin)
	if err != nil {
		s.logger.Error("Failed to resolve branch admins for notification",
			slog.String("branch_id", branchID.String()),
			slog.String("error", err.Error()),
		)

		return nil
	}

	notifications := make([]*entity.Notification, 0, len(admins))
	for _, admin := range admins {
		adminInput := input
		adminInput.UserID = admin.ID
		adminInput.BranchID = &branchID
		if n := s.Notify(ctx, adminInput); n != nil {
			notifications = append(notifications, n)
		}
	}

	return notifications
}

func (s *notificationService) ListForUser(ctx context.Context, userID uuid.UUID, filter *repository.NotificationFilter, page *repository.Page) (repository.PagedResult[*entity.Notification], error) {
	if filter == nil {
		filter = &repository.NotificationFilter{}
	}
	filter.UserID = &userID

	return s.notificationRepo.FindAll(ctx, filter, page)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*entity.Notification, error) {
	existing, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domainerrors.ErrNotificationNotFound
		}

		return nil, fmt.Errorf("failed to load notification: %w", err)
	}
	if existing.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	now := time.Now()
	read := entity.NotificationRead

	notification, err := s.notificationRepo.Update(ctx, id, repository.NotificationUpdate{
		Status: &read,
		ReadAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return notification, nil
}
