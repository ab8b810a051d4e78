package usecase

import (
	"context"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// NotifyInput describes a notification to dispatch.
type NotifyInput struct {
	UserID   uuid.UUID
	Type     string
	Title    string
	Body     string
	Priority entity.NotificationPriority
	Payload  map[string]any
	BranchID *uuid.UUID
}

// NotificationUsecase defines the interface for notification dispatch and inbox access
type NotificationUsecase interface {
	// Notify stores a notification for a user and pushes it best-effort.
	// Delivery failures are logged, never surfaced to the caller.
	Notify(ctx context.Context, input NotifyInput) *entity.Notification

	// NotifyBranchAdmins fans a notification out to every admin of a branch.
	NotifyBranchAdmins(ctx context.Context, branchID uuid.UUID, input NotifyInput) []*entity.Notification

	// ListForUser returns a user's notifications, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID, filter *repository.NotificationFilter, page *repository.Page) (repository.PagedResult[*entity.Notification], error)

	// MarkRead marks a user's notification as read. A notification owned
	// by another user is rejected.
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*entity.Notification, error)
}
