package repository

import (
	"context"
	"time"

	"gymgate/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationFilter narrows notification queries. Nil fields match everything.
type NotificationFilter struct {
	UserID   *uuid.UUID
	BranchID *uuid.UUID
	Status   *entity.NotificationStatus
	Type     *string
}

// NotificationUpdate is a partial update used by the mark-read operation.
type NotificationUpdate struct {
	Status *entity.NotificationStatus
	ReadAt *time.Time
}

// NotificationRepository is the notification gateway. Notifications are
// sorted newest first on every execution path.
type NotificationRepository interface {
	// FindAll returns the filtered, sorted notifications, paginated when page is non-nil.
	FindAll(ctx context.Context, filter *NotificationFilter, page *Page) (PagedResult[*entity.Notification], error)

	// FindByID retrieves a notification by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// Create persists a new notification, generating the id and creation timestamp.
	Create(ctx context.Context, notification *entity.Notification) error

	// Update applies a partial update and returns the updated notification.
	Update(ctx context.Context, id uuid.UUID, update NotificationUpdate) (*entity.Notification, error)

	// Delete removes a notification, reporting whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
