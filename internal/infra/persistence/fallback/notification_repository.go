package fallback

import (
	"context"
	"log/slog"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// notificationRepository is the resilient notification gateway.
type notificationRepository struct {
	*resilience
	durable repository.NotificationRepository
	local   repository.NotificationRepository
}

// NewNotificationRepository wraps the durable notification gateway with the volatile fallback.
func NewNotificationRepository(logger *slog.Logger, durable, local repository.NotificationRepository) repository.NotificationRepository {
	return &notificationRepository{
		resilience: &resilience{logger: logger},
		durable:    durable,
		local:      local,
	}
}

func (repo *notificationRepository) FindAll(ctx context.Context, filter *repository.NotificationFilter, page *repository.Page) (repository.PagedResult[*entity.Notification], error) {
	return attempt(repo.resilience, "notification.FindAll",
		func() (repository.PagedResult[*entity.Notification], error) {
			return repo.durable.FindAll(ctx, filter, page)
		},
		func() (repository.PagedResult[*entity.Notification], error) {
			return repo.local.FindAll(ctx, filter, page)
		},
	)
}

func (repo *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	return attempt(repo.resilience, "notification.FindByID",
		func() (*entity.Notification, error) { return repo.durable.FindByID(ctx, id) },
		func() (*entity.Notification, error) { return repo.local.FindByID(ctx, id) },
	)
}

func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return attemptErr(repo.resilience, "notification.Create",
		func() error { return repo.durable.Create(ctx, notification) },
		func() error { return repo.local.Create(ctx, notification) },
	)
}

func (repo *notificationRepository) Update(ctx context.Context, id uuid.UUID, update repository.NotificationUpdate) (*entity.Notification, error) {
	return attempt(repo.resilience, "notification.Update",
		func() (*entity.Notification, error) { return repo.durable.Update(ctx, id, update) },
		func() (*entity.Notification, error) { return repo.local.Update(ctx, id, update) },
	)
}

func (repo *notificationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return attempt(repo.resilience, "notification.Delete",
		func() (bool, error) { return repo.durable.Delete(ctx, id) },
		func() (bool, error) { return repo.local.Delete(ctx, id) },
	)
}
