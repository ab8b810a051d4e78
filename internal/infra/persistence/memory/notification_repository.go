package memory

import (
	"context"
	"sort"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// notificationRepository implements repository.NotificationRepository on the
// record store.
type notificationRepository struct {
	store *Store
}

// NewNotificationRepository is the constructor for the volatile notification gateway.
func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{store: store}
}

func (repo *notificationRepository) FindAll(_ context.Context, filter *repository.NotificationFilter, page *repository.Page) (repository.PagedResult[*entity.Notification], error) {
	repo.store.mu.RLock()
	matched := make([]*entity.Notification, 0, len(repo.store.notifications))
	for _, n := range repo.store.notifications {
		if matchNotification(n, filter) {
			matched = append(matched, cloneNotification(n))
		}
	}
	repo.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}

		return matched[i].ID.String() < matched[j].ID.String()
	})

	return repository.Paginate(matched, page), nil
}

func (repo *notificationRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	n, ok := repo.store.notifications[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}

	return cloneNotification(n), nil
}

func (repo *notificationRepository) Create(_ context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.CreatedAt = time.Now()
	if notification.Status == "" {
		notification.Status = entity.NotificationUnread
	}

	repo.store.mu.Lock()
	repo.store.notifications[notification.ID] = cloneNotification(notification)
	repo.store.mu.Unlock()

	return nil
}

func (repo *notificationRepository) Update(_ context.Context, id uuid.UUID, update repository.NotificationUpdate) (*entity.Notification, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	n, ok := repo.store.notifications[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}

	if update.Status != nil {
		n.Status = *update.Status
	}
	if update.ReadAt != nil {
		ra := *update.ReadAt
		n.ReadAt = &ra
	}

	return cloneNotification(n), nil
}

func (repo *notificationRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.notifications[id]; !ok {
		return false, nil
	}
	delete(repo.store.notifications, id)

	return true, nil
}

func matchNotification(n *entity.Notification, filter *repository.NotificationFilter) bool {
	if filter == nil {
		return true
	}
	if filter.UserID != nil && n.UserID != *filter.UserID {
		return false
	}
	if filter.BranchID != nil && (n.BranchID == nil || *n.BranchID != *filter.BranchID) {
		return false
	}
	if filter.Status != nil && n.Status != *filter.Status {
		return false
	}
	if filter.Type != nil && n.Type != *filter.Type {
		return false
	}

	return true
}
