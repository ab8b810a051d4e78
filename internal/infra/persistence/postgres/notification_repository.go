package postgres

import (
	"context"
	"encoding/json"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"
	"gymgate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	client *Client
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(client *Client) repository.NotificationRepository {
	return &notificationRepository{
		client: client,
	}
}

func (repo *notificationRepository) FindAll(ctx context.Context, filter *repository.NotificationFilter, page *repository.Page) (repository.PagedResult[*entity.Notification], error) {
	var zero repository.PagedResult[*entity.Notification]

	db, err := repo.client.DB(ctx)
	if err != nil {
		return zero, err
	}

	query := db.Model(&model.Notification{})
	if filter != nil {
		if filter.UserID != nil {
			query = query.Where("user_id = ?", *filter.UserID)
		}
		if filter.BranchID != nil {
			query = query.Where("branch_id = ?", *filter.BranchID)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", string(*filter.Status))
		}
		if filter.Type != nil {
			query = query.Where("type = ?", *filter.Type)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return zero, errors.Wrap(err, "failed to count notifications")
	}

	query = query.Order("created_at DESC, id ASC")
	query = applyPage(query, page)

	var notificationModels []*model.Notification
	if err := query.Find(&notificationModels).Error; err != nil {
		return zero, errors.Wrap(err, "failed to find notifications")
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for _, notificationM := range notificationModels {
		notifications = append(notifications, toNotificationDomain(notificationM))
	}

	return repository.NewPagedResult(notifications, int(total), page), nil
}

func (repo *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	var notificationM model.Notification
	if err := db.Where("id = ?", id).First(&notificationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find notification by ID")
	}

	return toNotificationDomain(&notificationM), nil
}

func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return err
	}

	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.CreatedAt = time.Now()
	if notification.Status == "" {
		notification.Status = entity.NotificationUnread
	}

	notificationM, err := fromNotificationDomain(notification)
	if err != nil {
		return err
	}

	if err := db.Create(notificationM).Error; err != nil {
		return errors.Wrap(err, "failed to create notification")
	}

	return nil
}

func (repo *notificationRepository) Update(ctx context.Context, id uuid.UUID, update repository.NotificationUpdate) (*entity.Notification, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if update.ReadAt != nil {
		updates["read_at"] = *update.ReadAt
	}
	if len(updates) == 0 {
		return repo.FindByID(ctx, id)
	}

	result := db.Model(&model.Notification{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update notification")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotificationNotFound
	}

	return repo.FindByID(ctx, id)
}

func (repo *notificationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return false, err
	}

	result := db.Where("id = ?", id).Delete(&model.Notification{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete notification")
	}

	return result.RowsAffected > 0, nil
}

// --- Mapper Functions ---

// toNotificationDomain converts a GORM Notification model to a domain entity.
func toNotificationDomain(data *model.Notification) *entity.Notification {
	if data == nil {
		return nil
	}

	var payload map[string]any
	if len(data.Payload) > 0 {
		// A payload that fails to decode is dropped rather than failing the read.
		_ = json.Unmarshal(data.Payload, &payload)
	}

	return &entity.Notification{
		ID:        data.ID,
		UserID:    data.UserID,
		Type:      data.Type,
		Title:     data.Title,
		Body:      data.Body,
		Priority:  entity.NotificationPriority(data.Priority),
		Status:    entity.NotificationStatus(data.Status),
		ReadAt:    data.ReadAt,
		Payload:   payload,
		BranchID:  data.BranchID,
		CreatedAt: data.CreatedAt,
	}
}

// fromNotificationDomain converts a domain entity to a GORM Notification model.
func fromNotificationDomain(data *entity.Notification) (*model.Notification, error) {
	if data == nil {
		return nil, nil
	}

	var payload datatypes.JSON
	if data.Payload != nil {
		raw, err := json.Marshal(data.Payload)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal notification payload")
		}
		payload = datatypes.JSON(raw)
	}

	return &model.Notification{
		ID:        data.ID,
		UserID:    data.UserID,
		Type:      data.Type,
		Title:     data.Title,
		Body:      data.Body,
		Priority:  string(data.Priority),
		Status:    string(data.Status),
		ReadAt:    data.ReadAt,
		Payload:   payload,
		BranchID:  data.BranchID,
		CreatedAt: data.CreatedAt,
	}, nil
}
