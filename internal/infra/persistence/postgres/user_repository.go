package postgres

import (
	"context"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"
	"gymgate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.DirectoryUserRepository interface.
type userRepository struct {
	client *Client
}

// NewDirectoryUserRepository is the constructor for userRepository.
func NewDirectoryUserRepository(client *Client) repository.DirectoryUserRepository {
	return &userRepository{
		client: client,
	}
}

func (repo *userRepository) FindAll(ctx context.Context, filter *repository.DirectoryUserFilter, page *repository.Page) (repository.PagedResult[*entity.DirectoryUser], error) {
	var zero repository.PagedResult[*entity.DirectoryUser]

	db, err := repo.client.DB(ctx)
	if err != nil {
		return zero, err
	}

	query := db.Model(&model.DirectoryUser{})
	if filter != nil {
		if filter.BranchID != nil {
			query = query.Where("branch_id = ?", *filter.BranchID)
		}
		if filter.Role != nil {
			query = query.Where("role = ?", filter.Role.String())
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return zero, errors.Wrap(err, "failed to count directory users")
	}

	query = query.Order("name ASC, id ASC")
	query = applyPage(query, page)

	var userModels []*model.DirectoryUser
	if err := query.Find(&userModels).Error; err != nil {
		return zero, errors.Wrap(err, "failed to find directory users")
	}

	users := make([]*entity.DirectoryUser, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toDirectoryUserDomain(userM))
	}

	return repository.NewPagedResult(users, int(total), page), nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DirectoryUser, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	var userM model.DirectoryUser
	if err := db.Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDirectoryUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find directory user by ID")
	}

	return toDirectoryUserDomain(&userM), nil
}

func (repo *userRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, role entity.Role) ([]*entity.DirectoryUser, error) {
	result, err := repo.FindAll(ctx, &repository.DirectoryUserFilter{BranchID: &branchID, Role: &role}, nil)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.DirectoryUser) error {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := db.Create(fromDirectoryUserDomain(user)).Error; err != nil {
		return errors.Wrap(err, "failed to create directory user")
	}

	return nil
}

func (repo *userRepository) Update(ctx context.Context, id uuid.UUID, update repository.DirectoryUserUpdate) (*entity.DirectoryUser, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Role != nil {
		updates["role"] = update.Role.String()
	}
	if update.BranchID != nil {
		updates["branch_id"] = *update.BranchID
	}

	result := db.Model(&model.DirectoryUser{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update directory user")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrDirectoryUserNotFound
	}

	return repo.FindByID(ctx, id)
}

func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return false, err
	}

	result := db.Where("id = ?", id).Delete(&model.DirectoryUser{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete directory user")
	}

	return result.RowsAffected > 0, nil
}

// --- Mapper Functions ---

// toDirectoryUserDomain converts a GORM DirectoryUser model to a domain entity.
func toDirectoryUserDomain(data *model.DirectoryUser) *entity.DirectoryUser {
	if data == nil {
		return nil
	}

	return &entity.DirectoryUser{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Role:      entity.Role(data.Role),
		BranchID:  data.BranchID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromDirectoryUserDomain converts a domain entity to a GORM DirectoryUser model.
func fromDirectoryUserDomain(data *entity.DirectoryUser) *model.DirectoryUser {
	if data == nil {
		return nil
	}

	return &model.DirectoryUser{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Role:      data.Role.String(),
		BranchID:  data.BranchID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
