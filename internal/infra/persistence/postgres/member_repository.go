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

// memberRepository implements the repository.MemberRepository interface.
type memberRepository struct {
	client *Client
}

// NewMemberRepository is the constructor for memberRepository.
func NewMemberRepository(client *Client) repository.MemberRepository {
	return &memberRepository{
		client: client,
	}
}

func (repo *memberRepository) FindAll(ctx context.Context, filter *repository.MemberFilter, page *repository.Page) (repository.PagedResult[*entity.Member], error) {
	var zero repository.PagedResult[*entity.Member]

	db, err := repo.client.DB(ctx)
	if err != nil {
		return zero, err
	}

	query := db.Model(&model.Member{})
	if filter != nil {
		if filter.BranchID != nil {
			query = query.Where("branch_id = ?", *filter.BranchID)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", string(*filter.Status))
		}
		if filter.Search != "" {
			needle := "%" + filter.Search + "%"
			query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", needle, needle, needle)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return zero, errors.Wrap(err, "failed to count members")
	}

	query = query.Order("name ASC, id ASC")
	query = applyPage(query, page)

	var memberModels []*model.Member
	if err := query.Find(&memberModels).Error; err != nil {
		return zero, errors.Wrap(err, "failed to find members")
	}

	members := make([]*entity.Member, 0, len(memberModels))
	for _, memberM := range memberModels {
		members = append(members, toMemberDomain(memberM))
	}

	return repository.NewPagedResult(members, int(total), page), nil
}

func (repo *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	var memberM model.Member
	if err := db.Where("id = ?", id).First(&memberM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find member by ID")
	}

	return toMemberDomain(&memberM), nil
}

func (repo *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	member.CreatedAt = now
	member.UpdatedAt = now

	if err := db.Create(fromMemberDomain(member)).Error; err != nil {
		return errors.Wrap(err, "failed to create member")
	}

	return nil
}

func (repo *memberRepository) Update(ctx context.Context, id uuid.UUID, update repository.MemberUpdate) (*entity.Member, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.BranchID != nil {
		updates["branch_id"] = *update.BranchID
	}
	if update.PlanName != nil {
		updates["plan_name"] = *update.PlanName
	}
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if update.ExpiryDate != nil {
		updates["expiry_date"] = *update.ExpiryDate
	}
	if update.LastVisit != nil {
		updates["last_visit"] = *update.LastVisit
	}

	result := db.Model(&model.Member{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update member")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrMemberNotFound
	}

	return repo.FindByID(ctx, id)
}

func (repo *memberRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return false, err
	}

	result := db.Where("id = ?", id).Delete(&model.Member{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete member")
	}

	return result.RowsAffected > 0, nil
}

// applyPage translates the normalised page into OFFSET/LIMIT. A nil page
// returns everything, matching the volatile path.
func applyPage(query *gorm.DB, page *repository.Page) *gorm.DB {
	if page == nil {
		return query
	}
	p := *page
	p.Normalize()

	return query.Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
}

// --- Mapper Functions ---

// toMemberDomain converts a GORM Member model to a domain Member entity.
func toMemberDomain(data *model.Member) *entity.Member {
	if data == nil {
		return nil
	}

	return &entity.Member{
		ID:         data.ID,
		Name:       data.Name,
		Phone:      data.Phone,
		Email:      data.Email,
		BranchID:   data.BranchID,
		PlanName:   data.PlanName,
		Status:     entity.MemberStatus(data.Status),
		ExpiryDate: data.ExpiryDate,
		LastVisit:  data.LastVisit,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromMemberDomain converts a domain Member entity to a GORM Member model.
func fromMemberDomain(data *entity.Member) *model.Member {
	if data == nil {
		return nil
	}

	return &model.Member{
		ID:         data.ID,
		Name:       data.Name,
		Phone:      data.Phone,
		Email:      data.Email,
		BranchID:   data.BranchID,
		PlanName:   data.PlanName,
		Status:     string(data.Status),
		ExpiryDate: data.ExpiryDate,
		LastVisit:  data.LastVisit,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
