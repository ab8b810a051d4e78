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

// attendanceRepository implements the repository.AttendanceRepository interface.
type attendanceRepository struct {
	client *Client
}

// NewAttendanceRepository is the constructor for attendanceRepository.
func NewAttendanceRepository(client *Client) repository.AttendanceRepository {
	return &attendanceRepository{
		client: client,
	}
}

func (repo *attendanceRepository) FindAll(ctx context.Context, filter *repository.AttendanceFilter, page *repository.Page) (repository.PagedResult[*entity.AttendanceRecord], error) {
	var zero repository.PagedResult[*entity.AttendanceRecord]

	db, err := repo.client.DB(ctx)
	if err != nil {
		return zero, err
	}

	query := db.Model(&model.AttendanceRecord{})
	if filter != nil {
		if filter.BranchID != nil {
			query = query.Where("branch_id = ?", *filter.BranchID)
		}
		if filter.MemberID != nil {
			query = query.Where("member_id = ?", *filter.MemberID)
		}
		if filter.Date != nil {
			query = query.Where("date = ?", *filter.Date)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", string(*filter.Status))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return zero, errors.Wrap(err, "failed to count attendance records")
	}

	query = query.Order("check_in_time DESC, id ASC")
	query = applyPage(query, page)

	var recordModels []*model.AttendanceRecord
	if err := query.Find(&recordModels).Error; err != nil {
		return zero, errors.Wrap(err, "failed to find attendance records")
	}

	records := make([]*entity.AttendanceRecord, 0, len(recordModels))
	for _, recordM := range recordModels {
		records = append(records, toAttendanceDomain(recordM))
	}

	return repository.NewPagedResult(records, int(total), page), nil
}

func (repo *attendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AttendanceRecord, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	var recordM model.AttendanceRecord
	if err := db.Where("id = ?", id).First(&recordM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAttendanceNotFound
		}

		return nil, errors.Wrap(err, "failed to find attendance record by ID")
	}

	return toAttendanceDomain(&recordM), nil
}

func (repo *attendanceRepository) Create(ctx context.Context, record *entity.AttendanceRecord) error {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return err
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()

	if err := db.Create(fromAttendanceDomain(record)).Error; err != nil {
		return errors.Wrap(err, "failed to create attendance record")
	}

	return nil
}

func (repo *attendanceRepository) Update(ctx context.Context, id uuid.UUID, update repository.AttendanceUpdate) (*entity.AttendanceRecord, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.CheckOutTime != nil {
		updates["check_out_time"] = *update.CheckOutTime
	}
	if len(updates) == 0 {
		return repo.FindByID(ctx, id)
	}

	result := db.Model(&model.AttendanceRecord{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update attendance record")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrAttendanceNotFound
	}

	return repo.FindByID(ctx, id)
}

func (repo *attendanceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return false, err
	}

	result := db.Where("id = ?", id).Delete(&model.AttendanceRecord{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete attendance record")
	}

	return result.RowsAffected > 0, nil
}

func (repo *attendanceRepository) FindOpenSession(ctx context.Context, memberID uuid.UUID, date string) (*entity.AttendanceRecord, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	var recordM model.AttendanceRecord
	if err := db.
		Where("member_id = ? AND date = ? AND status = ? AND check_out_time IS NULL",
			memberID, date, string(entity.AttendanceStatusSuccess)).
		First(&recordM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAttendanceNotFound
		}

		return nil, errors.Wrap(err, "failed to find open attendance session")
	}

	return toAttendanceDomain(&recordM), nil
}

func (repo *attendanceRepository) CountOpen(ctx context.Context, branchID uuid.UUID, date string) (int64, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.AttendanceRecord{}).
		Where("branch_id = ? AND date = ? AND status = ? AND check_out_time IS NULL",
			branchID, date, string(entity.AttendanceStatusSuccess)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count open attendance sessions")
	}

	return count, nil
}

func (repo *attendanceRepository) FindRecent(ctx context.Context, branchID uuid.UUID, limit int) ([]*entity.AttendanceRecord, error) {
	db, err := repo.client.DB(ctx)
	if err != nil {
		return nil, err
	}

	query := db.
		Where("branch_id = ? AND status = ?", branchID, string(entity.AttendanceStatusSuccess)).
		Order("check_in_time DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recordModels []*model.AttendanceRecord
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find recent attendance records")
	}

	records := make([]*entity.AttendanceRecord, 0, len(recordModels))
	for _, recordM := range recordModels {
		records = append(records, toAttendanceDomain(recordM))
	}

	return records, nil
}

// --- Mapper Functions ---

// toAttendanceDomain converts a GORM AttendanceRecord model to a domain entity.
func toAttendanceDomain(data *model.AttendanceRecord) *entity.AttendanceRecord {
	if data == nil {
		return nil
	}

	return &entity.AttendanceRecord{
		ID:           data.ID,
		MemberID:     data.MemberID,
		MemberName:   data.MemberName,
		BranchID:     data.BranchID,
		Date:         data.Date,
		CheckInTime:  data.CheckInTime,
		CheckOutTime: data.CheckOutTime,
		Method:       data.Method,
		Status:       entity.AttendanceStatus(data.Status),
		DeviceID:     data.DeviceID,
		CreatedAt:    data.CreatedAt,
	}
}

// fromAttendanceDomain converts a domain entity to a GORM AttendanceRecord model.
func fromAttendanceDomain(data *entity.AttendanceRecord) *model.AttendanceRecord {
	if data == nil {
		return nil
	}

	return &model.AttendanceRecord{
		ID:           data.ID,
		MemberID:     data.MemberID,
		MemberName:   data.MemberName,
		BranchID:     data.BranchID,
		Date:         data.Date,
		CheckInTime:  data.CheckInTime,
		CheckOutTime: data.CheckOutTime,
		Method:       data.Method,
		Status:       string(data.Status),
		DeviceID:     data.DeviceID,
		CreatedAt:    data.CreatedAt,
	}
}
