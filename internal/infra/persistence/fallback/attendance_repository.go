package fallback

import (
	"context"
	"log/slog"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// attendanceRepository is the resilient attendance gateway.
type attendanceRepository struct {
	*resilience
	durable repository.AttendanceRepository
	local   repository.AttendanceRepository
}

// NewAttendanceRepository wraps the durable attendance gateway with the volatile fallback.
func NewAttendanceRepository(logger *slog.Logger, durable, local repository.AttendanceRepository) repository.AttendanceRepository {
	return &attendanceRepository{
		resilience: &resilience{logger: logger},
		durable:    durable,
		local:      local,
	}
}

func (repo *attendanceRepository) FindAll(ctx context.Context, filter *repository.AttendanceFilter, page *repository.Page) (repository.PagedResult[*entity.AttendanceRecord], error) {
	return attempt(repo.resilience, "attendance.FindAll",
		func() (repository.PagedResult[*entity.AttendanceRecord], error) {
			return repo.durable.FindAll(ctx, filter, page)
		},
		func() (repository.PagedResult[*entity.AttendanceRecord], error) {
			return repo.local.FindAll(ctx, filter, page)
		},
	)
}

func (repo *attendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AttendanceRecord, error) {
	return attempt(repo.resilience, "attendance.FindByID",
		func() (*entity.AttendanceRecord, error) { return repo.durable.FindByID(ctx, id) },
		func() (*entity.AttendanceRecord, error) { return repo.local.FindByID(ctx, id) },
	)
}

func (repo *attendanceRepository) Create(ctx context.Context, record *entity.AttendanceRecord) error {
	return attemptErr(repo.resilience, "attendance.Create",
		func() error { return repo.durable.Create(ctx, record) },
		func() error { return repo.local.Create(ctx, record) },
	)
}

func (repo *attendanceRepository) Update(ctx context.Context, id uuid.UUID, update repository.AttendanceUpdate) (*entity.AttendanceRecord, error) {
	return attempt(repo.resilience, "attendance.Update",
		func() (*entity.AttendanceRecord, error) { return repo.durable.Update(ctx, id, update) },
		func() (*entity.AttendanceRecord, error) { return repo.local.Update(ctx, id, update) },
	)
}

func (repo *attendanceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return attempt(repo.resilience, "attendance.Delete",
		func() (bool, error) { return repo.durable.Delete(ctx, id) },
		func() (bool, error) { return repo.local.Delete(ctx, id) },
	)
}

func (repo *attendanceRepository) FindOpenSession(ctx context.Context, memberID uuid.UUID, date string) (*entity.AttendanceRecord, error) {
	return attempt(repo.resilience, "attendance.FindOpenSession",
		func() (*entity.AttendanceRecord, error) { return repo.durable.FindOpenSession(ctx, memberID, date) },
		func() (*entity.AttendanceRecord, error) { return repo.local.FindOpenSession(ctx, memberID, date) },
	)
}

func (repo *attendanceRepository) CountOpen(ctx context.Context, branchID uuid.UUID, date string) (int64, error) {
	return attempt(repo.resilience, "attendance.CountOpen",
		func() (int64, error) { return repo.durable.CountOpen(ctx, branchID, date) },
		func() (int64, error) { return repo.local.CountOpen(ctx, branchID, date) },
	)
}

func (repo *attendanceRepository) FindRecent(ctx context.Context, branchID uuid.UUID, limit int) ([]*entity.AttendanceRecord, error) {
	return attempt(repo.resilience, "attendance.FindRecent",
		func() ([]*entity.AttendanceRecord, error) { return repo.durable.FindRecent(ctx, branchID, limit) },
		func() ([]*entity.AttendanceRecord, error) { return repo.local.FindRecent(ctx, branchID, limit) },
	)
}
