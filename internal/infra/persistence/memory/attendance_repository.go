package memory

import (
	"context"
	"sort"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// attendanceRepository implements repository.AttendanceRepository on the
// record store.
type attendanceRepository struct {
	store *Store
}

// NewAttendanceRepository is the constructor for the volatile attendance gateway.
func NewAttendanceRepository(store *Store) repository.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func (repo *attendanceRepository) FindAll(_ context.Context, filter *repository.AttendanceFilter, page *repository.Page) (repository.PagedResult[*entity.AttendanceRecord], error) {
	repo.store.mu.RLock()
	matched := make([]*entity.AttendanceRecord, 0, len(repo.store.attendance))
	for _, r := range repo.store.attendance {
		if matchAttendance(r, filter) {
			matched = append(matched, cloneAttendance(r))
		}
	}
	repo.store.mu.RUnlock()

	sortAttendance(matched)

	return repository.Paginate(matched, page), nil
}

func (repo *attendanceRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.AttendanceRecord, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	r, ok := repo.store.attendance[id]
	if !ok {
		return nil, repository.ErrAttendanceNotFound
	}

	return cloneAttendance(r), nil
}

func (repo *attendanceRepository) Create(_ context.Context, record *entity.AttendanceRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()

	repo.store.mu.Lock()
	repo.store.attendance[record.ID] = cloneAttendance(record)
	repo.store.mu.Unlock()

	return nil
}

func (repo *attendanceRepository) Update(_ context.Context, id uuid.UUID, update repository.AttendanceUpdate) (*entity.AttendanceRecord, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	r, ok := repo.store.attendance[id]
	if !ok {
		return nil, repository.ErrAttendanceNotFound
	}

	if update.CheckOutTime != nil {
		co := *update.CheckOutTime
		r.CheckOutTime = &co
	}

	return cloneAttendance(r), nil
}

func (repo *attendanceRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.attendance[id]; !ok {
		return false, nil
	}
	delete(repo.store.attendance, id)

	return true, nil
}

func (repo *attendanceRepository) FindOpenSession(_ context.Context, memberID uuid.UUID, date string) (*entity.AttendanceRecord, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	for _, r := range repo.store.attendance {
		if r.MemberID == memberID && r.Date == date && r.IsOpen() {
			return cloneAttendance(r), nil
		}
	}

	return nil, repository.ErrAttendanceNotFound
}

func (repo *attendanceRepository) CountOpen(_ context.Context, branchID uuid.UUID, date string) (int64, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var count int64
	for _, r := range repo.store.attendance {
		if r.BranchID == branchID && r.Date == date && r.IsOpen() {
			count++
		}
	}

	return count, nil
}

func (repo *attendanceRepository) FindRecent(_ context.Context, branchID uuid.UUID, limit int) ([]*entity.AttendanceRecord, error) {
	repo.store.mu.RLock()
	matched := make([]*entity.AttendanceRecord, 0, limit)
	for _, r := range repo.store.attendance {
		if r.BranchID == branchID && r.Status == entity.AttendanceStatusSuccess {
			matched = append(matched, cloneAttendance(r))
		}
	}
	repo.store.mu.RUnlock()

	sortAttendance(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

// sortAttendance orders records most-recent check-in first, matching the
// durable path's ORDER BY clause.
func sortAttendance(records []*entity.AttendanceRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CheckInTime.Equal(records[j].CheckInTime) {
			return records[i].CheckInTime.After(records[j].CheckInTime)
		}

		return records[i].ID.String() < records[j].ID.String()
	})
}

func matchAttendance(r *entity.AttendanceRecord, filter *repository.AttendanceFilter) bool {
	if filter == nil {
		return true
	}
	if filter.BranchID != nil && r.BranchID != *filter.BranchID {
		return false
	}
	if filter.MemberID != nil && r.MemberID != *filter.MemberID {
		return false
	}
	if filter.Date != nil && r.Date != *filter.Date {
		return false
	}
	if filter.Status != nil && r.Status != *filter.Status {
		return false
	}

	return true
}
