package repository

import (
	"context"
	"time"

	"gymgate/internal/domain/entity"

	"github.com/google/uuid"
)

// AttendanceFilter narrows attendance queries. Nil fields match everything.
// Date is a calendar date in entity.DateLayout.
type AttendanceFilter struct {
	BranchID *uuid.UUID
	MemberID *uuid.UUID
	Date     *string
	Status   *entity.AttendanceStatus
}

// AttendanceUpdate is a partial update. CheckOutTime is the only field the
// engine ever mutates after a record is created.
type AttendanceUpdate struct {
	CheckOutTime *time.Time
}

// AttendanceRepository is the attendance gateway. Records are sorted most
// recent check-in first on every execution path.
type AttendanceRepository interface {
	// FindAll returns the filtered, sorted records, paginated when page is non-nil.
	FindAll(ctx context.Context, filter *AttendanceFilter, page *Page) (PagedResult[*entity.AttendanceRecord], error)

	// FindByID retrieves a record by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AttendanceRecord, error)

	// Create persists a new record, generating the id and creation timestamp.
	Create(ctx context.Context, record *entity.AttendanceRecord) error

	// Update applies a partial update and returns the updated record.
	Update(ctx context.Context, id uuid.UUID, update AttendanceUpdate) (*entity.AttendanceRecord, error)

	// Delete removes a record, reporting whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// FindOpenSession returns the member's open session for the given
	// calendar date, or ErrAttendanceNotFound when there is none.
	FindOpenSession(ctx context.Context, memberID uuid.UUID, date string) (*entity.AttendanceRecord, error)

	// CountOpen counts the open sessions at a branch on the given date.
	CountOpen(ctx context.Context, branchID uuid.UUID, date string) (int64, error)

	// FindRecent returns the branch's most recent successful check-ins.
	FindRecent(ctx context.Context, branchID uuid.UUID, limit int) ([]*entity.AttendanceRecord, error)
}
