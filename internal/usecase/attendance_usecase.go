// Package usecase defines the application-facing interfaces implemented in impl.
package usecase

import (
	"context"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// CheckInInput carries a check-in request from the door device or front desk.
type CheckInInput struct {
	MemberID uuid.UUID
	BranchID uuid.UUID
	Method   string
	DeviceID *string
}

// CheckInResult is the outcome of a check-in attempt. A denied attempt is a
// normal business answer: Success is false, Error carries the reason, and
// the returned Go error stays nil.
type CheckInResult struct {
	Success bool                     `json:"success"`
	Record  *entity.AttendanceRecord `json:"record,omitempty"`
	Message string                   `json:"message,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

// AttendanceUsecase defines the interface for attendance management use cases
type AttendanceUsecase interface {
	// CheckIn toggles a member's attendance for the current calendar day:
	// no open session opens one, an open session closes it.
	CheckIn(ctx context.Context, input CheckInInput) (*CheckInResult, error)

	// GetAttendance lists attendance records with filtering and pagination.
	GetAttendance(ctx context.Context, filter *repository.AttendanceFilter, page *repository.Page) (repository.PagedResult[*entity.AttendanceRecord], error)

	// GetLiveCount reports how many members are currently inside a branch.
	GetLiveCount(ctx context.Context, branchID uuid.UUID) (int64, error)

	// GetRecentCheckIns returns the latest successful check-ins for a branch.
	GetRecentCheckIns(ctx context.Context, branchID uuid.UUID, limit int) ([]*entity.AttendanceRecord, error)
}
