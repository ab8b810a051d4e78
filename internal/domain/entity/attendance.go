package entity

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus distinguishes granted visits from denied entry attempts.
type AttendanceStatus string

const (
	// AttendanceStatusSuccess marks a granted check-in.
	AttendanceStatusSuccess AttendanceStatus = "success"
	// AttendanceStatusFailed marks a denied entry attempt. Failed records
	// never receive a check-out time.
	AttendanceStatusFailed AttendanceStatus = "failed"
)

// String returns the string representation of the AttendanceStatus.
func (s AttendanceStatus) String() string {
	return string(s)
}

// DateLayout is the calendar-date format used for the attendance Date column.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t in the system's local timezone.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// AttendanceRecord is one visit (or denied attempt) at a branch. Once the
// check-in fields are written only CheckOutTime is ever mutated.
type AttendanceRecord struct {
	ID           uuid.UUID        `json:"id"`
	MemberID     uuid.UUID        `json:"member_id"`
	MemberName   string           `json:"member_name"`
	BranchID     uuid.UUID        `json:"branch_id"`
	Date         string           `json:"date"`
	CheckInTime  time.Time        `json:"check_in_time"`
	CheckOutTime *time.Time       `json:"check_out_time,omitempty"`
	Method       string           `json:"method"`
	Status       AttendanceStatus `json:"status"`
	DeviceID     *string          `json:"device_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// IsOpen reports whether the record is an open session: checked in, not yet
// checked out. Failed records are never open.
func (r *AttendanceRecord) IsOpen() bool {
	return r.Status == AttendanceStatusSuccess && r.CheckOutTime == nil
}
