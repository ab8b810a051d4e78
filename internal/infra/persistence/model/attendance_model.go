package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is the gorm model for the attendance_records table. Date
// is the member-local calendar day of the check-in so that the open-session
// lookup can match on a plain equality index.
type AttendanceRecord struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	MemberID     uuid.UUID  `gorm:"column:member_id;type:uuid;not null;index:idx_attendance_member_date"`
	MemberName   string     `gorm:"column:member_name;type:varchar(255)"`
	BranchID     uuid.UUID  `gorm:"column:branch_id;type:uuid;not null;index"`
	Date         string     `gorm:"column:date;type:varchar(10);not null;index:idx_attendance_member_date"`
	CheckInTime  time.Time  `gorm:"column:check_in_time;not null;index"`
	CheckOutTime *time.Time `gorm:"column:check_out_time"`
	Method       string     `gorm:"column:method;type:varchar(20);not null"`
	Status       string     `gorm:"column:status;type:varchar(20);not null"`
	DeviceID     *string    `gorm:"column:device_id;type:varchar(100)"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null"`
}

// TableName specifies the table name for the AttendanceRecord model.
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
