package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is the gorm model for the notifications table. Payload is a
// free-form JSONB document carrying type-specific context.
type Notification struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Type      string         `gorm:"column:type;type:varchar(50);not null"`
	Title     string         `gorm:"column:title;type:varchar(255);not null"`
	Body      string         `gorm:"column:body;type:text"`
	Priority  string         `gorm:"column:priority;type:varchar(20);not null"`
	Status    string         `gorm:"column:status;type:varchar(20);not null;index"`
	ReadAt    *time.Time     `gorm:"column:read_at"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb"`
	BranchID  *uuid.UUID     `gorm:"column:branch_id;type:uuid;index"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;index"`
}

// TableName specifies the table name for the Notification model.
func (Notification) TableName() string {
	return "notifications"
}
