package model

import (
	"time"

	"github.com/google/uuid"
)

// DirectoryUser is the gorm model for the directory_users table.
type DirectoryUser struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name      string     `gorm:"column:name;type:varchar(255);not null"`
	Email     string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Role      string     `gorm:"column:role;type:varchar(20);not null;index"`
	BranchID  *uuid.UUID `gorm:"column:branch_id;type:uuid;index"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for the DirectoryUser model.
func (DirectoryUser) TableName() string {
	return "directory_users"
}
