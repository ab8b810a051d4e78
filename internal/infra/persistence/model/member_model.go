// Package model defines the gorm schema for the durable store. Identifiers
// are generated by the application, never by the database, so that records
// created on the volatile path keep their identity if replayed durably.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Member is the gorm model for the members table.
type Member struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name       string     `gorm:"column:name;type:varchar(255);not null;index"`
	Phone      string     `gorm:"column:phone;type:varchar(32)"`
	Email      string     `gorm:"column:email;type:varchar(255)"`
	BranchID   uuid.UUID  `gorm:"column:branch_id;type:uuid;not null;index"`
	PlanName   string     `gorm:"column:plan_name;type:varchar(100)"`
	Status     string     `gorm:"column:status;type:varchar(20);not null"`
	ExpiryDate time.Time  `gorm:"column:expiry_date"`
	LastVisit  *time.Time `gorm:"column:last_visit"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for the Member model.
func (Member) TableName() string {
	return "members"
}
