package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationPriority ranks how urgently a notification should surface.
type NotificationPriority string

const (
	// PriorityLow is routine information (e.g. a successful check-in).
	PriorityLow NotificationPriority = "low"
	// PriorityMedium is ordinary operational notices.
	PriorityMedium NotificationPriority = "medium"
	// PriorityHigh is attention-required notices (e.g. denied entry).
	PriorityHigh NotificationPriority = "high"
	// PriorityUrgent is reserved for incidents.
	PriorityUrgent NotificationPriority = "urgent"
)

// IsValid checks if the NotificationPriority is a valid value.
func (p NotificationPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// NotificationStatus tracks whether the target user has read a notification.
type NotificationStatus string

const (
	// NotificationUnread is the initial state.
	NotificationUnread NotificationStatus = "unread"
	// NotificationRead is set by the mark-read operation.
	NotificationRead NotificationStatus = "read"
)

// Notification is an in-app message created as a side effect of engine
// decisions and targeted at a single directory user.
type Notification struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"user_id"`
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Body      string               `json:"body"`
	Priority  NotificationPriority `json:"priority"`
	Status    NotificationStatus   `json:"status"`
	ReadAt    *time.Time           `json:"read_at,omitempty"`
	Payload   map[string]any       `json:"payload,omitempty"`
	BranchID  *uuid.UUID           `json:"branch_id,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}
