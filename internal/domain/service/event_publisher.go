package service

import (
	"context"
	"time"
)

// CheckInEvent is emitted after a successful check-in or check-out for
// downstream reporting consumers.
type CheckInEvent struct {
	RecordID   string    `json:"record_id"`
	MemberID   string    `json:"member_id"`
	BranchID   string    `json:"branch_id"`
	Action     string    `json:"action"` // "checked_in" or "checked_out"
	Method     string    `json:"method"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishCheckInEvent publishes a check-in event for async processing
	PublishCheckInEvent(ctx context.Context, event *CheckInEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
