package entity

import (
	"time"

	"github.com/google/uuid"
)

// MemberStatus is the cached subscription flag on a member record. It can
// lag behind reality; admission decisions re-derive expiry from ExpiryDate.
type MemberStatus string

const (
	// MemberStatusActive indicates a member with a current subscription.
	MemberStatusActive MemberStatus = "active"
	// MemberStatusExpired indicates a lapsed subscription.
	MemberStatusExpired MemberStatus = "expired"
	// MemberStatusCancelled indicates a cancelled subscription.
	MemberStatusCancelled MemberStatus = "cancelled"
	// MemberStatusFrozen indicates a temporarily suspended subscription.
	MemberStatusFrozen MemberStatus = "frozen"
)

// String returns the string representation of the MemberStatus.
func (s MemberStatus) String() string {
	return string(s)
}

// IsValid checks if the MemberStatus is a valid value.
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusActive, MemberStatusExpired, MemberStatusCancelled, MemberStatusFrozen:
		return true
	default:
		return false
	}
}

// Member represents a gym member enrolled at a branch.
type Member struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Phone      string       `json:"phone"`
	Email      string       `json:"email"`
	BranchID   uuid.UUID    `json:"branch_id"`
	PlanName   string       `json:"plan_name"`
	Status     MemberStatus `json:"status"`
	ExpiryDate time.Time    `json:"expiry_date"`
	LastVisit  *time.Time   `json:"last_visit,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// IsExpired reports whether the membership has lapsed as of now.
// A zero ExpiryDate counts as not expired: a membership without a usable
// expiry keeps its access rather than being locked out at the door.
func (m *Member) IsExpired(now time.Time) bool {
	if m.ExpiryDate.IsZero() {
		return false
	}

	return m.ExpiryDate.Before(now)
}

// IsAdmissible decides whether the member may check in: the cached status
// flag must be active and the expiry date must not have passed. Evaluated
// fresh on every attempt since expiry is time-dependent.
func (m *Member) IsAdmissible(now time.Time) bool {
	return m.Status == MemberStatusActive && !m.IsExpired(now)
}
