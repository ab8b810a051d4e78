package repository

import (
	"context"
	"time"

	"gymgate/internal/domain/entity"

	"github.com/google/uuid"
)

// MemberFilter narrows member queries. Nil fields match everything.
type MemberFilter struct {
	BranchID *uuid.UUID
	Status   *entity.MemberStatus
	Search   string // case-insensitive match on name, phone or email
}

// MemberUpdate is a partial update; nil fields are left untouched. The id
// and creation timestamp are immutable through Update.
type MemberUpdate struct {
	Name       *string
	Phone      *string
	Email      *string
	BranchID   *uuid.UUID
	PlanName   *string
	Status     *entity.MemberStatus
	ExpiryDate *time.Time
	LastVisit  *time.Time
}

// MemberRepository is the member gateway: uniform CRUD plus paginated query.
// Members are sorted by name ascending on every execution path.
type MemberRepository interface {
	// FindAll returns the filtered, sorted member set, paginated when page is non-nil.
	FindAll(ctx context.Context, filter *MemberFilter, page *Page) (PagedResult[*entity.Member], error)

	// FindByID retrieves a member by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error)

	// Create persists a new member, generating the id and timestamps.
	Create(ctx context.Context, member *entity.Member) error

	// Update applies a partial update and returns the updated member.
	Update(ctx context.Context, id uuid.UUID, update MemberUpdate) (*entity.Member, error)

	// Delete removes a member, reporting whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
