package usecase

import (
	"context"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateMemberInput carries the fields required to register a member.
type CreateMemberInput struct {
	Name       string
	Phone      string
	Email      string
	BranchID   uuid.UUID
	PlanName   string
	Status     entity.MemberStatus
	ExpiryDate time.Time
}

// MemberUsecase defines the interface for member management use cases
type MemberUsecase interface {
	// ListMembers lists members with filtering and pagination.
	ListMembers(ctx context.Context, filter *repository.MemberFilter, page *repository.Page) (repository.PagedResult[*entity.Member], error)

	// GetMember fetches a single member.
	GetMember(ctx context.Context, id uuid.UUID) (*entity.Member, error)

	// CreateMember registers a new member.
	CreateMember(ctx context.Context, input CreateMemberInput) (*entity.Member, error)

	// UpdateMember applies a partial update.
	UpdateMember(ctx context.Context, id uuid.UUID, update repository.MemberUpdate) (*entity.Member, error)

	// DeleteMember removes a member. Returns whether a record was deleted.
	DeleteMember(ctx context.Context, id uuid.UUID) (bool, error)

	// GenerateBadge renders the member's check-in badge as a PNG.
	GenerateBadge(ctx context.Context, id uuid.UUID) ([]byte, error)
}
