package repository

import (
	"context"

	"gymgate/internal/domain/entity"

	"github.com/google/uuid"
)

// DirectoryUserFilter narrows directory queries. Nil fields match everything.
type DirectoryUserFilter struct {
	BranchID *uuid.UUID
	Role     *entity.Role
}

// DirectoryUserUpdate is a partial update; nil fields are left untouched.
type DirectoryUserUpdate struct {
	Name     *string
	Email    *string
	Role     *entity.Role
	BranchID *uuid.UUID
}

// DirectoryUserRepository is the directory gateway. Users are sorted by
// name ascending on every execution path. The attendance core only reads
// from it; the CRUD surface exists for the uniform gateway contract.
type DirectoryUserRepository interface {
	// FindAll returns the filtered, sorted users, paginated when page is non-nil.
	FindAll(ctx context.Context, filter *DirectoryUserFilter, page *Page) (PagedResult[*entity.DirectoryUser], error)

	// FindByID retrieves a user by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DirectoryUser, error)

	// FindByBranch returns the users with the given role at a branch; the
	// dispatcher uses it to resolve the branch-admin audience.
	FindByBranch(ctx context.Context, branchID uuid.UUID, role entity.Role) ([]*entity.DirectoryUser, error)

	// Create persists a new user, generating the id and timestamps.
	Create(ctx context.Context, user *entity.DirectoryUser) error

	// Update applies a partial update and returns the updated user.
	Update(ctx context.Context, id uuid.UUID, update DirectoryUserUpdate) (*entity.DirectoryUser, error)

	// Delete removes a user, reporting whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
