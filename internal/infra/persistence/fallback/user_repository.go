package fallback

import (
	"context"
	"log/slog"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// userRepository is the resilient directory gateway.
type userRepository struct {
	*resilience
	durable repository.DirectoryUserRepository
	local   repository.DirectoryUserRepository
}

// NewDirectoryUserRepository wraps the durable directory gateway with the volatile fallback.
func NewDirectoryUserRepository(logger *slog.Logger, durable, local repository.DirectoryUserRepository) repository.DirectoryUserRepository {
	return &userRepository{
		resilience: &resilience{logger: logger},
		durable:    durable,
		local:      local,
	}
}

func (repo *userRepository) FindAll(ctx context.Context, filter *repository.DirectoryUserFilter, page *repository.Page) (repository.PagedResult[*entity.DirectoryUser], error) {
	return attempt(repo.resilience, "user.FindAll",
		func() (repository.PagedResult[*entity.DirectoryUser], error) {
			return repo.durable.FindAll(ctx, filter, page)
		},
		func() (repository.PagedResult[*entity.DirectoryUser], error) {
			return repo.local.FindAll(ctx, filter, page)
		},
	)
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DirectoryUser, error) {
	return attempt(repo.resilience, "user.FindByID",
		func() (*entity.DirectoryUser, error) { return repo.durable.FindByID(ctx, id) },
		func() (*entity.DirectoryUser, error) { return repo.local.FindByID(ctx, id) },
	)
}

func (repo *userRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, role entity.Role) ([]*entity.DirectoryUser, error) {
	return attempt(repo.resilience, "user.FindByBranch",
		func() ([]*entity.DirectoryUser, error) { return repo.durable.FindByBranch(ctx, branchID, role) },
		func() ([]*entity.DirectoryUser, error) { return repo.local.FindByBranch(ctx, branchID, role) },
	)
}

func (repo *userRepository) Create(ctx context.Context, user *entity.DirectoryUser) error {
	return attemptErr(repo.resilience, "user.Create",
		func() error { return repo.durable.Create(ctx, user) },
		func() error { return repo.local.Create(ctx, user) },
	)
}

func (repo *userRepository) Update(ctx context.Context, id uuid.UUID, update repository.DirectoryUserUpdate) (*entity.DirectoryUser, error) {
	return attempt(repo.resilience, "user.Update",
		func() (*entity.DirectoryUser, error) { return repo.durable.Update(ctx, id, update) },
		func() (*entity.DirectoryUser, error) { return repo.local.Update(ctx, id, update) },
	)
}

func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return attempt(repo.resilience, "user.Delete",
		func() (bool, error) { return repo.durable.Delete(ctx, id) },
		func() (bool, error) { return repo.local.Delete(ctx, id) },
	)
}
