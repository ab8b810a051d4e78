package fallback

import (
	"context"
	"log/slog"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// memberRepository is the resilient member gateway.
type memberRepository struct {
	*resilience
	durable repository.MemberRepository
	local   repository.MemberRepository
}

// NewMemberRepository wraps the durable member gateway with the volatile fallback.
func NewMemberRepository(logger *slog.Logger, durable, local repository.MemberRepository) repository.MemberRepository {
	return &memberRepository{
		resilience: &resilience{logger: logger},
		durable:    durable,
		local:      local,
	}
}

func (repo *memberRepository) FindAll(ctx context.Context, filter *repository.MemberFilter, page *repository.Page) (repository.PagedResult[*entity.Member], error) {
	return attempt(repo.resilience, "member.FindAll",
		func() (repository.PagedResult[*entity.Member], error) { return repo.durable.FindAll(ctx, filter, page) },
		func() (repository.PagedResult[*entity.Member], error) { return repo.local.FindAll(ctx, filter, page) },
	)
}

func (repo *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	return attempt(repo.resilience, "member.FindByID",
		func() (*entity.Member, error) { return repo.durable.FindByID(ctx, id) },
		func() (*entity.Member, error) { return repo.local.FindByID(ctx, id) },
	)
}

func (repo *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	return attemptErr(repo.resilience, "member.Create",
		func() error { return repo.durable.Create(ctx, member) },
		func() error { return repo.local.Create(ctx, member) },
	)
}

func (repo *memberRepository) Update(ctx context.Context, id uuid.UUID, update repository.MemberUpdate) (*entity.Member, error) {
	return attempt(repo.resilience, "member.Update",
		func() (*entity.Member, error) { return repo.durable.Update(ctx, id, update) },
		func() (*entity.Member, error) { return repo.local.Update(ctx, id, update) },
	)
}

func (repo *memberRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return attempt(repo.resilience, "member.Delete",
		func() (bool, error) { return repo.durable.Delete(ctx, id) },
		func() (bool, error) { return repo.local.Delete(ctx, id) },
	)
}
