package impl

import (
	"context"

	"gymgate/internal/domain/entity"
	domainerrors "gymgate/internal/domain/errors"
	"gymgate/internal/domain/repository"
	"gymgate/internal/domain/service"
	"gymgate/internal/usecase"

	"github.com/google/uuid"
)

type memberService struct {
	memberRepo repository.MemberRepository
	qrcodeSvc  service.QRCodeService
}

// NewMemberService creates a new member management service instance
func NewMemberService(
	memberRepo repository.MemberRepository,
	qrcodeSvc service.QRCodeService,
) usecase.MemberUsecase {
	return &memberService{
		memberRepo: memberRepo,
		qrcodeSvc:  qrcodeSvc,
	}
}

func (s *memberService) ListMembers(ctx context.Context, filter *repository.MemberFilter, page *repository.Page) (repository.PagedResult[*entity.Member], error) {
	return s.memberRepo.FindAll(ctx, filter, page)
}

func (s *memberService) GetMember(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domainerrors.ErrMemberNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load member")
	}

	return member, nil
}

func (s *memberService) CreateMember(ctx context.Context, input usecase.CreateMemberInput) (*entity.Member, error) {
	status := input.Status
	if status == "" {
		status = entity.MemberStatusActive
	}

	member := &entity.Member{
		Name:       input.Name,
		Phone:      input.Phone,
		Email:      input.Email,
		BranchID:   input.BranchID,
		PlanName:   input.PlanName,
		Status:     status,
		ExpiryDate: input.ExpiryDate,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create member")
	}

	return member, nil
}

func (s *memberService) UpdateMember(ctx context.Context, id uuid.UUID, update repository.MemberUpdate) (*entity.Member, error) {
	member, err := s.memberRepo.Update(ctx, id, update)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domainerrors.ErrMemberNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update member")
	}

	return member, nil
}

func (s *memberService) DeleteMember(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.memberRepo.Delete(ctx, id)
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to delete member")
	}

	return deleted, nil
}

func (s *memberService) GenerateBadge(ctx context.Context, id uuid.UUID) ([]byte, error) {
	// The badge encodes only the id, but the member must exist.
	if _, err := s.GetMember(ctx, id); err != nil {
		return nil, err
	}

	return s.qrcodeSvc.GenerateBadge(id)
}
