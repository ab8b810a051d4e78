package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"gymgate/internal/domain/entity"
	domainerrors "gymgate/internal/domain/errors"
	"gymgate/internal/domain/repository"
	"gymgate/internal/infra/persistence/memory"
	"gymgate/internal/infra/qrcode"
	"gymgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemberFixture(t *testing.T) usecase.MemberUsecase {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore(logger, "")

	return NewMemberService(memory.NewMemberRepository(store), qrcode.NewQRCodeService(256, "M"))
}

func TestMemberService_CreateAndGet(t *testing.T) {
	svc := newMemberFixture(t)
	ctx := context.Background()

	member, err := svc.CreateMember(ctx, usecase.CreateMemberInput{
		Name:       "Hana",
		Email:      "hana@example.com",
		BranchID:   uuid.New(),
		PlanName:   "annual",
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, member.ID)
	// Status defaults to active when omitted.
	assert.Equal(t, entity.MemberStatusActive, member.Status)

	fetched, err := svc.GetMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hana", fetched.Name)
}

func TestMemberService_GetMember_NotFound(t *testing.T) {
	svc := newMemberFixture(t)

	_, err := svc.GetMember(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrMemberNotFound)
}

func TestMemberService_UpdateMember(t *testing.T) {
	svc := newMemberFixture(t)
	ctx := context.Background()

	member, err := svc.CreateMember(ctx, usecase.CreateMemberInput{
		Name:     "Hana",
		BranchID: uuid.New(),
	})
	require.NoError(t, err)

	frozen := entity.MemberStatusFrozen
	updated, err := svc.UpdateMember(ctx, member.ID, repository.MemberUpdate{Status: &frozen})
	require.NoError(t, err)
	assert.Equal(t, entity.MemberStatusFrozen, updated.Status)
	assert.Equal(t, "Hana", updated.Name)
}

func TestMemberService_DeleteMember(t *testing.T) {
	svc := newMemberFixture(t)
	ctx := context.Background()

	member, err := svc.CreateMember(ctx, usecase.CreateMemberInput{Name: "X", BranchID: uuid.New()})
	require.NoError(t, err)

	deleted, err := svc.DeleteMember(ctx, member.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteMember(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemberService_GenerateBadge(t *testing.T) {
	svc := newMemberFixture(t)
	ctx := context.Background()

	member, err := svc.CreateMember(ctx, usecase.CreateMemberInput{Name: "Badge", BranchID: uuid.New()})
	require.NoError(t, err)

	png, err := svc.GenerateBadge(ctx, member.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = svc.GenerateBadge(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrMemberNotFound)
}
