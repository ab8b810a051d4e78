package fallback

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"
	"gymgate/internal/errors"
	"gymgate/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("connection refused")

// failingMemberRepository simulates an unreachable durable store.
type failingMemberRepository struct{}

func (failingMemberRepository) FindAll(context.Context, *repository.MemberFilter, *repository.Page) (repository.PagedResult[*entity.Member], error) {
	return repository.PagedResult[*entity.Member]{}, errStoreDown
}

func (failingMemberRepository) FindByID(context.Context, uuid.UUID) (*entity.Member, error) {
	return nil, errStoreDown
}

func (failingMemberRepository) Create(context.Context, *entity.Member) error {
	return errStoreDown
}

func (failingMemberRepository) Update(context.Context, uuid.UUID, repository.MemberUpdate) (*entity.Member, error) {
	return nil, errStoreDown
}

func (failingMemberRepository) Delete(context.Context, uuid.UUID) (bool, error) {
	return false, errStoreDown
}

// notFoundMemberRepository answers every lookup with the domain sentinel.
type notFoundMemberRepository struct {
	failingMemberRepository
}

func (notFoundMemberRepository) FindByID(context.Context, uuid.UUID) (*entity.Member, error) {
	return nil, repository.ErrMemberNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLocalMemberRepo() repository.MemberRepository {
	return memory.NewMemberRepository(memory.NewStore(testLogger(), ""))
}

func TestMemberRepository_FallsBackOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	local := newLocalMemberRepo()
	repo := NewMemberRepository(testLogger(), failingMemberRepository{}, local)

	member := &entity.Member{
		Name:       "Ada",
		BranchID:   uuid.New(),
		Status:     entity.MemberStatusActive,
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	}
	require.NoError(t, repo.Create(ctx, member))

	// The write landed in the volatile store and later reads see it even
	// though the durable store keeps failing.
	found, err := repo.FindByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.Name, found.Name)

	all, err := repo.FindAll(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, all.Total)
}

func TestMemberRepository_NotFoundIsNotAFailure(t *testing.T) {
	ctx := context.Background()
	local := newLocalMemberRepo()

	// Seed the local store so a fallback would wrongly find a record.
	member := &entity.Member{Name: "Shadow", BranchID: uuid.New(), Status: entity.MemberStatusActive}
	require.NoError(t, local.Create(ctx, member))

	repo := NewMemberRepository(testLogger(), notFoundMemberRepository{}, local)

	// The durable store answered authoritatively: the member does not
	// exist. The volatile copy must not be consulted.
	_, err := repo.FindByID(ctx, member.ID)
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestMemberRepository_DurableSuccessSkipsLocal(t *testing.T) {
	ctx := context.Background()
	durable := newLocalMemberRepo()
	local := newLocalMemberRepo()
	repo := NewMemberRepository(testLogger(), durable, local)

	member := &entity.Member{Name: "Primary", BranchID: uuid.New(), Status: entity.MemberStatusActive}
	require.NoError(t, repo.Create(ctx, member))

	// The write went durable; the volatile store stays empty.
	localAll, err := local.FindAll(ctx, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, localAll.Total)

	durableAll, err := durable.FindAll(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, durableAll.Total)
}

func TestAttendanceRepository_FallsBackForSessionQueries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(testLogger(), "")
	local := memory.NewAttendanceRepository(store)
	repo := NewAttendanceRepository(testLogger(), failingAttendanceRepository{}, local)

	now := time.Now()
	record := &entity.AttendanceRecord{
		MemberID:    uuid.New(),
		BranchID:    uuid.New(),
		Date:        entity.DateOf(now),
		CheckInTime: now,
		Method:      "manual",
		Status:      entity.AttendanceStatusSuccess,
	}
	require.NoError(t, repo.Create(ctx, record))

	open, err := repo.FindOpenSession(ctx, record.MemberID, record.Date)
	require.NoError(t, err)
	assert.Equal(t, record.ID, open.ID)

	count, err := repo.CountOpen(ctx, record.BranchID, record.Date)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// failingAttendanceRepository simulates an unreachable durable store.
type failingAttendanceRepository struct{}

func (failingAttendanceRepository) FindAll(context.Context, *repository.AttendanceFilter, *repository.Page) (repository.PagedResult[*entity.AttendanceRecord], error) {
	return repository.PagedResult[*entity.AttendanceRecord]{}, errStoreDown
}

func (failingAttendanceRepository) FindByID(context.Context, uuid.UUID) (*entity.AttendanceRecord, error) {
	return nil, errStoreDown
}

func (failingAttendanceRepository) Create(context.Context, *entity.AttendanceRecord) error {
	return errStoreDown
}

func (failingAttendanceRepository) Update(context.Context, uuid.UUID, repository.AttendanceUpdate) (*entity.AttendanceRecord, error) {
	return nil, errStoreDown
}

func (failingAttendanceRepository) Delete(context.Context, uuid.UUID) (bool, error) {
	return false, errStoreDown
}

func (failingAttendanceRepository) FindOpenSession(context.Context, uuid.UUID, string) (*entity.AttendanceRecord, error) {
	return nil, errStoreDown
}

func (failingAttendanceRepository) CountOpen(context.Context, uuid.UUID, string) (int64, error) {
	return 0, errStoreDown
}

func (failingAttendanceRepository) FindRecent(context.Context, uuid.UUID, int) ([]*entity.AttendanceRecord, error) {
	return nil, errStoreDown
}
