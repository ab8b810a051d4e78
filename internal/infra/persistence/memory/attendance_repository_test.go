package memory

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)), "")
}

func newRecord(memberID, branchID uuid.UUID, checkIn time.Time, status entity.AttendanceStatus) *entity.AttendanceRecord {
	return &entity.AttendanceRecord{
		MemberID:    memberID,
		BranchID:    branchID,
		Date:        entity.DateOf(checkIn),
		CheckInTime: checkIn,
		Method:      "manual",
		Status:      status,
	}
}

func TestAttendanceRepository_FindAll_SortsMostRecentFirst(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore())
	ctx := context.Background()
	branchID := uuid.New()
	base := time.Date(2026, 3, 14, 8, 0, 0, 0, time.Local)

	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		require.NoError(t, repo.Create(ctx, newRecord(uuid.New(), branchID, base.Add(offset), entity.AttendanceStatusSuccess)))
	}

	result, err := repo.FindAll(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Data, 3)

	for i := 1; i < len(result.Data); i++ {
		assert.False(t, result.Data[i].CheckInTime.After(result.Data[i-1].CheckInTime))
	}
}

func TestAttendanceRepository_FindAll_Filters(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore())
	ctx := context.Background()
	branchA, branchB := uuid.New(), uuid.New()
	memberID := uuid.New()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newRecord(memberID, branchA, now, entity.AttendanceStatusSuccess)))
	require.NoError(t, repo.Create(ctx, newRecord(uuid.New(), branchA, now, entity.AttendanceStatusFailed)))
	require.NoError(t, repo.Create(ctx, newRecord(uuid.New(), branchB, now, entity.AttendanceStatusSuccess)))

	byBranch, err := repo.FindAll(ctx, &repository.AttendanceFilter{BranchID: &branchA}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, byBranch.Total)

	failed := entity.AttendanceStatusFailed
	byStatus, err := repo.FindAll(ctx, &repository.AttendanceFilter{BranchID: &branchA, Status: &failed}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, byStatus.Total)

	byMember, err := repo.FindAll(ctx, &repository.AttendanceFilter{MemberID: &memberID}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, byMember.Total)
}

func TestAttendanceRepository_FindOpenSession(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore())
	ctx := context.Background()
	memberID := uuid.New()
	branchID := uuid.New()
	now := time.Now()

	// Closed record, failed record, open record from yesterday, open record today.
	closed := newRecord(memberID, branchID, now.Add(-3*time.Hour), entity.AttendanceStatusSuccess)
	checkout := now.Add(-2 * time.Hour)
	closed.CheckOutTime = &checkout
	require.NoError(t, repo.Create(ctx, closed))
	require.NoError(t, repo.Create(ctx, newRecord(memberID, branchID, now, entity.AttendanceStatusFailed)))

	yesterday := newRecord(memberID, branchID, now.AddDate(0, 0, -1), entity.AttendanceStatusSuccess)
	require.NoError(t, repo.Create(ctx, yesterday))

	open := newRecord(memberID, branchID, now, entity.AttendanceStatusSuccess)
	require.NoError(t, repo.Create(ctx, open))

	found, err := repo.FindOpenSession(ctx, memberID, entity.DateOf(now))
	require.NoError(t, err)
	assert.Equal(t, open.ID, found.ID)

	// A prior day's open session is never matched for today.
	_, err = repo.FindOpenSession(ctx, memberID, entity.DateOf(now.AddDate(0, 0, 1)))
	assert.ErrorIs(t, err, repository.ErrAttendanceNotFound)
}

func TestAttendanceRepository_CountOpen(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore())
	ctx := context.Background()
	branchID := uuid.New()
	now := time.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newRecord(uuid.New(), branchID, now, entity.AttendanceStatusSuccess)))
	}
	closed := newRecord(uuid.New(), branchID, now, entity.AttendanceStatusSuccess)
	checkout := now
	closed.CheckOutTime = &checkout
	require.NoError(t, repo.Create(ctx, closed))
	require.NoError(t, repo.Create(ctx, newRecord(uuid.New(), uuid.New(), now, entity.AttendanceStatusSuccess)))

	count, err := repo.CountOpen(ctx, branchID, entity.DateOf(now))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestAttendanceRepository_Update_SetsCheckOutOnly(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore())
	ctx := context.Background()
	now := time.Now()

	rec := newRecord(uuid.New(), uuid.New(), now, entity.AttendanceStatusSuccess)
	require.NoError(t, repo.Create(ctx, rec))

	checkout := now.Add(time.Hour)
	updated, err := repo.Update(ctx, rec.ID, repository.AttendanceUpdate{CheckOutTime: &checkout})
	require.NoError(t, err)
	require.NotNil(t, updated.CheckOutTime)
	assert.True(t, updated.CheckOutTime.Equal(checkout))
	assert.Equal(t, rec.ID, updated.ID)
	assert.True(t, updated.CheckInTime.Equal(rec.CheckInTime))
}

func TestAttendanceRepository_FindRecent_LimitsAndExcludesFailed(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore())
	ctx := context.Background()
	branchID := uuid.New()
	base := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newRecord(uuid.New(), branchID, base.Add(time.Duration(i)*time.Minute), entity.AttendanceStatusSuccess)))
	}
	require.NoError(t, repo.Create(ctx, newRecord(uuid.New(), branchID, base.Add(time.Hour), entity.AttendanceStatusFailed)))

	recent, err := repo.FindRecent(ctx, branchID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.True(t, recent[0].CheckInTime.Equal(base.Add(4*time.Minute)))
	for _, r := range recent {
		assert.Equal(t, entity.AttendanceStatusSuccess, r.Status)
	}
}

func TestAttendanceRepository_Pagination(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore())
	ctx := context.Background()
	branchID := uuid.New()
	base := time.Now()

	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Create(ctx, newRecord(uuid.New(), branchID, base.Add(time.Duration(i)*time.Minute), entity.AttendanceStatusSuccess)))
	}

	page1, err := repo.FindAll(ctx, nil, &repository.Page{Page: 1, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, page1.Data, 3)
	assert.Equal(t, 7, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)

	page3, err := repo.FindAll(ctx, nil, &repository.Page{Page: 3, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, page3.Data, 1)

	beyond, err := repo.FindAll(ctx, nil, &repository.Page{Page: 4, PageSize: 3})
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
}
