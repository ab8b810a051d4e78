package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"
	"gymgate/internal/infra/persistence/memory"
	"gymgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	svc              *attendanceService
	attendanceRepo   repository.AttendanceRepository
	memberRepo       repository.MemberRepository
	notificationRepo repository.NotificationRepository
	userRepo         repository.DirectoryUserRepository
	now              time.Time
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore(logger, "")

	attendanceRepo := memory.NewAttendanceRepository(store)
	memberRepo := memory.NewMemberRepository(store)
	notificationRepo := memory.NewNotificationRepository(store)
	userRepo := memory.NewDirectoryUserRepository(store)

	notifier := NewNotificationService(notificationRepo, userRepo, nil, logger)
	svc := NewAttendanceService(attendanceRepo, memberRepo, notifier, nil, logger).(*attendanceService)

	f := &engineFixture{
		svc:              svc,
		attendanceRepo:   attendanceRepo,
		memberRepo:       memberRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		now:              time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local),
	}
	svc.clock = func() time.Time { return f.now }

	return f
}

func (f *engineFixture) seedMember(t *testing.T, status entity.MemberStatus, expiry time.Time) *entity.Member {
	t.Helper()

	member := &entity.Member{
		Name:       "Taro",
		BranchID:   uuid.New(),
		PlanName:   "monthly",
		Status:     status,
		ExpiryDate: expiry,
	}
	require.NoError(t, f.memberRepo.Create(context.Background(), member))

	return member
}

func (f *engineFixture) checkIn(t *testing.T, member *entity.Member) *usecase.CheckInResult {
	t.Helper()

	result, err := f.svc.CheckIn(context.Background(), usecase.CheckInInput{
		MemberID: member.ID,
		BranchID: member.BranchID,
		Method:   "qr",
	})
	require.NoError(t, err)

	return result
}

func TestAttendanceService_CheckIn_OpensSession(t *testing.T) {
	f := newEngineFixture(t)
	member := f.seedMember(t, entity.MemberStatusActive, f.now.AddDate(0, 1, 0))

	result := f.checkIn(t, member)

	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	require.NotNil(t, result.Record)
	assert.Equal(t, entity.AttendanceStatusSuccess, result.Record.Status)
	assert.True(t, result.Record.IsOpen())
	assert.Equal(t, entity.DateOf(f.now), result.Record.Date)
	assert.Equal(t, member.Name, result.Record.MemberName)

	// Last visit follows the check-in time.
	updated, err := f.memberRepo.FindByID(context.Background(), member.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LastVisit)
	assert.True(t, updated.LastVisit.Equal(f.now))

	// The member got a check-in notification.
	notifications, err := f.notificationRepo.FindAll(context.Background(),
		&repository.NotificationFilter{UserID: &member.ID}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, notifications.Total)
	assert.Equal(t, "check_in", notifications.Data[0].Type)
	assert.Equal(t, entity.PriorityLow, notifications.Data[0].Priority)
}

func TestAttendanceService_CheckIn_TogglesToCheckOut(t *testing.T) {
	f := newEngineFixture(t)
	member := f.seedMember(t, entity.MemberStatusActive, f.now.AddDate(0, 1, 0))

	first := f.checkIn(t, member)
	require.True(t, first.Success)

	f.now = f.now.Add(2 * time.Hour)
	second := f.checkIn(t, member)

	assert.True(t, second.Success)
	assert.Equal(t, "checked out", second.Message)
	assert.Equal(t, first.Record.ID, second.Record.ID)
	require.NotNil(t, second.Record.CheckOutTime)
	assert.True(t, second.Record.CheckOutTime.Equal(f.now))

	// Only one record exists; the toggle never creates a second one.
	all, err := f.attendanceRepo.FindAll(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, all.Total)

	// Check-out sends no notification.
	notifications, err := f.notificationRepo.FindAll(context.Background(),
		&repository.NotificationFilter{UserID: &member.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, notifications.Total)
}

func TestAttendanceService_CheckIn_ReopensAfterCheckOut(t *testing.T) {
	f := newEngineFixture(t)
	member := f.seedMember(t, entity.MemberStatusActive, f.now.AddDate(0, 1, 0))

	f.checkIn(t, member)
	f.now = f.now.Add(time.Hour)
	f.checkIn(t, member)
	f.now = f.now.Add(time.Hour)

	third := f.checkIn(t, member)
	assert.True(t, third.Success)
	assert.Equal(t, "checked in", third.Message)
	assert.True(t, third.Record.IsOpen())

	all, err := f.attendanceRepo.FindAll(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestAttendanceService_CheckIn_ExpiredMemberDenied(t *testing.T) {
	f := newEngineFixture(t)
	member := f.seedMember(t, entity.MemberStatusActive, f.now.AddDate(0, 0, -1))

	// Seed a branch admin to receive the alert.
	admin := &entity.DirectoryUser{
		Name:     "Front Desk",
		Email:    "desk@example.com",
		Role:     entity.RoleBranchAdmin,
		BranchID: &member.BranchID,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), admin))

	result := f.checkIn(t, member)

	assert.False(t, result.Success)
	assert.Equal(t, "Member subscription has expired", result.Error)
	require.NotNil(t, result.Record)
	assert.Equal(t, entity.AttendanceStatusFailed, result.Record.Status)
	assert.Nil(t, result.Record.CheckOutTime)

	// The admin was alerted with the member context.
	alerts, err := f.notificationRepo.FindAll(context.Background(),
		&repository.NotificationFilter{UserID: &admin.ID}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, alerts.Total)
	alert := alerts.Data[0]
	assert.Equal(t, "entry_denied", alert.Type)
	assert.Equal(t, entity.PriorityHigh, alert.Priority)
	assert.Equal(t, true, alert.Payload["expired"])
	assert.Equal(t, member.ID.String(), alert.Payload["member_id"])

	// No last visit for a denied attempt.
	unchanged, err := f.memberRepo.FindByID(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Nil(t, unchanged.LastVisit)
}

func TestAttendanceService_CheckIn_InactiveMemberDenied(t *testing.T) {
	f := newEngineFixture(t)

	for _, status := range []entity.MemberStatus{
		entity.MemberStatusFrozen,
		entity.MemberStatusCancelled,
	} {
		member := f.seedMember(t, status, f.now.AddDate(0, 1, 0))
		result := f.checkIn(t, member)

		assert.False(t, result.Success, "status %s", status)
		assert.Equal(t, "Membership is not active", result.Error, "status %s", status)
	}
}

func TestAttendanceService_CheckIn_ExpiredStatusDenied(t *testing.T) {
	f := newEngineFixture(t)

	// The expired status carries its own denial reason, with or without a
	// lapsed expiry date.
	for name, expiry := range map[string]time.Time{
		"lapsed expiry": f.now.AddDate(0, 0, -30),
		"future expiry": f.now.AddDate(0, 1, 0),
	} {
		member := f.seedMember(t, entity.MemberStatusExpired, expiry)
		result := f.checkIn(t, member)

		assert.False(t, result.Success, name)
		assert.Equal(t, "Member subscription has expired", result.Error, name)
	}
}

func TestAttendanceService_CheckIn_BranchMismatch(t *testing.T) {
	f := newEngineFixture(t)
	member := f.seedMember(t, entity.MemberStatusActive, f.now.AddDate(0, 1, 0))

	result, err := f.svc.CheckIn(context.Background(), usecase.CheckInInput{
		MemberID: member.ID,
		BranchID: uuid.New(),
		Method:   "qr",
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "Member does not belong to this branch", result.Error)
	assert.Nil(t, result.Record)

	// A mismatch is rejected before any record is written.
	all, err := f.attendanceRepo.FindAll(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, all.Total)
}

func TestAttendanceService_CheckIn_UnknownMember(t *testing.T) {
	f := newEngineFixture(t)

	result, err := f.svc.CheckIn(context.Background(), usecase.CheckInInput{
		MemberID: uuid.New(),
		BranchID: uuid.New(),
		Method:   "manual",
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "Member not found", result.Error)
	assert.Nil(t, result.Record)
}

func TestAttendanceService_CheckIn_StaleOpenSessionIsAbandoned(t *testing.T) {
	f := newEngineFixture(t)
	member := f.seedMember(t, entity.MemberStatusActive, f.now.AddDate(0, 1, 0))

	first := f.checkIn(t, member)
	require.True(t, first.Record.IsOpen())

	// Next morning: yesterday's open session is not closed, a fresh one opens.
	f.now = f.now.AddDate(0, 0, 1)
	second := f.checkIn(t, member)

	assert.True(t, second.Success)
	assert.Equal(t, "checked in", second.Message)
	assert.NotEqual(t, first.Record.ID, second.Record.ID)

	stale, err := f.attendanceRepo.FindByID(context.Background(), first.Record.ID)
	require.NoError(t, err)
	assert.True(t, stale.IsOpen())
}

func TestAttendanceService_CheckIn_ExpiryReevaluatedEachAttempt(t *testing.T) {
	f := newEngineFixture(t)
	member := f.seedMember(t, entity.MemberStatusActive, f.now.Add(12*time.Hour))

	first := f.checkIn(t, member)
	require.True(t, first.Success)
	f.now = f.now.Add(time.Hour)
	f.checkIn(t, member) // check out

	// Two days later the subscription has lapsed.
	f.now = f.now.AddDate(0, 0, 2)
	denied := f.checkIn(t, member)

	assert.False(t, denied.Success)
	assert.Equal(t, "Member subscription has expired", denied.Error)
}

func TestAttendanceService_CheckIn_ZeroExpiryNeverExpires(t *testing.T) {
	f := newEngineFixture(t)
	member := f.seedMember(t, entity.MemberStatusActive, time.Time{})

	result := f.checkIn(t, member)
	assert.True(t, result.Success)
}

func TestAttendanceService_GetLiveCount(t *testing.T) {
	f := newEngineFixture(t)
	branchID := uuid.New()

	for i := 0; i < 3; i++ {
		member := f.seedMember(t, entity.MemberStatusActive, f.now.AddDate(0, 1, 0))
		_, err := f.memberRepo.Update(context.Background(), member.ID,
			repository.MemberUpdate{BranchID: &branchID})
		require.NoError(t, err)
		member.BranchID = branchID
		f.checkIn(t, member)
	}

	count, err := f.svc.GetLiveCount(context.Background(), branchID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestAttendanceService_GetRecentCheckIns(t *testing.T) {
	f := newEngineFixture(t)
	branchID := uuid.New()

	for i := 0; i < 4; i++ {
		member := f.seedMember(t, entity.MemberStatusActive, f.now.AddDate(0, 1, 0))
		_, err := f.memberRepo.Update(context.Background(), member.ID,
			repository.MemberUpdate{BranchID: &branchID})
		require.NoError(t, err)
		member.BranchID = branchID
		f.now = f.now.Add(time.Minute)
		f.checkIn(t, member)
	}

	recent, err := f.svc.GetRecentCheckIns(context.Background(), branchID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].CheckInTime.After(recent[1].CheckInTime))
}
