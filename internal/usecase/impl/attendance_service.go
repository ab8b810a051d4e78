package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/errors"
	"gymgate/internal/domain/repository"
	"gymgate/internal/domain/service"
	"gymgate/internal/observability"
	"gymgate/internal/usecase"

	"github.com/google/uuid"
)

// Denial and status messages surfaced to the device.
const (
	msgMemberNotFound   = "Member not found"
	msgBranchMismatch   = "Member does not belong to this branch"
	msgExpired          = "Member subscription has expired"
	msgInactive         = "Membership is not active"
	msgCheckedIn        = "checked in"
	msgCheckedOut       = "checked out"
	notificationCheckIn = "check_in"
	notificationDenied  = "entry_denied"
)

type attendanceService struct {
	attendanceRepo  repository.AttendanceRepository
	memberRepo      repository.MemberRepository
	notificationSvc usecase.NotificationUsecase
	publisher       service.EventPublisher
	logger          *slog.Logger
	clock           func() time.Time

	// memberLocks serialises concurrent toggles for the same member.
	// Entries are never evicted; the map is bounded by the member
	// population, a few bytes per member.
	memberLocks sync.Map
}

// NewAttendanceService creates the check-in engine.
func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	memberRepo repository.MemberRepository,
	notificationSvc usecase.NotificationUsecase,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.AttendanceUsecase {
	return &attendanceService{
		attendanceRepo:  attendanceRepo,
		memberRepo:      memberRepo,
		notificationSvc: notificationSvc,
		publisher:       publisher,
		logger:          logger,
		clock:           time.Now,
	}
}

func (s *attendanceService) lockMember(memberID uuid.UUID) *sync.Mutex {
	mu, _ := s.memberLocks.LoadOrStore(memberID, &sync.Mutex{})

	return mu.(*sync.Mutex)
}

// CheckIn toggles the member's session for the current calendar day. The
// membership is re-evaluated against the wall clock on every attempt, so a
// subscription that expired overnight is denied at the door even if the
// member checked in fine yesterday.
func (s *attendanceService) CheckIn(ctx context.Context, input usecase.CheckInInput) (*usecase.CheckInResult, error) {
	mu := s.lockMember(input.MemberID)
	mu.Lock()
	defer mu.Unlock()

	now := s.clock()
	today := entity.DateOf(now)

	member, err := s.memberRepo.FindByID(ctx, input.MemberID)
	if err != nil {
		if repository.IsNotFound(err) {
			observability.CheckInsTotal.WithLabelValues("not_found").Inc()

			return &usecase.CheckInResult{Success: false, Error: msgMemberNotFound}, nil
		}

		return nil, errors.NewDatabaseExecuteError(err, "failed to load member")
	}

	if member.BranchID != input.BranchID {
		observability.CheckInsTotal.WithLabelValues("branch_mismatch").Inc()

		return &usecase.CheckInResult{Success: false, Error: msgBranchMismatch}, nil
	}

	if !member.IsAdmissible(now) {
		return s.denyEntry(ctx, member, input, now, today)
	}

	// Open session today means this scan is a check-out.
	open, err := s.attendanceRepo.FindOpenSession(ctx, input.MemberID, today)
	if err == nil {
		return s.checkOut(ctx, member, open, now)
	}
	if !repository.IsNotFound(err) {
		return nil, errors.NewDatabaseExecuteError(err, "failed to look up open session")
	}

	return s.checkIn(ctx, member, input, now, today)
}

func (s *attendanceService) checkIn(ctx context.Context, member *entity.Member, input usecase.CheckInInput, now time.Time, today string) (*usecase.CheckInResult, error) {
	record := &entity.AttendanceRecord{
		MemberID:    member.ID,
		MemberName:  member.Name,
		BranchID:    input.BranchID,
		Date:        today,
		CheckInTime: now,
		Method:      input.Method,
		Status:      entity.AttendanceStatusSuccess,
		DeviceID:    input.DeviceID,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, errors.NewDatabaseExecuteError(err, "failed to create attendance record")
	}

	// The record is the source of truth; everything after this point is
	// best effort.
	if _, err := s.memberRepo.Update(ctx, member.ID, repository.MemberUpdate{LastVisit: &now}); err != nil {
		s.logger.Warn("Failed to update member last visit",
			slog.String("member_id", member.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.notificationSvc.Notify(ctx, usecase.NotifyInput{
		UserID:   member.ID,
		Type:     notificationCheckIn,
		Title:    "Welcome back",
		Body:     member.Name + " checked in",
		Priority: entity.PriorityLow,
		Payload: map[string]any{
			"record_id": record.ID.String(),
			"branch_id": record.BranchID.String(),
		},
		BranchID: &record.BranchID,
	})

	s.publish(ctx, record, "checked_in", now)
	observability.CheckInsTotal.WithLabelValues("checked_in").Inc()

	return &usecase.CheckInResult{Success: true, Record: record, Message: msgCheckedIn}, nil
}

func (s *attendanceService) checkOut(ctx context.Context, member *entity.Member, open *entity.AttendanceRecord, now time.Time) (*usecase.CheckInResult, error) {
	record, err := s.attendanceRepo.Update(ctx, open.ID, repository.AttendanceUpdate{CheckOutTime: &now})
	if err != nil {
		return nil, errors.NewDatabaseExecuteError(err, "failed to close attendance session")
	}

	s.publish(ctx, record, "checked_out", now)
	observability.CheckInsTotal.WithLabelValues("checked_out").Inc()

	s.logger.Info("Member checked out",
		slog.String("member_id", member.ID.String()),
		slog.String("record_id", record.ID.String()),
	)

	return &usecase.CheckInResult{Success: true, Record: record, Message: msgCheckedOut}, nil
}

// denyEntry records the failed attempt and alerts the branch admins.
func (s *attendanceService) denyEntry(ctx context.Context, member *entity.Member, input usecase.CheckInInput, now time.Time, today string) (*usecase.CheckInResult, error) {
	record := &entity.AttendanceRecord{
		MemberID:    member.ID,
		MemberName:  member.Name,
		BranchID:    input.BranchID,
		Date:        today,
		CheckInTime: now,
		Method:      input.Method,
		Status:      entity.AttendanceStatusFailed,
		DeviceID:    input.DeviceID,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, errors.NewDatabaseExecuteError(err, "failed to record denied entry")
	}

	// A lapsed subscription reads as expired whether the status caught up
	// or not; frozen and cancelled memberships are simply inactive.
	expired := member.IsExpired(now)
	reason := msgInactive
	if member.Status == entity.MemberStatusExpired || expired {
		reason = msgExpired
	}

	s.notificationSvc.NotifyBranchAdmins(ctx, input.BranchID, usecase.NotifyInput{
		Type:     notificationDenied,
		Title:    "Entry denied",
		Body:     member.Name + ": " + reason,
		Priority: entity.PriorityHigh,
		Payload: map[string]any{
			"member_id":     member.ID.String(),
			"member_status": string(member.Status),
			"expired":       expired,
			"record_id":     record.ID.String(),
		},
	})

	observability.CheckInsTotal.WithLabelValues("denied").Inc()

	return &usecase.CheckInResult{Success: false, Record: record, Error: reason}, nil
}

func (s *attendanceService) publish(ctx context.Context, record *entity.AttendanceRecord, action string, now time.Time) {
	if s.publisher == nil {
		return
	}

	event := &service.CheckInEvent{
		RecordID:   record.ID.String(),
		MemberID:   record.MemberID.String(),
		BranchID:   record.BranchID.String(),
		Action:     action,
		Method:     record.Method,
		OccurredAt: now,
	}
	if err := s.publisher.PublishCheckInEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish check-in event",
			slog.String("record_id", record.ID.String()),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

func (s *attendanceService) GetAttendance(ctx context.Context, filter *repository.AttendanceFilter, page *repository.Page) (repository.PagedResult[*entity.AttendanceRecord], error) {
	return s.attendanceRepo.FindAll(ctx, filter, page)
}

func (s *attendanceService) GetLiveCount(ctx context.Context, branchID uuid.UUID) (int64, error) {
	return s.attendanceRepo.CountOpen(ctx, branchID, entity.DateOf(s.clock()))
}

func (s *attendanceService) GetRecentCheckIns(ctx context.Context, branchID uuid.UUID, limit int) ([]*entity.AttendanceRecord, error) {
	return s.attendanceRepo.FindRecent(ctx, branchID, limit)
}
