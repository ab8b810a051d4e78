package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gymgate/internal/delivery/http/validator"
	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"
	"gymgate/internal/infra/qrcode"
	"gymgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAttendanceUsecase records the last check-in input and answers success.
type stubAttendanceUsecase struct {
	calls     int
	lastInput usecase.CheckInInput
}

func (s *stubAttendanceUsecase) CheckIn(_ context.Context, input usecase.CheckInInput) (*usecase.CheckInResult, error) {
	s.calls++
	s.lastInput = input

	return &usecase.CheckInResult{Success: true, Message: "checked in"}, nil
}

func (s *stubAttendanceUsecase) GetAttendance(context.Context, *repository.AttendanceFilter, *repository.Page) (repository.PagedResult[*entity.AttendanceRecord], error) {
	return repository.PagedResult[*entity.AttendanceRecord]{}, nil
}

func (s *stubAttendanceUsecase) GetLiveCount(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubAttendanceUsecase) GetRecentCheckIns(context.Context, uuid.UUID, int) ([]*entity.AttendanceRecord, error) {
	return nil, nil
}

func newCheckInFixture() (*AttendanceHandler, *stubAttendanceUsecase) {
	uc := &stubAttendanceUsecase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAttendanceHandler(uc, qrcode.NewQRCodeService(256, "M"), logger), uc
}

func performCheckIn(t *testing.T, h *AttendanceHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/check-in", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.CheckIn(e.NewContext(req, rec)))

	return rec
}

func TestAttendanceHandler_CheckIn_AcceptsAnyMethodLabel(t *testing.T) {
	h, uc := newCheckInFixture()
	memberID, branchID := uuid.New(), uuid.New()

	// The method is whatever label the device reports; it is not an enum.
	for _, method := range []string{"QR", "Manual", "fingerprint"} {
		body, err := json.Marshal(map[string]any{
			"member_id": memberID,
			"branch_id": branchID,
			"method":    method,
		})
		require.NoError(t, err)

		rec := performCheckIn(t, h, string(body))

		assert.Equal(t, http.StatusOK, rec.Code, "method %s", method)
		assert.Equal(t, method, uc.lastInput.Method)
	}
}

func TestAttendanceHandler_CheckIn_ResolvesBadgeData(t *testing.T) {
	h, uc := newCheckInFixture()
	memberID, branchID := uuid.New(), uuid.New()

	badge, err := json.Marshal(map[string]string{
		"member_id": memberID.String(),
		"type":      "member_badge",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"badge_data": string(badge),
		"branch_id":  branchID,
		"method":     "qr",
	})
	require.NoError(t, err)

	rec := performCheckIn(t, h, string(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, memberID, uc.lastInput.MemberID)
	assert.Equal(t, branchID, uc.lastInput.BranchID)
}

func TestAttendanceHandler_CheckIn_RejectsInvalidBadge(t *testing.T) {
	h, uc := newCheckInFixture()

	body, err := json.Marshal(map[string]any{
		"badge_data": "not a badge",
		"branch_id":  uuid.New(),
		"method":     "qr",
	})
	require.NoError(t, err)

	rec := performCheckIn(t, h, string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, uc.calls)
}

func TestAttendanceHandler_CheckIn_RequiresMemberOrBadge(t *testing.T) {
	h, uc := newCheckInFixture()

	body, err := json.Marshal(map[string]any{
		"branch_id": uuid.New(),
		"method":    "manual",
	})
	require.NoError(t, err)

	rec := performCheckIn(t, h, string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, uc.calls)
}
