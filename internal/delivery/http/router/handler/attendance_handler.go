// Package handler contains the HTTP request handlers.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"gymgate/internal/delivery/http/response"
	"gymgate/internal/domain/entity"
	domainerrors "gymgate/internal/domain/errors"
	"gymgate/internal/domain/repository"
	"gymgate/internal/domain/service"
	"gymgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AttendanceHandler holds dependencies for attendance-related handlers
type AttendanceHandler struct {
	uc        usecase.AttendanceUsecase
	qrcodeSvc service.QRCodeService
	logger    *slog.Logger
}

// NewAttendanceHandler is the constructor for AttendanceHandler
func NewAttendanceHandler(uc usecase.AttendanceUsecase, qrcodeSvc service.QRCodeService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		uc:        uc,
		qrcodeSvc: qrcodeSvc,
		logger:    logger,
	}
}

// CheckInRequest represents the request body for a check-in scan. The member
// is identified either directly or by the scanned badge payload. Method is a
// free-text label from the device ("qr", "manual", "fingerprint", ...).
type CheckInRequest struct {
	MemberID  uuid.UUID `json:"member_id,omitempty"`
	BadgeData string    `json:"badge_data,omitempty"`
	BranchID  uuid.UUID `json:"branch_id" validate:"required"`
	Method    string    `json:"method" validate:"required"`
	DeviceID  *string   `json:"device_id,omitempty"`
}

// CheckIn handles a check-in scan from a door device or the front desk.
// Denied entries are business answers, not errors: the response is 200 with
// the outcome in the body.
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	var req CheckInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid check-in input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "branch_id and method are required")
	}

	memberID := req.MemberID
	if memberID == uuid.Nil {
		if req.BadgeData == "" {
			return response.BadRequest(c, "VALIDATION_ERROR", "member_id or badge_data is required")
		}
		parsed, err := h.qrcodeSvc.ParseBadge(req.BadgeData)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "badge_data is not a valid member badge")
		}
		memberID = parsed
	}

	result, err := h.uc.CheckIn(c.Request().Context(), usecase.CheckInInput{
		MemberID: memberID,
		BranchID: req.BranchID,
		Method:   req.Method,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	message := result.Message
	if message == "" {
		message = result.Error
	}

	return response.Success(c, http.StatusOK, result, message)
}

// GetAttendance lists attendance records with filters and pagination.
func (h *AttendanceHandler) GetAttendance(c echo.Context) error {
	filter := &repository.AttendanceFilter{}

	if branchStr := c.QueryParam("branch_id"); branchStr != "" {
		branchID, err := uuid.Parse(branchStr)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "branch_id must be a valid UUID")
		}
		filter.BranchID = &branchID
	}
	if memberStr := c.QueryParam("member_id"); memberStr != "" {
		memberID, err := uuid.Parse(memberStr)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "member_id must be a valid UUID")
		}
		filter.MemberID = &memberID
	}
	if date := c.QueryParam("date"); date != "" {
		filter.Date = &date
	}
	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := entity.AttendanceStatus(statusStr)
		filter.Status = &status
	}

	result, err := h.uc.GetAttendance(c.Request().Context(), filter, parsePage(c))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Attendance records retrieved successfully")
}

// GetLiveCount reports how many members are currently inside a branch.
func (h *AttendanceHandler) GetLiveCount(c echo.Context) error {
	branchID, err := uuid.Parse(c.QueryParam("branch_id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "branch_id must be a valid UUID")
	}

	count, err := h.uc.GetLiveCount(c.Request().Context(), branchID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"count": count}, "Live count retrieved successfully")
}

// GetRecentCheckIns returns the latest successful check-ins for a branch.
func (h *AttendanceHandler) GetRecentCheckIns(c echo.Context) error {
	branchID, err := uuid.Parse(c.QueryParam("branch_id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "branch_id must be a valid UUID")
	}

	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.uc.GetRecentCheckIns(c.Request().Context(), branchID, limit)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, records, "Recent check-ins retrieved successfully")
}

// handleAppError handles application errors
func (h *AttendanceHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}

// parsePage reads page/page_size query parameters. Absent parameters mean
// no pagination.
func parsePage(c echo.Context) *repository.Page {
	pageStr := c.QueryParam("page")
	sizeStr := c.QueryParam("page_size")
	if pageStr == "" && sizeStr == "" {
		return nil
	}

	page := &repository.Page{Page: 1, PageSize: 20}
	if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
		page.Page = parsed
	}
	if parsed, err := strconv.Atoi(sizeStr); err == nil && parsed > 0 {
		page.PageSize = parsed
	}

	return page
}
