package handler

import (
	"log/slog"
	"net/http"
	"time"

	"gymgate/internal/delivery/http/response"
	"gymgate/internal/domain/entity"
	domainerrors "gymgate/internal/domain/errors"
	"gymgate/internal/domain/repository"
	"gymgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MemberHandler holds dependencies for member-related handlers
type MemberHandler struct {
	uc     usecase.MemberUsecase
	logger *slog.Logger
}

// NewMemberHandler is the constructor for MemberHandler
func NewMemberHandler(uc usecase.MemberUsecase, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateMemberRequest represents the request body for registering a member
type CreateMemberRequest struct {
	Name       string    `json:"name" validate:"required"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty" validate:"omitempty,email"`
	BranchID   uuid.UUID `json:"branch_id" validate:"required"`
	PlanName   string    `json:"plan_name,omitempty"`
	Status     string    `json:"status,omitempty" validate:"omitempty,oneof=active expired cancelled frozen"`
	ExpiryDate time.Time `json:"expiry_date,omitempty"`
}

// UpdateMemberRequest represents the request body for a partial member update
type UpdateMemberRequest struct {
	Name       *string    `json:"name,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	Email      *string    `json:"email,omitempty" validate:"omitempty,email"`
	BranchID   *uuid.UUID `json:"branch_id,omitempty"`
	PlanName   *string    `json:"plan_name,omitempty"`
	Status     *string    `json:"status,omitempty" validate:"omitempty,oneof=active expired cancelled frozen"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// ListMembers lists members with filters and pagination.
func (h *MemberHandler) ListMembers(c echo.Context) error {
	filter := &repository.MemberFilter{
		Search: c.QueryParam("search"),
	}

	if branchStr := c.QueryParam("branch_id"); branchStr != "" {
		branchID, err := uuid.Parse(branchStr)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "branch_id must be a valid UUID")
		}
		filter.BranchID = &branchID
	}
	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := entity.MemberStatus(statusStr)
		filter.Status = &status
	}

	result, err := h.uc.ListMembers(c.Request().Context(), filter, parsePage(c))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Members retrieved successfully")
}

// GetMember fetches a single member by id.
func (h *MemberHandler) GetMember(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "id must be a valid UUID")
	}

	member, err := h.uc.GetMember(c.Request().Context(), id)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, member, "Member retrieved successfully")
}

// CreateMember registers a new member.
func (h *MemberHandler) CreateMember(c echo.Context) error {
	var req CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid member input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "name and branch_id are required")
	}

	member, err := h.uc.CreateMember(c.Request().Context(), usecase.CreateMemberInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		BranchID:   req.BranchID,
		PlanName:   req.PlanName,
		Status:     entity.MemberStatus(req.Status),
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, member, "Member created successfully")
}

// UpdateMember applies a partial update to a member.
func (h *MemberHandler) UpdateMember(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "id must be a valid UUID")
	}

	var req UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid member input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid member update fields")
	}

	update := repository.MemberUpdate{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		BranchID:   req.BranchID,
		PlanName:   req.PlanName,
		ExpiryDate: req.ExpiryDate,
	}
	if req.Status != nil {
		status := entity.MemberStatus(*req.Status)
		update.Status = &status
	}

	member, err := h.uc.UpdateMember(c.Request().Context(), id, update)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, member, "Member updated successfully")
}

// DeleteMember removes a member.
func (h *MemberHandler) DeleteMember(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "id must be a valid UUID")
	}

	deleted, err := h.uc.DeleteMember(c.Request().Context(), id)
	if err != nil {
		return h.handleAppError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "MEMBER_NOT_FOUND", "Member not found")
	}

	return response.Success(c, http.StatusOK, nil, "Member deleted successfully")
}

// GetBadge renders the member's check-in badge as a PNG.
func (h *MemberHandler) GetBadge(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "id must be a valid UUID")
	}

	png, err := h.uc.GenerateBadge(c.Request().Context(), id)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// handleAppError handles application errors
func (h *MemberHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
