package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/service"
	"github.com/spec-kit/realty-service/pkg/util"
)

// ApprovalsHandler exposes the admin approval endpoint.
type ApprovalsHandler struct {
	approvals *service.ApprovalService
}

// NewApprovalsHandler constructs handler.
func NewApprovalsHandler(approvalService *service.ApprovalService) *ApprovalsHandler {
	return &ApprovalsHandler{approvals: approvalService}
}

// Update handles PUT /approvals.
func (h *ApprovalsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	var req dto.ApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.ID == "" || req.Type == "" || req.Action == "" {
		return util.NewValidationError("id, type and action are required", nil)
	}

	result, err := h.approvals.Transition(c.Context(), principal, service.TransitionInput{
		Kind:   domain.EntityKind(req.Type),
		ID:     req.ID,
		Action: domain.ApprovalAction(req.Action),
		Reason: req.Reason,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}

	return util.Success(c, http.StatusOK, result.Message, dto.ApprovalResponse{
		ID:     result.ID,
		Status: string(result.Status),
	})
}
