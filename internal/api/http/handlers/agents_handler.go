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

// AgentsHandler exposes agent profile endpoints.
type AgentsHandler struct {
	onboarding *service.OnboardingService
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(onboardingService *service.OnboardingService) *AgentsHandler {
	return &AgentsHandler{onboarding: onboardingService}
}

// Create handles POST /agents.
func (h *AgentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	var req dto.AgentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.IDOrPassportNumber == "" || req.PhysicalAddress == "" || req.OfficeAddress == "" || req.LicenseSerialNumber == "" {
		return util.NewValidationError("id_or_passport_number, physical_address, office_address and license_serial_number are required", nil)
	}

	agent, err := h.onboarding.RegisterAgent(c.Context(), principal, &domain.Agent{
		IDOrPassportNumber:  req.IDOrPassportNumber,
		PhysicalAddress:     req.PhysicalAddress,
		OfficeAddress:       req.OfficeAddress,
		LicenseSerialNumber: req.LicenseSerialNumber,
		LicenseIssuedAt:     req.LicenseIssuedAt,
	})
	if err != nil {
		return err
	}
	return util.Success(c, http.StatusCreated, "Agent created successfully", dto.NewAgentResponse(agent))
}

// List handles GET /agents.
func (h *AgentsHandler) List(c *fiber.Ctx) error {
	agents, err := h.onboarding.ListAgents(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.AgentResponse, 0, len(agents))
	for i := range agents {
		resp = append(resp, dto.NewAgentResponse(&agents[i]))
	}
	return util.Success(c, http.StatusOK, "Agents retrieved successfully", resp)
}

// Get handles GET /agents/:id.
func (h *AgentsHandler) Get(c *fiber.Ctx) error {
	agent, err := h.onboarding.GetAgent(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return util.Success(c, http.StatusOK, "Agent retrieved successfully", dto.NewAgentResponse(agent))
}
