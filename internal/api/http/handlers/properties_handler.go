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

// PropertiesHandler exposes residential and commercial listing endpoints. The
// kind comes from the :kind route segment.
type PropertiesHandler struct {
	onboarding *service.OnboardingService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(onboardingService *service.OnboardingService) *PropertiesHandler {
	return &PropertiesHandler{onboarding: onboardingService}
}

// Create handles POST /properties/:kind.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	var req dto.PropertyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.PhysicalAddress == "" || req.City == "" || req.Price <= 0 {
		return util.NewValidationError("name, physical_address, city and a positive price are required", nil)
	}

	property, err := h.onboarding.CreateProperty(c.Context(), principal, kindParam(c), &domain.Property{
		Name:            req.Name,
		Description:     req.Description,
		PhysicalAddress: req.PhysicalAddress,
		City:            req.City,
		Price:           req.Price,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		SizeSqft:        req.SizeSqft,
	})
	if err != nil {
		return err
	}
	return util.Success(c, http.StatusCreated, "Property created successfully", dto.NewPropertyResponse(property))
}

// List handles GET /properties/:kind.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	properties, err := h.onboarding.ListProperties(c.Context(), kindParam(c))
	if err != nil {
		return err
	}
	return util.Success(c, http.StatusOK, "Properties retrieved successfully", propertyResponses(properties))
}

// ListPending handles GET /properties/:kind/pending.
func (h *PropertiesHandler) ListPending(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	properties, err := h.onboarding.ListPendingProperties(c.Context(), principal, kindParam(c))
	if err != nil {
		return err
	}
	return util.Success(c, http.StatusOK, "Pending properties retrieved successfully", propertyResponses(properties))
}

// Get handles GET /properties/:kind/:id.
func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	property, err := h.onboarding.GetProperty(c.Context(), kindParam(c), c.Params("id"))
	if err != nil {
		return err
	}
	return util.Success(c, http.StatusOK, "Property retrieved successfully", dto.NewPropertyResponse(property))
}

func kindParam(c *fiber.Ctx) domain.EntityKind {
	return domain.EntityKind(c.Params("kind"))
}

func propertyResponses(properties []domain.Property) []dto.PropertyResponse {
	resp := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		resp = append(resp, dto.NewPropertyResponse(&properties[i]))
	}
	return resp
}
