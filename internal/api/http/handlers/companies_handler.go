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

// CompaniesHandler exposes company endpoints.
type CompaniesHandler struct {
	onboarding *service.OnboardingService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(onboardingService *service.OnboardingService) *CompaniesHandler {
	return &CompaniesHandler{onboarding: onboardingService}
}

// Create handles POST /companies.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	var req dto.CompanyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.RegistrationNumber == "" {
		return util.NewValidationError("name and registration_number are required", nil)
	}

	company, err := h.onboarding.CreateCompany(c.Context(), principal, &domain.Company{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		Website:            req.Website,
	})
	if err != nil {
		return err
	}
	return util.Success(c, http.StatusCreated, "Company created successfully", dto.NewCompanyResponse(company))
}

// List handles GET /companies.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	companies, err := h.onboarding.ListCompanies(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		resp = append(resp, dto.NewCompanyResponse(&companies[i]))
	}
	return util.Success(c, http.StatusOK, "Companies retrieved successfully", resp)
}

// Get handles GET /companies/:id.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	company, err := h.onboarding.GetCompany(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return util.Success(c, http.StatusOK, "Company retrieved successfully", dto.NewCompanyResponse(company))
}
