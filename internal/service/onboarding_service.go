package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// OnboardingService creates and lists the approvable entities. Everything it
// creates starts pending with its flag false; only the approval workflow
// moves entities out of that state.
type OnboardingService struct {
	agents      repository.AgentRepository
	companies   repository.CompanyRepository
	residential repository.PropertyRepository
	commercial  repository.PropertyRepository
}

// OnboardingDependencies bundles repositories for the onboarding service.
type OnboardingDependencies struct {
	AgentRepo       repository.AgentRepository
	CompanyRepo     repository.CompanyRepository
	ResidentialRepo repository.PropertyRepository
	CommercialRepo  repository.PropertyRepository
}

// NewOnboardingService builds the service.
func NewOnboardingService(deps OnboardingDependencies) *OnboardingService {
	return &OnboardingService{
		agents:      deps.AgentRepo,
		companies:   deps.CompanyRepo,
		residential: deps.ResidentialRepo,
		commercial:  deps.CommercialRepo,
	}
}

// RegisterAgent creates the caller's agent profile. One profile per account.
func (s *OnboardingService) RegisterAgent(ctx context.Context, actor *auth.Principal, agent *domain.Agent) (*domain.Agent, error) {
	if actor.Role != domain.RoleAgent {
		return nil, apperrors.NewForbidden("only users with agent role can create an agent profile")
	}

	if _, err := s.agents.GetByUserID(ctx, actor.User.ID); err == nil {
		return nil, apperrors.NewConflict("agent profile already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	agent.UserID = actor.User.ID
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// ListAgents returns all agent profiles.
func (s *OnboardingService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.agents.List(ctx)
}

// GetAgent returns one agent profile.
func (s *OnboardingService) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", nil)
		}
		return nil, err
	}
	return agent, nil
}

// CreateCompany registers a company owned by the caller.
func (s *OnboardingService) CreateCompany(ctx context.Context, actor *auth.Principal, company *domain.Company) (*domain.Company, error) {
	if actor.Role != domain.RoleCompany {
		return nil, apperrors.NewForbidden("only users with company role can create a company")
	}

	company.CreatedBy = actor.User.ID
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies returns all companies.
func (s *OnboardingService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

// GetCompany returns one company.
func (s *OnboardingService) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("company", nil)
		}
		return nil, err
	}
	return company, nil
}

// CreateProperty lists a property of the given kind on behalf of the caller.
func (s *OnboardingService) CreateProperty(ctx context.Context, actor *auth.Principal, kind domain.EntityKind, property *domain.Property) (*domain.Property, error) {
	switch actor.Role {
	case domain.RoleAgent, domain.RoleCompany, domain.RoleAdmin:
	default:
		return nil, apperrors.NewForbidden("only agent, company or admin accounts can list properties")
	}

	repo, err := s.propertyRepo(kind)
	if err != nil {
		return nil, err
	}

	property.AddedBy = actor.User.ID
	if err := repo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// ListProperties returns all properties of a kind.
func (s *OnboardingService) ListProperties(ctx context.Context, kind domain.EntityKind) ([]domain.Property, error) {
	repo, err := s.propertyRepo(kind)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// ListPendingProperties returns undecided properties of a kind, admin-only.
func (s *OnboardingService) ListPendingProperties(ctx context.Context, actor *auth.Principal, kind domain.EntityKind) ([]domain.Property, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	repo, err := s.propertyRepo(kind)
	if err != nil {
		return nil, err
	}
	return repo.ListPending(ctx)
}

// GetProperty returns one property of a kind.
func (s *OnboardingService) GetProperty(ctx context.Context, kind domain.EntityKind, id string) (*domain.Property, error) {
	repo, err := s.propertyRepo(kind)
	if err != nil {
		return nil, err
	}
	property, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(kind)+" property", nil)
		}
		return nil, err
	}
	return property, nil
}

func (s *OnboardingService) propertyRepo(kind domain.EntityKind) (repository.PropertyRepository, error) {
	switch kind {
	case domain.KindResidential:
		return s.residential, nil
	case domain.KindCommercial:
		return s.commercial, nil
	default:
		return nil, apperrors.NewValidationError("invalid property kind", map[string]any{"field": "kind"})
	}
}
