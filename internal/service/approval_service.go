package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

const defaultRejectionReason = "No reason provided"

// ApprovalService owns the pending/approved/rejected transitions for the four
// approvable entity kinds. Kind-specific behavior lives in a strategy table;
// the transition contract itself is uniform.
type ApprovalService struct {
	strategies map[domain.EntityKind]kindStrategy
	dispatcher events.Dispatcher
}

// ApprovalDependencies bundles the per-kind repositories.
type ApprovalDependencies struct {
	AgentRepo       repository.AgentRepository
	CompanyRepo     repository.CompanyRepository
	ResidentialRepo repository.PropertyRepository
	CommercialRepo  repository.PropertyRepository
	Dispatcher      events.Dispatcher
}

// approvalTarget is the kind-independent view of a loaded entity.
type approvalTarget struct {
	ID          string
	OwnerUserID string
	Label       string
}

// kindStrategy isolates per-kind field names and owner resolution.
type kindStrategy struct {
	load      func(ctx context.Context, id string) (*approvalTarget, error)
	decide    func(ctx context.Context, id string, dec domain.DecisionUpdate) error
	usesNotes bool
}

// TransitionInput is the approval request after boundary parsing.
type TransitionInput struct {
	Kind   domain.EntityKind
	ID     string
	Action domain.ApprovalAction
	Reason string
	Notes  *string
}

// TransitionResult is the public outcome of a transition.
type TransitionResult struct {
	ID      string
	Status  domain.ApprovalStatus
	Message string
}

// NewApprovalService builds the service and its strategy table.
func NewApprovalService(deps ApprovalDependencies) *ApprovalService {
	return &ApprovalService{
		dispatcher: deps.Dispatcher,
		strategies: map[domain.EntityKind]kindStrategy{
			domain.KindAgent: {
				usesNotes: true,
				load: func(ctx context.Context, id string) (*approvalTarget, error) {
					agent, err := deps.AgentRepo.GetByID(ctx, id)
					if err != nil {
						return nil, err
					}
					return &approvalTarget{ID: agent.ID, OwnerUserID: agent.UserID, Label: "agent"}, nil
				},
				decide: deps.AgentRepo.ApplyDecision,
			},
			domain.KindCompany: {
				usesNotes: true,
				load: func(ctx context.Context, id string) (*approvalTarget, error) {
					company, err := deps.CompanyRepo.GetByID(ctx, id)
					if err != nil {
						return nil, err
					}
					return &approvalTarget{ID: company.ID, OwnerUserID: company.CreatedBy, Label: "company"}, nil
				},
				decide: deps.CompanyRepo.ApplyDecision,
			},
			domain.KindResidential: {
				load:   propertyLoader(deps.ResidentialRepo, "residential property"),
				decide: deps.ResidentialRepo.ApplyDecision,
			},
			domain.KindCommercial: {
				load:   propertyLoader(deps.CommercialRepo, "commercial property"),
				decide: deps.CommercialRepo.ApplyDecision,
			},
		},
	}
}

func propertyLoader(repo repository.PropertyRepository, kindLabel string) func(context.Context, string) (*approvalTarget, error) {
	return func(ctx context.Context, id string) (*approvalTarget, error) {
		property, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &approvalTarget{
			ID:          property.ID,
			OwnerUserID: property.AddedBy,
			Label:       kindLabel + ": " + property.Name,
		}, nil
	}
}

// Transition applies an approve/reject decision. Only admins may call it;
// re-deciding an already-decided entity is allowed and overwrites the prior
// decision. The field update is one atomic write; the owner notification is
// dispatched best-effort after it commits.
func (s *ApprovalService) Transition(ctx context.Context, actor *auth.Principal, in TransitionInput) (*TransitionResult, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only admins can perform approvals or verifications")
	}

	strategy, ok := s.strategies[in.Kind]
	if !ok {
		return nil, apperrors.NewValidationError("invalid approval type", map[string]any{"field": "type"})
	}
	if in.Action != domain.ActionApprove && in.Action != domain.ActionReject {
		return nil, apperrors.NewValidationError("action must be approve or reject", map[string]any{"field": "action"})
	}

	target, err := strategy.load(ctx, in.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(in.Kind), nil)
		}
		return nil, err
	}

	dec := buildDecision(strategy, in, actor.User.ID)
	if err := strategy.decide(ctx, target.ID, dec); err != nil {
		return nil, err
	}

	s.publishDecision(ctx, in, target, dec)

	return &TransitionResult{
		ID:      target.ID,
		Status:  dec.Status,
		Message: fmt.Sprintf("%s %s successfully", in.Kind, dec.Status),
	}, nil
}

func buildDecision(strategy kindStrategy, in TransitionInput, actorID string) domain.DecisionUpdate {
	dec := domain.DecisionUpdate{
		ActorID:   actorID,
		DecidedAt: time.Now(),
	}
	if in.Action == domain.ActionApprove {
		dec.Status = domain.StatusApproved
		dec.Flag = true
	} else {
		dec.Status = domain.StatusRejected
	}

	if strategy.usesNotes {
		// agents/companies: notes are overwritten on every decision, nil
		// included.
		dec.Notes = in.Notes
		return dec
	}

	// properties: reason cleared on approve, defaulted on reject.
	if in.Action == domain.ActionReject {
		reason := in.Reason
		if reason == "" {
			reason = defaultRejectionReason
		}
		dec.Reason = &reason
	}
	return dec
}

func (s *ApprovalService) publishDecision(ctx context.Context, in TransitionInput, target *approvalTarget, dec domain.DecisionUpdate) {
	eventType := events.EventEntityApproved
	if dec.Status == domain.StatusRejected {
		eventType = events.EventEntityRejected
	}

	reason := in.Reason
	if reason == "" && in.Notes != nil {
		reason = *in.Notes
	}
	if dec.Reason != nil {
		reason = *dec.Reason
	}

	s.dispatcher.Publish(ctx, events.Event{
		Type: eventType,
		Payload: events.EntityDecisionPayload{
			Kind:        in.Kind,
			EntityID:    target.ID,
			Status:      dec.Status,
			OwnerUserID: target.OwnerUserID,
			Label:       target.Label,
			Reason:      reason,
		},
	})
}
