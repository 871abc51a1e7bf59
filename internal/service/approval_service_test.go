package service

import (
	"context"
	"testing"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
)

type approvalFixture struct {
	svc         *ApprovalService
	agents      *fakeAgentRepo
	companies   *fakeCompanyRepo
	residential *fakePropertyRepo
	commercial  *fakePropertyRepo
	dispatcher  *captureDispatcher
}

func newApprovalFixture() *approvalFixture {
	f := &approvalFixture{
		agents:      newFakeAgentRepo(),
		companies:   newFakeCompanyRepo(),
		residential: newFakePropertyRepo(),
		commercial:  newFakePropertyRepo(),
		dispatcher:  newCaptureDispatcher(),
	}
	f.svc = NewApprovalService(ApprovalDependencies{
		AgentRepo:       f.agents,
		CompanyRepo:     f.companies,
		ResidentialRepo: f.residential,
		CommercialRepo:  f.commercial,
		Dispatcher:      f.dispatcher,
	})
	return f
}

func adminPrincipal() *auth.Principal {
	return &auth.Principal{
		User: &domain.User{ID: "admin-1", Email: "admin@example.com"},
		Role: domain.RoleAdmin,
	}
}

func clientPrincipal() *auth.Principal {
	return &auth.Principal{
		User: &domain.User{ID: "client-1"},
		Role: domain.RoleClient,
	}
}

func TestTransitionRequiresAdmin(t *testing.T) {
	f := newApprovalFixture()

	_, err := f.svc.Transition(context.Background(), clientPrincipal(), TransitionInput{
		Kind: domain.KindAgent, ID: "agent-1", Action: domain.ActionApprove,
	})
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Errorf("non-admin code = %q, want FORBIDDEN", code)
	}

	_, err = f.svc.Transition(context.Background(), nil, TransitionInput{
		Kind: domain.KindAgent, ID: "agent-1", Action: domain.ActionApprove,
	})
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Errorf("nil principal code = %q, want FORBIDDEN", code)
	}
}

func TestTransitionValidatesKindAndAction(t *testing.T) {
	f := newApprovalFixture()

	_, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.EntityKind("yacht"), ID: "x", Action: domain.ActionApprove,
	})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("invalid kind code = %q, want VALIDATION_FAILED", code)
	}

	_, err = f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindAgent, ID: "x", Action: domain.ApprovalAction("defer"),
	})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("invalid action code = %q, want VALIDATION_FAILED", code)
	}
}

func TestTransitionMissingEntity(t *testing.T) {
	f := newApprovalFixture()

	_, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindResidential, ID: "property-99", Action: domain.ActionApprove,
	})
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Errorf("missing entity code = %q, want NOT_FOUND", code)
	}
}

func TestRejectResidentialPropertySetsAllDecisionFields(t *testing.T) {
	f := newApprovalFixture()
	property := &domain.Property{AddedBy: "owner-1", Name: "Sea View Villa"}
	if err := f.residential.Create(context.Background(), property); err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind:   domain.KindResidential,
		ID:     property.ID,
		Action: domain.ActionReject,
		Reason: "missing title deed",
	})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if result.Status != domain.StatusRejected {
		t.Errorf("status = %q, want rejected", result.Status)
	}

	stored, _ := f.residential.GetByID(context.Background(), property.ID)
	if stored.Status != domain.StatusRejected {
		t.Errorf("stored status = %q, want rejected", stored.Status)
	}
	if stored.Approved {
		t.Error("approved flag must be false after rejection")
	}
	if stored.ApprovedBy == nil || *stored.ApprovedBy != "admin-1" {
		t.Error("decision must record the acting admin")
	}
	if stored.ApprovedAt == nil {
		t.Error("decision must record the decision time")
	}
	if stored.RejectionReason == nil || *stored.RejectionReason != "missing title deed" {
		t.Errorf("rejection reason = %v, want the supplied reason", stored.RejectionReason)
	}

	event, ok := f.dispatcher.lastOfType(events.EventEntityRejected)
	if !ok {
		t.Fatal("expected an entity_rejected event")
	}
	payload := event.Payload.(events.EntityDecisionPayload)
	if payload.OwnerUserID != "owner-1" || payload.Reason != "missing title deed" {
		t.Errorf("unexpected payload %#v", payload)
	}
}

func TestRejectPropertyDefaultsReason(t *testing.T) {
	f := newApprovalFixture()
	property := &domain.Property{AddedBy: "owner-1", Name: "Warehouse 4"}
	if err := f.commercial.Create(context.Background(), property); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindCommercial, ID: property.ID, Action: domain.ActionReject,
	})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}

	stored, _ := f.commercial.GetByID(context.Background(), property.ID)
	if stored.RejectionReason == nil || *stored.RejectionReason != "No reason provided" {
		t.Errorf("rejection reason = %v, want the default", stored.RejectionReason)
	}
}

func TestApprovePropertyClearsRejectionReason(t *testing.T) {
	f := newApprovalFixture()
	property := &domain.Property{AddedBy: "owner-1", Name: "Sea View Villa"}
	if err := f.residential.Create(context.Background(), property); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindResidential, ID: property.ID, Action: domain.ActionReject, Reason: "bad photos",
	})
	if err != nil {
		t.Fatalf("reject Transition: %v", err)
	}

	result, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindResidential, ID: property.ID, Action: domain.ActionApprove,
	})
	if err != nil {
		t.Fatalf("approve Transition: %v", err)
	}
	if result.Status != domain.StatusApproved {
		t.Errorf("status = %q, want approved", result.Status)
	}

	stored, _ := f.residential.GetByID(context.Background(), property.ID)
	if !stored.Approved {
		t.Error("approved flag must be set")
	}
	if stored.RejectionReason != nil {
		t.Errorf("rejection reason = %v, must be cleared on approval", stored.RejectionReason)
	}
}

func TestApproveAgentStoresNotes(t *testing.T) {
	f := newApprovalFixture()
	agent := &domain.Agent{UserID: "owner-1", IDOrPassportNumber: "A123"}
	if err := f.agents.Create(context.Background(), agent); err != nil {
		t.Fatalf("Create: %v", err)
	}

	notes := "license checked against the registry"
	_, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindAgent, ID: agent.ID, Action: domain.ActionApprove, Notes: &notes,
	})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}

	stored, _ := f.agents.GetByID(context.Background(), agent.ID)
	if stored.Status != domain.StatusApproved || !stored.Verified {
		t.Errorf("agent not verified: status=%q verified=%v", stored.Status, stored.Verified)
	}
	if stored.VerificationNotes == nil || *stored.VerificationNotes != notes {
		t.Errorf("verification notes = %v, want %q", stored.VerificationNotes, notes)
	}
	if _, ok := f.dispatcher.lastOfType(events.EventEntityApproved); !ok {
		t.Fatal("expected an entity_approved event")
	}
}

func TestApproveCompanyWithNilNotesClearsNotes(t *testing.T) {
	f := newApprovalFixture()
	company := &domain.Company{CreatedBy: "owner-1", Name: "Acme Realty"}
	if err := f.companies.Create(context.Background(), company); err != nil {
		t.Fatalf("Create: %v", err)
	}

	notes := "first pass"
	if _, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindCompany, ID: company.ID, Action: domain.ActionReject, Notes: &notes,
	}); err != nil {
		t.Fatalf("reject Transition: %v", err)
	}

	if _, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindCompany, ID: company.ID, Action: domain.ActionApprove,
	}); err != nil {
		t.Fatalf("approve Transition: %v", err)
	}

	stored, _ := f.companies.GetByID(context.Background(), company.ID)
	if !stored.Verified || stored.Status != domain.StatusApproved {
		t.Errorf("company not verified: status=%q verified=%v", stored.Status, stored.Verified)
	}
	if stored.VerificationNotes != nil {
		t.Errorf("notes = %v, nil notes must overwrite the prior value", stored.VerificationNotes)
	}
}

func TestRedecidingOverwritesPriorDecision(t *testing.T) {
	f := newApprovalFixture()
	agent := &domain.Agent{UserID: "owner-1"}
	if err := f.agents.Create(context.Background(), agent); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindAgent, ID: agent.ID, Action: domain.ActionApprove,
	}); err != nil {
		t.Fatalf("approve Transition: %v", err)
	}
	if _, err := f.svc.Transition(context.Background(), adminPrincipal(), TransitionInput{
		Kind: domain.KindAgent, ID: agent.ID, Action: domain.ActionReject,
	}); err != nil {
		t.Fatalf("reject Transition: %v", err)
	}

	stored, _ := f.agents.GetByID(context.Background(), agent.ID)
	if stored.Status != domain.StatusRejected || stored.Verified {
		t.Errorf("re-decision not applied: status=%q verified=%v", stored.Status, stored.Verified)
	}
}
