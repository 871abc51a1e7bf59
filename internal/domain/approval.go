package domain

import "time"

// ApprovalStatus enumerates the workflow states for approvable entities.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// EntityKind selects which approvable table a transition targets.
type EntityKind string

const (
	KindAgent       EntityKind = "agent"
	KindCompany     EntityKind = "company"
	KindResidential EntityKind = "residential"
	KindCommercial  EntityKind = "commercial"
)

// ApprovalAction is the admin decision applied to an entity.
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "approve"
	ActionReject  ApprovalAction = "reject"
)

// DecisionUpdate carries every field of an approve/reject transition. The
// repository applies it as a single UPDATE so status, flag, actor, timestamp
// and notes/reason are never observable half-written.
type DecisionUpdate struct {
	Status    ApprovalStatus
	Flag      bool
	ActorID   string
	DecidedAt time.Time
	// Notes is written verbatim for agents and companies (nil stores NULL).
	Notes *string
	// Reason is written for properties: nil on approve, reason text on reject.
	Reason *string
}
