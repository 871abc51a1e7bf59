package events

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventVerificationRequested  EventType = "verification_requested"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventEntityApproved         EventType = "entity_approved"
	EventEntityRejected         EventType = "entity_rejected"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// VerificationRequestedPayload carries a fresh email-verification token. Also
// used for user_registered, which triggers the same mail.
type VerificationRequestedPayload struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Token     string `json:"token"`
}

// PasswordResetRequestedPayload carries the raw (never persisted) reset value.
type PasswordResetRequestedPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Ticket string `json:"ticket"`
}

// EntityDecisionPayload describes an approve/reject transition. OwnerUserID
// references the account that should be notified; Label is the human-readable
// entity description used in mail ("agent", "residential property: ...").
type EntityDecisionPayload struct {
	Kind        domain.EntityKind     `json:"kind"`
	EntityID    string                `json:"entity_id"`
	Status      domain.ApprovalStatus `json:"status"`
	OwnerUserID string                `json:"owner_user_id"`
	Label       string                `json:"label"`
	Reason      string                `json:"reason,omitempty"`
}
