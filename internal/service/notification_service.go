package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/mail"
	"github.com/spec-kit/realty-service/internal/repository"
)

// NotificationService turns domain events into outbound mail. Every send is
// best-effort: errors are logged and dropped, never surfaced to the flow that
// published the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	users      repository.UserRepository
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, users repository.UserRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		users:      users,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to the events this service reacts to.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleVerificationRequested)
	n.dispatcher.Subscribe(events.EventVerificationRequested, n.handleVerificationRequested)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
	n.dispatcher.Subscribe(events.EventEntityApproved, n.handleEntityDecision)
	n.dispatcher.Subscribe(events.EventEntityRejected, n.handleEntityDecision)
}

func (n *NotificationService) handleVerificationRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.VerificationRequestedPayload)
	if !ok {
		return nil
	}
	if err := n.mailer.SendVerificationEmail(ctx, payload.Email, payload.FirstName, payload.Token); err != nil {
		n.logger.Error("verification email failed", zap.Error(err), zap.String("user_id", payload.UserID))
	}
	return nil
}

func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return nil
	}
	if err := n.mailer.SendPasswordResetEmail(ctx, payload.Email, payload.Ticket); err != nil {
		n.logger.Error("password reset email failed", zap.Error(err), zap.String("user_id", payload.UserID))
	}
	return nil
}

func (n *NotificationService) handleEntityDecision(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EntityDecisionPayload)
	if !ok {
		return nil
	}

	owner, err := n.users.GetByID(ctx, payload.OwnerUserID)
	if err != nil || owner.Email == "" {
		n.logger.Warn("no email resolvable for decided entity",
			zap.String("kind", string(payload.Kind)),
			zap.String("entity_id", payload.EntityID))
		return nil
	}

	if event.Type == events.EventEntityApproved {
		err = n.mailer.SendApprovalEmail(ctx, owner.Email, owner.FullName(), payload.Label)
	} else {
		err = n.mailer.SendRejectionEmail(ctx, owner.Email, owner.FullName(), payload.Label, payload.Reason)
	}
	if err != nil {
		n.logger.Error("decision email failed", zap.Error(err), zap.String("entity_id", payload.EntityID))
	}
	return nil
}
