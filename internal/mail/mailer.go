package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/config"
)

// Mailer is the outbound email collaborator. Implementations must absorb
// delivery failures; callers treat every send as best-effort.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, firstName, token string) error
	SendPasswordResetEmail(ctx context.Context, to, rawTicket string) error
	SendApprovalEmail(ctx context.Context, to, name, entityLabel string) error
	SendRejectionEmail(ctx context.Context, to, name, entityLabel, reason string) error
}

// LogMailer renders each message and logs it instead of delivering. It stands
// in for an SMTP provider in development and keeps link building in one place.
type LogMailer struct {
	logger *zap.Logger
	cfg    config.MailConfig
}

// NewLogMailer constructs the mailer.
func NewLogMailer(logger *zap.Logger, cfg config.MailConfig) *LogMailer {
	return &LogMailer{logger: logger, cfg: cfg}
}

func (m *LogMailer) SendVerificationEmail(_ context.Context, to, firstName, token string) error {
	link := fmt.Sprintf("%s/auth/verify-email?token=%s", m.cfg.BaseURL, token)
	m.send(to, "Verify Your Email Address",
		zap.String("first_name", firstName),
		zap.String("verification_link", link))
	return nil
}

func (m *LogMailer) SendPasswordResetEmail(_ context.Context, to, rawTicket string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.FrontendURL, rawTicket)
	m.send(to, "Password Reset Request",
		zap.String("reset_link", link))
	return nil
}

func (m *LogMailer) SendApprovalEmail(_ context.Context, to, name, entityLabel string) error {
	m.send(to, fmt.Sprintf("Your %s has been approved", entityLabel),
		zap.String("name", name))
	return nil
}

func (m *LogMailer) SendRejectionEmail(_ context.Context, to, name, entityLabel, reason string) error {
	m.send(to, fmt.Sprintf("Your %s has been rejected", entityLabel),
		zap.String("name", name),
		zap.String("reason", reason))
	return nil
}

func (m *LogMailer) send(to, subject string, fields ...zap.Field) {
	fields = append(fields,
		zap.String("from", m.cfg.From),
		zap.String("to", to),
		zap.String("subject", subject),
	)
	m.logger.Info("outbound email", fields...)
}
