package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// RoleResolver narrows what AuthService needs from the role layer.
type RoleResolver interface {
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
}

// AuthService owns the account lifecycle: registration, login, email
// verification and the password-reset ticket flow.
type AuthService struct {
	users      repository.UserRepository
	roles      RoleResolver
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Roles      RoleResolver
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		roles:      deps.Roles,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTLHours, cfg.Auth.VerificationTTLHours),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.ResetTTLMinutes) * time.Minute,
	}
}

// RegisterInput is the registration payload after boundary validation.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	RoleID    *string
}

// Register creates an account. The password is hashed before persistence and
// a verification mail is dispatched best-effort; its failure never fails
// the registration.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := s.ensureUnique(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	role, err := s.resolveRole(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		RoleID:       role.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.dispatchVerification(ctx, events.EventUserRegistered, user)
	return user, nil
}

// Login authenticates by username and password. Unknown usernames and wrong
// passwords produce the identical error so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *domain.Role, string, time.Time, error) {
	badCredentials := apperrors.NewUnauthorized("invalid username or password")

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, "", time.Time{}, badCredentials
		}
		return nil, nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, "", time.Time{}, badCredentials
	}
	if !user.Verified {
		return nil, nil, "", time.Time{}, apperrors.NewForbidden("your email address is not verified; check your inbox for a verification link")
	}

	role, err := s.roles.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateSessionToken(user, role)
	if err != nil {
		return nil, nil, "", time.Time{}, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, nil, "", time.Time{}, err
	}
	user.LastLogin = &now

	return user, role, token, exp, nil
}

// VerifyEmail consumes a verification token. Already-verified accounts
// succeed without mutation; the returned flag tells the caller which case
// occurred.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (alreadyVerified bool, err error) {
	userID, err := s.tokenMgr.ParseVerificationToken(token)
	if err != nil {
		return false, apperrors.NewValidationError("invalid or expired verification token", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.NewNotFound("user", nil)
		}
		return false, err
	}

	if user.Verified {
		return true, nil
	}
	return false, s.users.MarkVerified(ctx, user.ID)
}

// ResendVerification issues a fresh 24h token for an unverified account.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	if user.Verified {
		return apperrors.NewConflict("email already verified", nil)
	}

	s.dispatchVerification(ctx, events.EventVerificationRequested, user)
	return nil
}

// ForgotPassword issues a reset ticket, overwriting any prior one, and mails
// the raw value. Only the digest is stored.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	raw, digest, err := auth.NewResetTicket()
	if err != nil {
		return err
	}
	if err := s.users.SetResetTicket(ctx, user.ID, digest, time.Now().Add(s.resetTTL)); err != nil {
		return err
	}

	s.dispatcher.Publish(ctx, events.Event{
		Type: events.EventPasswordResetRequested,
		Payload: events.PasswordResetRequestedPayload{
			UserID: user.ID,
			Email:  user.Email,
			Ticket: raw,
		},
	})
	return nil
}

// ResetPassword consumes a reset ticket. A successful reset replaces the hash
// and clears the digest and expiry in one write, so the ticket is single-use.
func (s *AuthService) ResetPassword(ctx context.Context, rawTicket, newPassword string) error {
	invalidTicket := apperrors.NewValidationError("invalid or expired reset token", nil)

	user, err := s.users.GetByResetDigest(ctx, auth.DigestResetTicket(rawTicket))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invalidTicket
		}
		return err
	}
	if user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(time.Now()) {
		return invalidTicket
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.ResetPassword(ctx, user.ID, hash)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) ensureUnique(ctx context.Context, username, email string) error {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return apperrors.NewConflict("username already exists", map[string]any{"field": "username"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.NewConflict("email already exists", map[string]any{"field": "email"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return nil
}

func (s *AuthService) resolveRole(ctx context.Context, roleID *string) (*domain.Role, error) {
	if roleID == nil || *roleID == "" {
		return s.roles.GetByName(ctx, domain.RoleClient)
	}
	role, err := s.roles.GetByID(ctx, *roleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"field": "role_id"})
		}
		return nil, err
	}
	return role, nil
}

func (s *AuthService) dispatchVerification(ctx context.Context, eventType events.EventType, user *domain.User) {
	token, err := s.tokenMgr.GenerateVerificationToken(user.ID)
	if err != nil {
		s.logger.Error("failed to build verification token", zap.Error(err), zap.String("user_id", user.ID))
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		Type: eventType,
		Payload: events.VerificationRequestedPayload{
			UserID:    user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			Token:     token,
		},
	})
}
