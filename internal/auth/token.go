package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/realty-service/internal/domain"
)

const purposeEmailVerification = "email_verification"

// TokenManager issues and validates the two JWT kinds the service uses:
// session tokens proving identity, and single-purpose email-verification
// tokens.
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
	verifyTTL  time.Duration
}

// NewTokenManager builds a new manager. TTLs fall back to the defaults
// (3h sessions, 24h verification) when non-positive.
func NewTokenManager(secret string, sessionTTLHours, verifyTTLHours int) *TokenManager {
	if sessionTTLHours <= 0 {
		sessionTTLHours = 3
	}
	if verifyTTLHours <= 0 {
		verifyTTLHours = 24
	}
	return &TokenManager{
		secret:     []byte(secret),
		sessionTTL: time.Duration(sessionTTLHours) * time.Hour,
		verifyTTL:  time.Duration(verifyTTLHours) * time.Hour,
	}
}

// SessionClaims is the JWT payload for authenticated sessions.
type SessionClaims struct {
	Username  string          `json:"username"`
	Role      domain.RoleName `json:"role"`
	RoleID    string          `json:"role_id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	jwt.RegisteredClaims
}

// VerificationClaims is the JWT payload for email-verification links.
type VerificationClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token for the user with the role
// resolved to its name.
func (tm *TokenManager) GenerateSessionToken(user *domain.User, role *domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.sessionTTL)
	claims := &SessionClaims{
		Username:  user.Username,
		Role:      role.Name,
		RoleID:    role.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseSessionToken validates a session token and returns its claims.
func (tm *TokenManager) ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, tm.keyFunc)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// GenerateVerificationToken signs a 24h token carrying only the user id.
func (tm *TokenManager) GenerateVerificationToken(userID string) (string, error) {
	now := time.Now()
	claims := &VerificationClaims{
		Purpose: purposeEmailVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.verifyTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// ParseVerificationToken validates a verification token and returns the
// embedded user id. Tokens signed for any other purpose are rejected.
func (tm *TokenManager) ParseVerificationToken(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &VerificationClaims{}, tm.keyFunc)
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*VerificationClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.Purpose != purposeEmailVerification {
		return "", errors.New("wrong token purpose")
	}
	return claims.Subject, nil
}

func (tm *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, errors.New("unexpected signing method")
	}
	return tm.secret, nil
}
