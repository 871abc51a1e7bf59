package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/service"
	"github.com/spec-kit/realty-service/pkg/util"
)

// AuthHandler exposes the account lifecycle endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return util.NewValidationError("username, password, email, first_name and last_name are required", nil)
	}

	user, err := h.auth.Register(c.Context(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleID:    req.RoleID,
	})
	if err != nil {
		return err
	}

	return util.Success(c, http.StatusCreated, "User registered successfully", dto.NewUserResponse(user, nil))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return util.NewValidationError("username and password are required", nil)
	}

	user, role, token, exp, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return util.Success(c, http.StatusOK, "Login successful", dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.NewUserResponse(user, role),
	})
}

// VerifyEmail handles GET /auth/verify-email?token=...
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return util.NewValidationError("verification token missing", nil)
	}

	already, err := h.auth.VerifyEmail(c.Context(), token)
	if err != nil {
		return err
	}
	if already {
		return util.Success(c, http.StatusOK, "Email already verified", nil)
	}
	return util.Success(c, http.StatusOK, "Email verified successfully", nil)
}

// ResendVerification handles POST /auth/resend-verification.
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req dto.ResendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return util.NewValidationError("email is required", nil)
	}

	if err := h.auth.ResendVerification(c.Context(), req.Email); err != nil {
		return err
	}
	return util.Success(c, http.StatusOK, "Verification email resent successfully", nil)
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return util.NewValidationError("email is required", nil)
	}

	if err := h.auth.ForgotPassword(c.Context(), req.Email); err != nil {
		return err
	}
	return util.Success(c, http.StatusOK, "Password reset email sent", nil)
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.Password == "" {
		return util.NewValidationError("token and password are required", nil)
	}

	if err := h.auth.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		return err
	}
	return util.Success(c, http.StatusOK, "Password reset successful", nil)
}
