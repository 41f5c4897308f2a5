package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"rsvp/internal/auth"
	apperrors "rsvp/internal/errors"
	"rsvp/internal/notify"
	"rsvp/internal/service"
)

// Notifier queues outgoing emails. Calls return immediately.
type Notifier interface {
	NotifyVerification(ctx context.Context, to, token string)
	NotifyPasswordReset(ctx context.Context, to, token string)
	NotifyContact(ctx context.Context, to string, msg notify.ContactMessage)
}

// AuthHandler handles the invitation lifecycle endpoints.
type AuthHandler struct {
	lifecycle service.LifecycleService
	notifier  Notifier
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(lifecycle service.LifecycleService, notifier Notifier) *AuthHandler {
	return &AuthHandler{lifecycle: lifecycle, notifier: notifier}
}

// RegisterRequest represents an invitation registration request.
type RegisterRequest struct {
	InvitationToken string `json:"invitation_token" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
}

// RegisterResponse acknowledges a registration.
type RegisterResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// EmailVerificationRequest carries the token from the verification link.
type EmailVerificationRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries a bearer session token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ForgetPasswordRequest requests a password reset link.
type ForgetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest sets a new password using a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// Register godoc
// @Summary Register with an invitation token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user-register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reg, err := h.lifecycle.Register(c.Request().Context(), req.InvitationToken, req.Email, req.Password)
	if err != nil {
		return httpError(c, err, "User registration failed", false)
	}

	h.notifier.NotifyVerification(c.Request().Context(), reg.User.EmailAddress(), reg.VerificationToken)
	return c.JSON(http.StatusOK, RegisterResponse{Status: "success", Message: "Verification email send"})
}

// VerifyEmail godoc
// @Summary Confirm an email address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailVerificationRequest true "Verification token"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /email-verification [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req EmailVerificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, err := h.lifecycle.VerifyEmail(c.Request().Context(), req.Token)
	if err != nil {
		return httpError(c, err, "Email verification failed", false)
	}
	return c.JSON(http.StatusOK, LoginResponse{AccessToken: accessToken, TokenType: auth.TokenType})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, err := h.lifecycle.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(c, err, "Incorrect username or password", true)
	}
	return c.JSON(http.StatusOK, LoginResponse{AccessToken: accessToken, TokenType: auth.TokenType})
}

// ForgetPassword godoc
// @Summary Request a password reset link
// @Description Always answers ok so registered addresses cannot be discovered.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgetPasswordRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /forget-password [post]
func (h *AuthHandler) ForgetPassword(c echo.Context) error {
	var req ForgetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ticket, err := h.lifecycle.ForgetPassword(c.Request().Context(), req.Email)
	if err == nil && ticket != nil {
		h.notifier.NotifyPasswordReset(c.Request().Context(), ticket.Email, ticket.Token)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.lifecycle.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return httpError(c, err, "Failed to reset password", true)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_FAILED",
		})
	}
	return nil
}

// httpError maps a domain error to an echo error. bearer adds a WWW-Authenticate challenge to 401s.
func httpError(c echo.Context, err error, message string, bearer bool) error {
	he := apperrors.MapErrorToHTTP(err, message)
	if bearer && he.StatusCode == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
