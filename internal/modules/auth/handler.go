package auth

import (
	"errors"
	"net/http"

	"agromart/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages the HTTP surface of the unified login flow.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/verify-otp", h.VerifyOTP)
		authGroup.POST("/resend-otp", h.ResendOTP)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	if result.Challenge != nil {
		response.Success(c, http.StatusOK, result.Challenge)
		return
	}
	response.Success(c, http.StatusOK, result.Tokens)
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	tokens, err := h.service.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

func (h *Handler) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	challenge, err := h.service.ResendOTP(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, challenge)
}

// writeAuthError maps guard and flow failures onto the error envelope.
// Credential failures never say which factor was wrong; lock state is
// surfaced so the client can show a useful message.
func writeAuthError(c *gin.Context, err error) {
	var statusErr *AccountStatusError

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, ErrAccountLocked):
		response.Error(c, http.StatusUnauthorized, "ACCOUNT_LOCKED", "Account locked due to too many failed attempts. Try again later.")
	case errors.Is(err, ErrPendingApproval):
		response.Error(c, http.StatusUnauthorized, "PENDING_APPROVAL", "Your account is pending admin approval")
	case errors.As(err, &statusErr):
		response.Error(c, http.StatusUnauthorized, "ACCOUNT_NOT_ACTIVE", statusErr.Error())
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrPasswordRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password is required for email login")
	case errors.Is(err, ErrPhoneLoginOnly):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Phone login is only available to traders")
	case errors.Is(err, ErrTraderPassword):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Traders must login with phone number and OTP")
	case errors.Is(err, ErrInvalidOTP):
		response.Error(c, http.StatusBadRequest, "INVALID_OTP", "Invalid or expired OTP")
	case errors.Is(err, ErrOTPAlreadySent):
		response.Error(c, http.StatusBadRequest, "OTP_ALREADY_SENT", "OTP already sent. Please wait before requesting again.")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
