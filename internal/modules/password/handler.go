package password

import (
	"errors"
	"net/http"

	"agromart/internal/middleware"
	"agromart/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	group := v1.Group("/password")
	{
		group.POST("/forgot", h.Forgot)
		group.POST("/reset", h.Reset)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/password/change", h.Change)
}

func (h *Handler) Change(c *gin.Context) {
	var req ChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Change(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req); err != nil {
		writePasswordError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *Handler) Forgot(c *gin.Context) {
	var req ForgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Forgot(c.Request.Context(), req); err != nil {
		writePasswordError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password reset OTP sent"})
}

func (h *Handler) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Reset(c.Request.Context(), req); err != nil {
		writePasswordError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func writePasswordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCurrentIncorrect):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Current password is incorrect")
	case errors.Is(err, ErrSamePassword):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "New password must be different from the current one")
	case errors.Is(err, ErrOTPOnlyAccount):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "This account does not use a password")
	case errors.Is(err, ErrTraderNotAllowed):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Traders login with phone number and OTP")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrInvalidOTP):
		response.Error(c, http.StatusBadRequest, "INVALID_OTP", "Invalid or expired OTP")
	case errors.Is(err, ErrOTPAlreadySent):
		response.Error(c, http.StatusBadRequest, "OTP_ALREADY_SENT", "OTP already sent. Please wait before requesting again.")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
