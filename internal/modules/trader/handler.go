package trader

import (
	"errors"
	"net/http"
	"strconv"

	"agromart/internal/domain"
	"agromart/internal/middleware"
	"agromart/internal/pkg/response"
	"agromart/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	group := v1.Group("/traders")
	{
		group.POST("/register", h.Register)
		group.POST("/verify-otp", h.VerifyOTP)
		group.POST("/resend-otp", h.ResendOTP)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/traders")
	{
		group.GET("/me", middleware.RequireRole(domain.RoleTrader), h.GetMe)
		group.PUT("/me", middleware.RequireRole(domain.RoleTrader), h.UpdateMe)
		group.DELETE("/me", middleware.RequireRole(domain.RoleTrader), h.DeactivateMe)
		group.POST("/change-phone", middleware.RequireRole(domain.RoleTrader), h.ChangePhone)
		group.POST("/change-phone/verify", middleware.RequireRole(domain.RoleTrader), h.ConfirmPhoneChange)
		group.GET("/:id",
			middleware.RequireAnyRole(domain.RoleTrader, domain.RoleAgent, domain.RoleAdmin, domain.RoleSuperAdmin),
			h.GetByID)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	challenge, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeTraderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, challenge)
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	tokens, err := h.service.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		writeTraderError(c, err)
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
		writeTraderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, challenge)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid trader ID")
		return
	}

	profile, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeTraderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) GetMe(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		writeTraderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid fields", details)
		return
	}

	profile, err := h.service.Update(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		writeTraderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) ChangePhone(c *gin.Context) {
	var req ChangePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	challenge, err := h.service.RequestPhoneChange(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		writeTraderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, challenge)
}

func (h *Handler) ConfirmPhoneChange(c *gin.Context) {
	var req ConfirmPhoneChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ConfirmPhoneChange(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req); err != nil {
		writeTraderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Phone number updated"})
}

func (h *Handler) DeactivateMe(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.GetInt64(middleware.CtxUserID)); err != nil {
		writeTraderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Account deactivated"})
}

func writeTraderError(c *gin.Context, err error) {
	var statusErr *AccountStatusError
	switch {
	case errors.As(err, &statusErr):
		response.Error(c, http.StatusUnauthorized, "ACCOUNT_NOT_ACTIVE", statusErr.Error())
	case errors.Is(err, ErrPhoneTaken):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Phone number is already registered")
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrTraderNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Trader not found")
	case errors.Is(err, ErrInvalidOTP):
		response.Error(c, http.StatusBadRequest, "INVALID_OTP", "Invalid or expired OTP")
	case errors.Is(err, ErrOTPAlreadySent):
		response.Error(c, http.StatusBadRequest, "OTP_ALREADY_SENT", "OTP already sent. Please wait before requesting again.")
	case errors.Is(err, ErrAlreadyVerified):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Trader is already verified")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
