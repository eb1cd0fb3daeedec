package agent

import (
	"errors"
	"net/http"
	"strconv"

	"agromart/internal/domain"
	"agromart/internal/middleware"
	"agromart/internal/modules/trader"
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
	group := v1.Group("/agents")
	{
		group.POST("/register", h.Register)
		group.POST("/verify-otp", h.VerifyOTP)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	agentOnly := middleware.RequireRole(domain.RoleAgent)

	group := protected.Group("/agents")
	{
		group.GET("/me", agentOnly, h.GetMe)
		group.GET("/:id",
			middleware.RequireAnyRole(domain.RoleAgent, domain.RoleAdmin, domain.RoleSuperAdmin),
			h.GetByID)

		group.POST("/traders", agentOnly, h.RegisterTrader)
		group.GET("/traders", agentOnly, h.ListTraders)

		attendance := group.Group("/attendance", agentOnly)
		{
			attendance.POST("/clock-in", h.ClockIn)
			attendance.POST("/clock-out", h.ClockOut)
			attendance.GET("/status", h.Status)
			attendance.GET("/history", h.History)
			attendance.POST("/pickups", h.RecordPickup)
		}
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
		writeAgentError(c, err)
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

	profile, err := h.service.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Email verified. Your account awaits admin approval.",
		"agent":   profile,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid agent ID")
		return
	}

	profile, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) RegisterTrader(c *gin.Context) {
	var req trader.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	challenge, err := h.service.RegisterTrader(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		if errors.Is(err, trader.ErrPhoneTaken) {
			response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Phone number is already registered")
			return
		}
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, challenge)
}

func (h *Handler) ListTraders(c *gin.Context) {
	traders, err := h.service.ListTraders(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, traders)
}

func (h *Handler) ClockIn(c *gin.Context) {
	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	record, err := h.service.ClockIn(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, record)
}

func (h *Handler) ClockOut(c *gin.Context) {
	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	record, err := h.service.ClockOut(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

func (h *Handler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

func (h *Handler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	records, err := h.service.History(c.Request.Context(), c.GetInt64(middleware.CtxUserID), limit)
	if err != nil {
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}

func (h *Handler) RecordPickup(c *gin.Context) {
	record, err := h.service.RecordPickup(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		writeAgentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

func writeAgentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Email is already registered")
	case errors.Is(err, ErrPhoneTaken):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Phone number is already registered")
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrAgentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agent not found")
	case errors.Is(err, ErrInvalidOTP):
		response.Error(c, http.StatusBadRequest, "INVALID_OTP", "Invalid or expired OTP")
	case errors.Is(err, ErrOTPAlreadySent):
		response.Error(c, http.StatusBadRequest, "OTP_ALREADY_SENT", "OTP already sent. Please wait before requesting again.")
	case errors.Is(err, ErrNotApproved):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Agent account is not approved")
	case errors.Is(err, ErrOutsideGeofence):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "You are outside the market area")
	case errors.Is(err, ErrBeforeOpening):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Market is not open yet")
	case errors.Is(err, ErrAlreadyClockedIn):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Already clocked in today")
	case errors.Is(err, ErrNotClockedIn):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Not clocked in today")
	case errors.Is(err, ErrAlreadyClockedOut):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Already clocked out today")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
