package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"agromart/internal/domain"
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

// RegisterPublicRoutes exposes only the one-time seed endpoint; it locks
// itself once any admin exists.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/admin/seed", h.Seed)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/admin", middleware.AdminOnly())
	{
		group.POST("/admins", middleware.SuperAdminOnly(), h.CreateAdmin)

		group.GET("/agents/pending", h.PendingAgents)
		group.GET("/agents/:id", h.AgentDetail)
		group.POST("/agents/:id/approve", h.ApproveAgent)
		group.POST("/agents/:id/reject", h.RejectAgent)

		group.GET("/users", h.Users)
		group.POST("/users/:id/suspend", h.SuspendUser)
		group.POST("/users/:id/ban", h.BanUser)
		group.POST("/users/:id/reactivate", h.ReactivateUser)

		group.GET("/dashboard", h.Dashboard)
		group.GET("/audit-logs", h.AuditLogs)
	}
}

func (h *Handler) Seed(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Seed(c.Request.Context(), req)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.CreateAdmin(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) PendingAgents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	agents, total, err := h.service.PendingAgents(c.Request.Context(), page, limit)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, agents, page, limit, total)
}

func (h *Handler) AgentDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, profile, err := h.service.AgentDetail(c.Request.Context(), id)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user, "agent": profile})
}

func (h *Handler) ApproveAgent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ApproveAgentRequest
	_ = c.ShouldBindJSON(&req) // notes are optional

	profile, err := h.service.ApproveAgent(c.Request.Context(), c.GetInt64(middleware.CtxUserID), id, req.Notes)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"agent": profile})
}

func (h *Handler) RejectAgent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RejectAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
		return
	}

	profile, err := h.service.RejectAgent(c.Request.Context(), c.GetInt64(middleware.CtxUserID), id, req.Reason)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"agent": profile})
}

func (h *Handler) Users(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	role := domain.Role(c.Query("role"))
	status := domain.UserStatus(c.Query("status"))

	users, total, err := h.service.Users(c.Request.Context(), role, status, page, limit)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, users, page, limit, total)
}

func (h *Handler) SuspendUser(c *gin.Context) {
	h.moderate(c, h.service.SuspendUser, "User suspended")
}

func (h *Handler) BanUser(c *gin.Context) {
	h.moderate(c, h.service.BanUser, "User banned")
}

func (h *Handler) ReactivateUser(c *gin.Context) {
	h.moderate(c, h.service.ReactivateUser, "User reactivated")
}

type moderationFunc func(ctx context.Context, actorID, targetID int64, reason string) error

func (h *Handler) moderate(c *gin.Context, action moderationFunc, message string) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ModerationRequest
	_ = c.ShouldBindJSON(&req) // reason is optional

	if err := action(c.Request.Context(), c.GetInt64(middleware.CtxUserID), id, req.Reason); err != nil {
		writeAdminError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": message})
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		writeAdminError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) AuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, total, err := h.service.AuditLogs(c.Request.Context(), page, limit)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, logs, page, limit, total)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid ID")
		return 0, false
	}
	return id, true
}

func writeAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAdminsExist):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Admin accounts already exist")
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Email is already registered")
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrAgentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
	case errors.Is(err, ErrAlreadyProcessed):
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Application has already been processed")
	case errors.Is(err, ErrSuperAdminRequired):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only a super admin can perform this action")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
