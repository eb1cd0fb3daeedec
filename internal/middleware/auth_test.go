package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agromart/internal/domain"
	"agromart/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func protectedRouter(tokens *token.Service, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// A nil resolver skips the account lookup; resolver behavior is covered
	// by the auth module tests.
	router.Use(Authenticate(tokens, nil))

	handlers := append(guards, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64(CtxUserID),
			"role":    c.GetString(CtxRole),
		})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokens := token.New("test-secret-123", time.Hour, time.Hour)
	validToken, _ := tokens.Generate(42, "+2348012345678", string(domain.RoleTrader))

	router := protectedRouter(tokens, RequireAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "TRADER")
}

func TestAuthenticate_InvalidTokenPassesThroughUnauthenticated(t *testing.T) {
	tokens := token.New("secret", time.Hour, time.Hour)

	router := protectedRouter(tokens, RequireAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuthenticate_NoToken(t *testing.T) {
	tokens := token.New("secret", time.Hour, time.Hour)

	router := protectedRouter(tokens, RequireAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuthenticate_PublicRouteWithoutToken(t *testing.T) {
	tokens := token.New("secret", time.Hour, time.Hour)

	router := protectedRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	// No guard, so the unauthenticated request still reaches the handler.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	tokens := token.New("secret", time.Hour, time.Hour)
	buyerToken, _ := tokens.Generate(7, "buyer@example.com", string(domain.RoleBuyer))

	router := protectedRouter(tokens, RequireRole(domain.RoleTrader))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+buyerToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireRole_AnyOfSeveral(t *testing.T) {
	tokens := token.New("secret", time.Hour, time.Hour)
	adminToken, _ := tokens.Generate(1, "admin@example.com", string(domain.RoleAdmin))

	router := protectedRouter(tokens, AdminOnly())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSuperAdminOnly_RejectsAdmin(t *testing.T) {
	tokens := token.New("secret", time.Hour, time.Hour)
	adminToken, _ := tokens.Generate(1, "admin@example.com", string(domain.RoleAdmin))

	router := protectedRouter(tokens, SuperAdminOnly())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
