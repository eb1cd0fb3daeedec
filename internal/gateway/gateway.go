package gateway

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"

	"agromart/internal/middleware"
	"agromart/internal/pkg/response"
	"agromart/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// Identity headers propagated to the user service. Inbound copies are always
// stripped so a client can never impersonate by setting them directly.
const (
	HeaderUserID      = "X-User-Id"
	HeaderUserRole    = "X-User-Role"
	HeaderUserContact = "X-User-Contact"
)

// publicPaths bypass the perimeter filter entirely: registration, login, OTP
// verification, password recovery, the one-time admin seed, and health.
var publicPaths = map[string]struct{}{
	"/health":                    {},
	"/api/v1/auth/login":         {},
	"/api/v1/auth/verify-otp":    {},
	"/api/v1/auth/resend-otp":    {},
	"/api/v1/password/forgot":    {},
	"/api/v1/password/reset":     {},
	"/api/v1/traders/register":   {},
	"/api/v1/traders/verify-otp": {},
	"/api/v1/traders/resend-otp": {},
	"/api/v1/agents/register":    {},
	"/api/v1/agents/verify-otp":  {},
	"/api/v1/buyers/register":    {},
	"/api/v1/admin/seed":         {},
}

func isPublic(path string) bool {
	_, ok := publicPaths[path]
	return ok
}

type TokenValidator interface {
	Validate(tokenStr string) (*token.Claims, error)
}

// Gateway fronts the user service: it terminates the bearer token at the
// perimeter, rejects anything invalid on a protected path, and forwards the
// resolved identity as trusted headers.
type Gateway struct {
	tokens TokenValidator
	proxy  *httputil.ReverseProxy
}

func New(upstream *url.URL, tokens TokenValidator) *Gateway {
	g := &Gateway{tokens: tokens}

	proxy := httputil.NewSingleHostReverseProxy(upstream)
	base := proxy.Director
	proxy.Director = func(req *http.Request) {
		base(req)
		req.Host = upstream.Host
	}
	g.proxy = proxy
	return g
}

// Router builds the gin engine: error logger and CORS, then the perimeter
// filter, then a catch-all that proxies everything to the user service.
func (g *Gateway) Router() *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())
	r.Use(g.Filter())
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(g.Forward)
	return r
}

// Filter is the perimeter authentication filter. Unlike the in-service
// filter, it rejects outright: a protected path with a missing, malformed,
// or invalid token never reaches the upstream.
func (g *Gateway) Filter() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Spoofed identity headers are dropped on every request, public
		// paths included.
		c.Request.Header.Del(HeaderUserID)
		c.Request.Header.Del(HeaderUserRole)
		c.Request.Header.Del(HeaderUserContact)

		if isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Invalid authorization header")
			return
		}

		claims, err := g.tokens.Validate(strings.TrimSpace(raw))
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				abortUnauthorized(c, "TOKEN_EXPIRED", "Token has expired")
				return
			}
			abortUnauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Request.Header.Set(HeaderUserID, strconv.FormatInt(userID, 10))
		c.Request.Header.Set(HeaderUserRole, claims.Role)
		c.Request.Header.Set(HeaderUserContact, claims.Contact)
		c.Next()
	}
}

// Forward hands the request to the upstream user service.
func (g *Gateway) Forward(c *gin.Context) {
	g.proxy.ServeHTTP(c.Writer, c.Request)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	response.Error(c, http.StatusUnauthorized, code, message)
	c.Abort()
}
