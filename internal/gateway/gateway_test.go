package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"agromart/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoedHeaders struct {
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	Contact string `json:"contact"`
	Path    string `json:"path"`
}

// newFixture starts an upstream that echoes the identity headers it received
// and serves the gateway router in front of it over a real listener, so the
// proxy path is exercised end to end.
func newFixture(t *testing.T, tokens *token.Service) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(echoedHeaders{
			UserID:  r.Header.Get(HeaderUserID),
			Role:    r.Header.Get(HeaderUserRole),
			Contact: r.Header.Get(HeaderUserContact),
			Path:    r.URL.Path,
		})
	}))
	t.Cleanup(upstream.Close)

	target, err := url.Parse(upstream.URL)
	require.NoError(t, err)

	gw := httptest.NewServer(New(target, tokens).Router())
	t.Cleanup(gw.Close)
	return gw
}

func doRequest(t *testing.T, method, rawURL string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, rawURL, nil)
	require.NoError(t, err)
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func decodeEcho(t *testing.T, body string) echoedHeaders {
	t.Helper()
	var echo echoedHeaders
	require.NoError(t, json.Unmarshal([]byte(body), &echo))
	return echo
}

func TestPublicPathBypassesFilter(t *testing.T) {
	tokens := token.New("test-secret", time.Hour, time.Hour)
	gw := newFixture(t, tokens)

	resp, body := doRequest(t, http.MethodPost, gw.URL+"/api/v1/auth/login", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/v1/auth/login", decodeEcho(t, body).Path)
}

func TestHealthIsPublic(t *testing.T) {
	tokens := token.New("test-secret", time.Hour, time.Hour)
	gw := newFixture(t, tokens)

	resp, _ := doRequest(t, http.MethodGet, gw.URL+"/health", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedPathWithoutToken(t *testing.T) {
	tokens := token.New("test-secret", time.Hour, time.Hour)
	gw := newFixture(t, tokens)

	resp, body := doRequest(t, http.MethodGet, gw.URL+"/api/v1/traders/me", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "UNAUTHORIZED")
}

func TestProtectedPathMalformedHeader(t *testing.T) {
	tokens := token.New("test-secret", time.Hour, time.Hour)
	gw := newFixture(t, tokens)

	resp, _ := doRequest(t, http.MethodGet, gw.URL+"/api/v1/traders/me", http.Header{
		"Authorization": {"Token abc123"},
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedPathTamperedToken(t *testing.T) {
	tokens := token.New("test-secret", time.Hour, time.Hour)
	gw := newFixture(t, tokens)

	other := token.New("other-secret", time.Hour, time.Hour)
	forged, err := other.Generate(7, "attacker@example.com", "SUPER_ADMIN")
	require.NoError(t, err)

	resp, _ := doRequest(t, http.MethodGet, gw.URL+"/api/v1/admin/dashboard", http.Header{
		"Authorization": {"Bearer " + forged},
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedPathExpiredToken(t *testing.T) {
	tokens := token.New("test-secret", -time.Minute, time.Hour)
	gw := newFixture(t, tokens)

	expired, err := tokens.Generate(7, "+2348012345678", "TRADER")
	require.NoError(t, err)

	resp, body := doRequest(t, http.MethodGet, gw.URL+"/api/v1/traders/me", http.Header{
		"Authorization": {"Bearer " + expired},
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "TOKEN_EXPIRED")
}

func TestValidTokenInjectsIdentityHeaders(t *testing.T) {
	tokens := token.New("test-secret", time.Hour, time.Hour)
	gw := newFixture(t, tokens)

	access, err := tokens.Generate(42, "+2348012345678", "TRADER")
	require.NoError(t, err)

	resp, body := doRequest(t, http.MethodGet, gw.URL+"/api/v1/traders/me", http.Header{
		"Authorization": {"Bearer " + access},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	echo := decodeEcho(t, body)
	assert.Equal(t, "42", echo.UserID)
	assert.Equal(t, "TRADER", echo.Role)
	assert.Equal(t, "+2348012345678", echo.Contact)
}

func TestSpoofedIdentityHeadersAreStripped(t *testing.T) {
	tokens := token.New("test-secret", time.Hour, time.Hour)
	gw := newFixture(t, tokens)

	access, err := tokens.Generate(42, "+2348012345678", "TRADER")
	require.NoError(t, err)

	resp, body := doRequest(t, http.MethodGet, gw.URL+"/api/v1/traders/me", http.Header{
		"Authorization": {"Bearer " + access},
		HeaderUserID:    {"1"},
		HeaderUserRole:  {"SUPER_ADMIN"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	echo := decodeEcho(t, body)
	assert.Equal(t, "42", echo.UserID)
	assert.Equal(t, "TRADER", echo.Role)
}

func TestSpoofedHeadersStrippedOnPublicPath(t *testing.T) {
	tokens := token.New("test-secret", time.Hour, time.Hour)
	gw := newFixture(t, tokens)

	resp, body := doRequest(t, http.MethodPost, gw.URL+"/api/v1/buyers/register", http.Header{
		HeaderUserID:   {"1"},
		HeaderUserRole: {"ADMIN"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	echo := decodeEcho(t, body)
	assert.Empty(t, echo.UserID)
	assert.Empty(t, echo.Role)
}
