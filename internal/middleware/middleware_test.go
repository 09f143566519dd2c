package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"MentalHealthSentiment_WebProject/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	valid, err := tokens.GenerateToken(9, "alice")
	require.NoError(t, err)
	foreign, err := auth.NewTokenManager("other", time.Hour).GenerateToken(9, "alice")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id, "username": c.GetString(ContextUsername)})
	})

	tests := []struct {
		name   string
		header string
		status int
		errMsg string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Invalid authorization header format"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"foreign secret", "Bearer " + foreign, http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer " + valid, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, errorBody(t, w))
				return
			}
			assert.JSONEq(t, `{"id":9,"username":"alice"}`, w.Body.String())
		})
	}
}

func TestAuthMiddleware_ExpiredTokenAbortsOnce(t *testing.T) {
	issuer := auth.NewTokenManager("secret", time.Nanosecond)
	token, err := issuer.GenerateToken(1, "alice")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	reached := false
	r := gin.New()
	r.GET("/me", AuthMiddleware(issuer), func(c *gin.Context) { reached = true })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has expired", errorBody(t, w))
	assert.False(t, reached)
}

func TestInviteCodeMiddleware(t *testing.T) {
	handler := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	open := gin.New()
	open.POST("/signup", InviteCodeMiddleware(""), handler)
	w := serve(open, httptest.NewRequest(http.MethodPost, "/signup", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	gated := gin.New()
	gated.POST("/signup", InviteCodeMiddleware("letmein"), handler)

	w = serve(gated, httptest.NewRequest(http.MethodPost, "/signup", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/signup", nil)
	req.Header.Set(InviteCodeHeader, "wrong")
	assert.Equal(t, http.StatusForbidden, serve(gated, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/signup", nil)
	req.Header.Set(InviteCodeHeader, "letmein")
	assert.Equal(t, http.StatusNoContent, serve(gated, req).Code)
}

func TestLoginRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/login", LoginRateLimit(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		codes = append(codes, serve(r, req).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// other clients have their own bucket
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestLoginRateLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.POST("/login", LoginRateLimit(0, 0), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/login", nil)).Code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "abc-123", entries[1].ContextMap()["request_id"])
	assert.Equal(t, int64(500), entries[1].ContextMap()["status"])
}

func TestHealthHandlers(t *testing.T) {
	healthy := CheckerFunc(func(context.Context) error { return nil })
	broken := CheckerFunc(func(context.Context) error { return errors.New("model not loaded") })

	r := gin.New()
	r.GET("/healthz", LivenessHandler)
	r.GET("/ready-ok", ReadinessHandler(map[string]HealthChecker{"database": healthy}))
	r.GET("/ready-bad", ReadinessHandler(map[string]HealthChecker{"database": healthy, "model": broken}))

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ready-ok", nil)).Code)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ready-bad", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var status HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "healthy", status.Checks["database"].Status)
	assert.Equal(t, CheckStatus{Status: "unhealthy", Message: "model not loaded"}, status.Checks["model"])
}
