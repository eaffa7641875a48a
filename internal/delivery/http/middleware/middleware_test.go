package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRateLimitMiddleware_InMemoryFallback(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(RateLimitConfig{
		Limit:     2,
		Window:    time.Minute,
		KeyPrefix: "rl:test:" + t.Name() + ":",
		KeyFunc:   clientIPKey,
	}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, false, body(t, w)["success"])
}

func TestRateLimitMiddleware_SeparateKeys(t *testing.T) {
	prefix := "rl:test:" + t.Name() + ":"
	r := gin.New()
	r.Use(RateLimitMiddleware(RateLimitConfig{
		Limit:     1,
		Window:    time.Minute,
		KeyPrefix: prefix,
		KeyFunc:   func(c *gin.Context) string { return c.Query("who") },
	}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodGet, "/ping?who=a", nil)).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodGet, "/ping?who=b", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodGet, "/ping?who=a", nil)).Code)
}

func TestPasswordResetLimitIsSeparateFromLogin(t *testing.T) {
	login := LoginRateLimitConfig(1, time.Minute)
	reset := PasswordResetRateLimitConfig(1, time.Minute)
	assert.NotEqual(t, login.KeyPrefix, reset.KeyPrefix)

	r := gin.New()
	r.POST("/login", RateLimitMiddleware(login), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/forgot-password", RateLimitMiddleware(reset), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	require.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodPost, "/forgot-password", nil)).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodPost, "/forgot-password", nil)).Code)

	assert.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodPost, "/login", nil)).Code)
}

func withActor(actor *domain.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(domain.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	t.Run("missing actor", func(t *testing.T) {
		r := gin.New()
		r.GET("/x", RequirePermission("role-list"), ok)
		w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("lacks permission", func(t *testing.T) {
		r := gin.New()
		r.GET("/x", withActor(&domain.Actor{UserID: 1, Permissions: []string{"user-list"}}), RequirePermission("role-list"), ok)
		w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "User does not have the right permissions.", body(t, w)["message"])
	})

	t.Run("holds permission", func(t *testing.T) {
		r := gin.New()
		r.GET("/x", withActor(&domain.Actor{UserID: 1, Permissions: []string{"role-list"}}), RequirePermission("role-list"), ok)
		w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestActorKey(t *testing.T) {
	var got string
	r := gin.New()
	r.GET("/x", withActor(&domain.Actor{UserID: 42}), func(c *gin.Context) { got = ActorKey(c) })
	serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "42", got)
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(apperror.Conflict("Record already exists.", map[string]int{"id": 3}))
	})
	r.GET("/validation", func(c *gin.Context) {
		_ = c.Error(apperror.Validation("The given data was invalid.", map[string][]string{"email": {"The email field is required."}}))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	b := body(t, w)
	assert.Equal(t, false, b["success"])
	assert.Equal(t, map[string]interface{}{"existing_record": map[string]interface{}{"id": float64(3)}}, b["data"])

	w = serve(r, httptest.NewRequest(http.MethodGet, "/validation", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, body(t, w)["errors"], "email")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	b = body(t, w)
	assert.Equal(t, "An unexpected error occurred. Please try again later.", b["message"])
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.NotEmpty(t, b["request_id"])
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://jobs.example.com/"}, true))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://jobs.example.com")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://jobs.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders_NoStoreForAuthenticated(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer 1|secret")
	w := serve(r, req)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}
