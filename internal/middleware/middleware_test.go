package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"charitybridge/internal/auth"
	"charitybridge/internal/models"
	"charitybridge/internal/services"
	"charitybridge/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	userOne = "5b0f3c7e-8a51-4c1e-9a37-0d2f6b1e4a01"
	adminID = "5b0f3c7e-8a51-4c1e-9a37-0d2f6b1e4a02"
	alice   = "5b0f3c7e-8a51-4c1e-9a37-0d2f6b1e4a03"
	bob     = "5b0f3c7e-8a51-4c1e-9a37-0d2f6b1e4a04"
)

type countingSyncer struct {
	calls []services.Identity
	err   error
}

func (s *countingSyncer) SyncUser(_ context.Context, _ *gorm.DB, id services.Identity) error {
	s.calls = append(s.calls, id)
	return s.err
}

func token(t *testing.T, userID, role string) string {
	t.Helper()
	auth.Init("middleware-test-secret", time.Hour)
	tok, err := auth.GenerateToken(userID, role, userID+"@example.org", "Tester")
	require.NoError(t, err)
	return tok
}

func newRouter(users UserSyncer, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(users, nil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	r.GET("/me", handlers...)
	r.POST("/me", handlers...)
	return r
}

func do(r http.Handler, method, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/me", nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AcceptsValidToken(t *testing.T) {
	syncer := &countingSyncer{}
	r := newRouter(syncer)

	w := do(r, http.MethodGet, token(t, userOne, "charity"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+userOne+`","role":"charity"}`, w.Body.String())

	// second request within the TTL does not resync
	do(r, http.MethodGet, token(t, userOne, "charity"))
	require.Len(t, syncer.calls, 1)
	assert.Equal(t, models.UserRoleCharity, syncer.calls[0].Role)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	r := newRouter(nil)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "not-a-jwt").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, token(t, userOne, "superuser")).Code)
}

func TestAuthMiddleware_RejectsNonUUIDSubject(t *testing.T) {
	syncer := &countingSyncer{}
	r := newRouter(syncer)

	for _, sub := range []string{"user-1", "42", "5b0f3c7e-8a51-4c1e-9a37"} {
		w := do(r, http.MethodGet, token(t, sub, "donor"))
		assert.Equal(t, http.StatusUnauthorized, w.Code, sub)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN", sub)
	}
	assert.Empty(t, syncer.calls, "a bad subject never reaches the user table")
}

func TestAuthMiddleware_CanonicalizesSubject(t *testing.T) {
	r := newRouter(nil)

	w := do(r, http.MethodGet, token(t, "5B0F3C7E-8A51-4C1E-9A37-0D2F6B1E4A01", "donor"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+userOne+`","role":"donor"}`, w.Body.String())
}

func TestAuthMiddleware_SyncFailure(t *testing.T) {
	r := newRouter(&countingSyncer{err: errors.New("db down")})
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, token(t, userOne, "donor")).Code)
}

func TestRequireRoles(t *testing.T) {
	r := newRouter(nil, RequireRoles(models.UserRoleAdmin))

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, token(t, userOne, "donor")).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, token(t, adminID, "admin")).Code)
}

func TestRateLimiter_LimitsWritesPerUser(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, nil)
	r := newRouter(nil, rl.Middleware())

	aliceTok := token(t, alice, "donor")
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, aliceTok).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, aliceTok).Code)

	w := do(r, http.MethodPost, aliceTok)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// reads and other users are unaffected
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, aliceTok).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, token(t, bob, "donor")).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "0b0f7a3c-8d5e-4c1a-9f51-2f1c3f8b9e10")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "0b0f7a3c-8d5e-4c1a-9f51-2f1c3f8b9e10", w.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(requestIDHeader))
	assert.Len(t, w.Header().Get(requestIDHeader), 36)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://app.example.org"))
	r.Any("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.org", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDBMiddleware_PrefersContextTransaction(t *testing.T) {
	pool := &gorm.DB{}
	tx := &gorm.DB{}

	var got *gorm.DB
	r := gin.New()
	r.Use(DBMiddleware(pool))
	r.GET("/", func(c *gin.Context) {
		v, _ := c.Get(string(contextkeys.DBContextKey))
		got = v.(*gorm.DB)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Same(t, pool, got)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextkeys.WithDB(req.Context(), tx))
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Same(t, tx, got)
}
