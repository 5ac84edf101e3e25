package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"careerconnect/internal/auth"
	"careerconnect/internal/models"
	"careerconnect/internal/store/memstore"
)

func newGuard(t *testing.T) (*AuthMiddleware, *auth.TokenProvider, *memstore.Store) {
	t.Helper()
	mem := memstore.New()
	tokens := auth.NewTokenProvider("test-secret", time.Hour)
	cache := NewRoleCache(nil, time.Minute)
	return NewAuthMiddleware(tokens, mem.Stores().Users, cache, zap.NewNop()), tokens, mem
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	guard, _, _ := newGuard(t)

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	guard.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	guard, _, _ := newGuard(t)

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	guard.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateMissingProfile(t *testing.T) {
	guard, tokens, _ := newGuard(t)

	token, err := tokens.Issue("ghost")
	require.NoError(t, err)

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	guard.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateResolvesPrincipal(t *testing.T) {
	guard, tokens, mem := newGuard(t)
	require.NoError(t, mem.Stores().Users.Create(context.Background(), &models.User{
		ID:    "u-1",
		Email: "a@x.com",
		Name:  "Aarav",
		Role:  models.RoleStudent,
	}))

	token, err := tokens.Issue("u-1")
	require.NoError(t, err)

	var got Principal
	handler := guard.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		got = p
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, models.RoleStudent, got.Role)
}

func TestAuthenticateSecondResolutionFromCache(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	cache := NewRoleCache(client, time.Minute)

	mem := memstore.New()
	tokens := auth.NewTokenProvider("test-secret", time.Hour)
	guard := NewAuthMiddleware(tokens, mem.Stores().Users, cache, zap.NewNop())

	require.NoError(t, mem.Stores().Users.Create(context.Background(), &models.User{
		ID:    "u-1",
		Email: "a@x.com",
		Name:  "Aarav",
		Role:  models.RoleStudent,
	}))
	token, err := tokens.Issue("u-1")
	require.NoError(t, err)

	handler := guard.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, srv.Exists("role:u-1"))

	// resolved from redis: the store can no longer answer, the guard still does
	brokenGuard := NewAuthMiddleware(tokens, memstore.New().Stores().Users, cache, zap.NewNop())
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	brokenGuard.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleDenies(t *testing.T) {
	called := false
	handler := RequireRole(models.RoleAdmin)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	ctx := withPrincipal(req.Context(), Principal{UserID: "u-1", Role: models.RoleStudent})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called, "handler must not run for a denied role")
}

func TestRequireRoleAllowList(t *testing.T) {
	called := false
	handler := RequireRole(models.RoleInstitute, models.RoleAdmin)(okHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/api/courses", nil)
	ctx := withPrincipal(req.Context(), Principal{UserID: "u-2", Role: models.RoleInstitute})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRoleCacheRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	cache := NewRoleCache(client, time.Minute)

	p := Principal{UserID: "u-1", Email: "a@x.com", Name: "Aarav", Role: models.RoleStudent}
	cache.Set(context.Background(), p)

	got, ok := cache.Get(context.Background(), "u-1")
	require.True(t, ok)
	assert.Equal(t, p, *got)

	cache.Invalidate(context.Background(), "u-1")
	_, ok = cache.Get(context.Background(), "u-1")
	assert.False(t, ok)
}

func TestRoleCacheExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	cache := NewRoleCache(client, time.Second)

	cache.Set(context.Background(), Principal{UserID: "u-1", Role: models.RoleStudent})
	srv.FastForward(2 * time.Second)

	_, ok := cache.Get(context.Background(), "u-1")
	assert.False(t, ok)
}

func TestRoleCacheNilClient(t *testing.T) {
	cache := NewRoleCache(nil, time.Minute)
	cache.Set(context.Background(), Principal{UserID: "u-1"})
	_, ok := cache.Get(context.Background(), "u-1")
	assert.False(t, ok)
}
