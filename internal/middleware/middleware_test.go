package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ingresos_gastos/internal/model"
	"ingresos_gastos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubResolver resolves a fixed set of tokens and records invocations.
type stubResolver struct {
	identities map[string]*model.Identity
	calls      int
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	s.calls++
	identity, ok := s.identities[token]
	if !ok {
		return nil, service.ErrUnauthenticated
	}
	return identity, nil
}

// newGatedRouter builds a router with one admin route and one plain
// authenticated route, both backed by a handler that records whether the
// protected resource was reached.
func newGatedRouter(resolver *stubResolver, touched *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := func(c *gin.Context) {
		*touched = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}

	authMW := SessionAuthMiddleware(resolver)
	router.GET("/gated", authMW, handler)
	router.GET("/admin", authMW, AdminMiddleware(), handler)
	return router
}

func request(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionAuthMiddleware_NoCookie(t *testing.T) {
	resolver := &stubResolver{}
	touched := false
	router := newGatedRouter(resolver, &touched)

	w := request(router, "/gated", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"No autenticado"}`, w.Body.String())
	assert.False(t, touched)
	assert.Zero(t, resolver.calls) // rejected before the resolver, let alone the store
}

func TestSessionAuthMiddleware_InvalidToken(t *testing.T) {
	resolver := &stubResolver{identities: map[string]*model.Identity{}}
	touched := false
	router := newGatedRouter(resolver, &touched)

	w := request(router, "/gated", "bogus")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"No autenticado"}`, w.Body.String())
	assert.False(t, touched)
}

func TestSessionAuthMiddleware_ValidToken(t *testing.T) {
	resolver := &stubResolver{identities: map[string]*model.Identity{
		"tok": {ID: "u1", Email: "ana@example.com", Name: "Ana", Role: model.RoleUser},
	}}
	touched := false
	router := newGatedRouter(resolver, &touched)

	w := request(router, "/gated", "tok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, touched)
}

func TestAdminMiddleware_RejectsUserRole(t *testing.T) {
	resolver := &stubResolver{identities: map[string]*model.Identity{
		"tok": {ID: "u1", Role: model.RoleUser},
	}}
	touched := false
	router := newGatedRouter(resolver, &touched)

	w := request(router, "/admin", "tok")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Acceso denegado. Se requiere rol de administrador."}`, w.Body.String())
	assert.False(t, touched)
}

func TestAdminMiddleware_AllowsAdminRole(t *testing.T) {
	resolver := &stubResolver{identities: map[string]*model.Identity{
		"tok": {ID: "u1", Role: model.RoleAdmin},
	}}
	touched := false
	router := newGatedRouter(resolver, &touched)

	w := request(router, "/admin", "tok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, touched)
}

func TestAdminMiddleware_UnauthenticatedOnAdminRoute(t *testing.T) {
	resolver := &stubResolver{}
	touched := false
	router := newGatedRouter(resolver, &touched)

	w := request(router, "/admin", "")

	// 401 wins over 403: the session gate runs first.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, touched)
}

func TestIdentityFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := IdentityFromContext(c)
	assert.False(t, ok)

	want := &model.Identity{ID: "u1", Role: model.RoleAdmin}
	c.Set(IdentityKey, want)

	got, ok := IdentityFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
