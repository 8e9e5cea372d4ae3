package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraryhub/libraryhub/internal/database/users"
)

func setupProtectedRouter(t *testing.T) (*gin.Engine, *Service, *users.Repository, *TokenIssuer, func()) {
	gin.SetMode(gin.TestMode)

	service, store, cleanup := setupService(t)
	issuer := testIssuer()
	middleware := NewMiddleware(service, issuer)

	router := gin.New()
	router.GET("/me", middleware.RequireUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	router.GET("/admin", middleware.RequireUser(), middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, service, store, issuer, cleanup
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware_RequireUser(t *testing.T) {
	router, service, _, issuer, cleanup := setupProtectedRouter(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)

	w := doRequest(router, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_RequireUser_NoToken(t *testing.T) {
	router, _, _, _, cleanup := setupProtectedRouter(t)
	defer cleanup()

	w := doRequest(router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestMiddleware_RequireUser_RefreshTokenRejected(t *testing.T) {
	router, service, _, issuer, cleanup := setupProtectedRouter(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	refresh, err := issuer.IssueRefreshToken(user)
	require.NoError(t, err)

	w := doRequest(router, "/me", refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_RequireUser_InactiveUser(t *testing.T) {
	router, service, store, issuer, cleanup := setupProtectedRouter(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)

	// Token was issued before deactivation but must stop working
	user.IsActive = false
	require.NoError(t, store.Update(user))

	w := doRequest(router, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_RequireAdmin(t *testing.T) {
	router, service, _, issuer, cleanup := setupProtectedRouter(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)
	token, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)

	w := doRequest(router, "/admin", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
