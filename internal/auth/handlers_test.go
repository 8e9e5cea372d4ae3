package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *Service, *TokenIssuer, func()) {
	gin.SetMode(gin.TestMode)

	service, _, cleanup := setupService(t)
	issuer := testIssuer()

	router := gin.New()
	NewController(service, issuer).RegisterRoutes(router)

	return router, service, issuer, cleanup
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestController_Login(t *testing.T) {
	router, service, issuer, cleanup := setupAuthRouter(t)
	defer cleanup()

	_, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	w := postJSON(router, "/auth/token", `{"email": "reader@example.com", "password": "correcthorse"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)

	_, err = issuer.Validate(resp.AccessToken, TokenTypeAccess)
	assert.NoError(t, err)
	_, err = issuer.Validate(resp.RefreshToken, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestController_Login_BadCredentials(t *testing.T) {
	router, service, _, cleanup := setupAuthRouter(t)
	defer cleanup()

	_, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	w := postJSON(router, "/auth/token", `{"email": "reader@example.com", "password": "wronghorse"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestController_Login_MissingFields(t *testing.T) {
	router, _, _, cleanup := setupAuthRouter(t)
	defer cleanup()

	w := postJSON(router, "/auth/token", `{"email": "reader@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_Refresh(t *testing.T) {
	router, service, issuer, cleanup := setupAuthRouter(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	refresh, err := issuer.IssueRefreshToken(user)
	require.NoError(t, err)

	w := postJSON(router, "/auth/refresh-token", `{"refresh_token": "`+refresh+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	_, err = issuer.Validate(resp.AccessToken, TokenTypeAccess)
	assert.NoError(t, err)
	// A fresh refresh token is issued alongside
	_, err = issuer.Validate(resp.RefreshToken, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestController_Refresh_AccessTokenRejected(t *testing.T) {
	router, service, issuer, cleanup := setupAuthRouter(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", "reader", "correcthorse")
	require.NoError(t, err)

	access, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)

	w := postJSON(router, "/auth/refresh-token", `{"refresh_token": "`+access+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
