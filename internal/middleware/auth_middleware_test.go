package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"designhub_backend/internal/models"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func protectedEngine(extra ...gin.HandlerFunc) *gin.Engine {
	engine := newTestEngine()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "principal missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": principal.UserID, "role": principal.Role})
	})
	engine.GET("/protected", handlers...)
	return engine
}

func doRequest(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := utils.GenerateAccessToken(7, "alice", models.RoleDesigner)
	require.NoError(t, err)

	recorder := doRequest(protectedEngine(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"user_id":7`)
	assert.Contains(t, recorder.Body.String(), `"role":"designer"`)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	recorder := doRequest(protectedEngine(), "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	token, err := utils.GenerateAccessToken(7, "alice", models.RoleClient)
	require.NoError(t, err)

	for _, header := range []string{"Token " + token, token, "Bearer"} {
		recorder := doRequest(protectedEngine(), header)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
	}
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	recorder := doRequest(protectedEngine(), "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRoleAuthMiddleware(t *testing.T) {
	adminOnly := protectedEngine(RoleAuthMiddleware(models.RoleAdmin))

	adminToken, err := utils.GenerateAccessToken(1, "root", models.RoleAdmin)
	require.NoError(t, err)
	clientToken, err := utils.GenerateAccessToken(2, "alice", models.RoleClient)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doRequest(adminOnly, "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(adminOnly, "Bearer "+clientToken).Code)
}

func TestRoleAuthMiddlewareMultipleRoles(t *testing.T) {
	staff := protectedEngine(RoleAuthMiddleware(models.RoleDesigner, models.RoleAdmin))

	designerToken, err := utils.GenerateAccessToken(3, "bob", models.RoleDesigner)
	require.NoError(t, err)
	clientToken, err := utils.GenerateAccessToken(4, "carol", models.RoleClient)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doRequest(staff, "Bearer "+designerToken).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(staff, "Bearer "+clientToken).Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	engine := newTestEngine()
	engine.GET("/open", OptionalAuthMiddleware(), func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": principal.UserID})
	})

	// Anonymous request passes through.
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "anonymous")

	// A valid token is recognized.
	token, err := utils.GenerateAccessToken(9, "dana", models.RoleAdmin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	assert.Contains(t, recorder.Body.String(), `"user_id":9`)

	// A bad token is ignored rather than rejected.
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "anonymous")
}
