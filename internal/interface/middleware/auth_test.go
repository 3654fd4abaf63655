package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"campdir/internal/application"
	"campdir/pkg/helpers"
)

func protectedRouter(jwt *helpers.JWTManager, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/")
	grp.Use(Protect(jwt))
	if len(roles) > 0 {
		grp.Use(Authorize(roles...))
	}
	grp.GET("/secret", func(c *gin.Context) {
		actor := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	return r
}

func TestProtectRejectsMissingToken(t *testing.T) {
	r := protectedRouter(helpers.NewJWTManager("s", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secret", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectAcceptsBearerHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("s", time.Hour)
	token, _, err := jwt.Generate("u1", "publisher")
	require.NoError(t, err)

	r := protectedRouter(jwt)
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "u1")
}

func TestProtectAcceptsSessionCookie(t *testing.T) {
	jwt := helpers.NewJWTManager("s", time.Hour)
	token, _, err := jwt.Generate("u2", "user")
	require.NoError(t, err)

	r := protectedRouter(jwt)
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "u2")
}

func TestProtectRejectsForgedToken(t *testing.T) {
	other := helpers.NewJWTManager("other-secret", time.Hour)
	token, _, err := other.Generate("u1", "admin")
	require.NoError(t, err)

	r := protectedRouter(helpers.NewJWTManager("s", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeRoleGate(t *testing.T) {
	jwt := helpers.NewJWTManager("s", time.Hour)
	token, _, err := jwt.Generate("u1", "user")
	require.NoError(t, err)

	r := protectedRouter(jwt, "publisher", "admin")
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestActorFromUnprotectedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Equal(t, application.Actor{}, ActorFrom(c))
}
