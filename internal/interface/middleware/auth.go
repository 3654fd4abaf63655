package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campdir/internal/application"
	"campdir/pkg/helpers"
	"campdir/pkg/response"
)

const ctxActorKey = "actor"

// Protect validates the session token and attaches the actor to the request.
// The token is taken from the Authorization header first, then from the
// session cookie set at login.
func Protect(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if v, err := c.Cookie("token"); err == nil {
				token = v
			}
		}
		if token == "" || token == "none" {
			response.Fail(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			c.Abort()
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			c.Abort()
			return
		}

		c.Set(ctxActorKey, application.Actor{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// Authorize restricts a route to the given roles. Must run after Protect.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		response.Fail(c, http.StatusForbidden,
			fmt.Sprintf("user role %s is not authorized to access this route", actor.Role), nil)
		c.Abort()
	}
}

// ActorFrom returns the authenticated actor set by Protect, or the zero value
// on unprotected routes.
func ActorFrom(c *gin.Context) application.Actor {
	if v, ok := c.Get(ctxActorKey); ok {
		if a, ok := v.(application.Actor); ok {
			return a
		}
	}
	return application.Actor{}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
