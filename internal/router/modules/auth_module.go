package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"campdir/internal/container"
	handlers "campdir/internal/interface/http"
	"campdir/internal/interface/middleware"
	"campdir/pkg/helpers"
)

// AuthModule registers registration, login and the password lifecycle under
// /auth. The credential endpoints carry tighter per-IP rate limits.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	forgotLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	a := rg.Group("/auth")
	a.POST("/register", loginLimiter, m.Handler.Register)
	a.POST("/login", loginLimiter, m.Handler.Login)
	a.GET("/logout", m.Handler.Logout)
	a.POST("/forgotpassword", forgotLimiter, m.Handler.ForgotPassword)
	a.PUT("/resetpassword/:resettoken", loginLimiter, m.Handler.ResetPassword)

	priv := a.Group("")
	priv.Use(middleware.Protect(m.JWT))
	priv.GET("/me", m.Handler.Me)
	priv.PUT("/updatedetails", m.Handler.UpdateDetails)
	priv.PUT("/updatepassword", m.Handler.UpdatePassword)
}
