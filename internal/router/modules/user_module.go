package modules

import (
	"github.com/gin-gonic/gin"

	"campdir/internal/domain/entity"
	handlers "campdir/internal/interface/http"
	"campdir/internal/interface/middleware"
	"campdir/pkg/helpers"
)

// UserModule registers the admin-only account CRUD under /users.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	u := rg.Group("/users")
	u.Use(middleware.Protect(m.JWT), middleware.Authorize(entity.RoleAdmin))

	u.GET("", m.Handler.List)
	u.GET("/:id", m.Handler.Get)
	u.POST("", m.Handler.Create)
	u.PUT("/:id", m.Handler.Update)
	u.DELETE("/:id", m.Handler.Delete)
}
