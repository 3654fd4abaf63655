package modules

import (
	"github.com/gin-gonic/gin"

	"campdir/internal/domain/entity"
	handlers "campdir/internal/interface/http"
	"campdir/internal/interface/middleware"
	"campdir/pkg/helpers"
)

// CourseModule registers the top-level course routes; creation lives under
// the bootcamp module as a nested route.
type CourseModule struct {
	Handler *handlers.CourseHandler
	JWT     *helpers.JWTManager
}

func NewCourseModule(h *handlers.CourseHandler, jwt *helpers.JWTManager) *CourseModule {
	return &CourseModule{Handler: h, JWT: jwt}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	c := rg.Group("/courses")

	c.GET("", m.Handler.List)
	c.GET("/:id", m.Handler.Get)

	priv := c.Group("")
	priv.Use(middleware.Protect(m.JWT), middleware.Authorize(entity.RolePublisher, entity.RoleAdmin))
	priv.PUT("/:id", m.Handler.Update)
	priv.DELETE("/:id", m.Handler.Delete)
}
