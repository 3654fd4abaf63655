package modules

import (
	"github.com/gin-gonic/gin"

	"campdir/internal/domain/entity"
	handlers "campdir/internal/interface/http"
	"campdir/internal/interface/middleware"
	"campdir/pkg/helpers"
)

// ReviewModule registers the top-level review routes; creation lives under
// the bootcamp module as a nested route.
type ReviewModule struct {
	Handler *handlers.ReviewHandler
	JWT     *helpers.JWTManager
}

func NewReviewModule(h *handlers.ReviewHandler, jwt *helpers.JWTManager) *ReviewModule {
	return &ReviewModule{Handler: h, JWT: jwt}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	r := rg.Group("/reviews")

	r.GET("", m.Handler.List)
	r.GET("/:id", m.Handler.Get)

	priv := r.Group("")
	priv.Use(middleware.Protect(m.JWT), middleware.Authorize(entity.RoleUser, entity.RoleAdmin))
	priv.PUT("/:id", m.Handler.Update)
	priv.DELETE("/:id", m.Handler.Delete)
}
