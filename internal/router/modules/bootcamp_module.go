package modules

import (
	"github.com/gin-gonic/gin"

	"campdir/internal/domain/entity"
	handlers "campdir/internal/interface/http"
	"campdir/internal/interface/middleware"
	"campdir/pkg/helpers"
)

// BootcampModule registers the bootcamp routes plus the course and review
// routes nested under a bootcamp.
//
// Public:    GET /bootcamps, /bootcamps/search, /bootcamps/radius/:zipcode/:distance,
//            GET /bootcamps/:id, /bootcamps/:id/courses, /bootcamps/:id/reviews
// Protected: POST/PUT/DELETE on bootcamps and the photo upload (publisher, admin),
//            POST /bootcamps/:id/reviews (user, admin)
type BootcampModule struct {
	Bootcamps *handlers.BootcampHandler
	Courses   *handlers.CourseHandler
	Reviews   *handlers.ReviewHandler
	JWT       *helpers.JWTManager
}

func NewBootcampModule(b *handlers.BootcampHandler, c *handlers.CourseHandler, r *handlers.ReviewHandler, jwt *helpers.JWTManager) *BootcampModule {
	return &BootcampModule{Bootcamps: b, Courses: c, Reviews: r, JWT: jwt}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	b := rg.Group("/bootcamps")

	b.GET("", m.Bootcamps.List)
	b.GET("/search", m.Bootcamps.Search)
	b.GET("/radius/:zipcode/:distance", m.Bootcamps.Radius)
	b.GET("/:id", m.Bootcamps.Get)
	b.GET("/:id/courses", m.Courses.List)
	b.GET("/:id/reviews", m.Reviews.List)

	priv := b.Group("")
	priv.Use(middleware.Protect(m.JWT))

	publisher := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)
	priv.POST("", publisher, m.Bootcamps.Create)
	priv.PUT("/:id", publisher, m.Bootcamps.Update)
	priv.DELETE("/:id", publisher, m.Bootcamps.Delete)
	priv.PUT("/:id/photo", publisher, m.Bootcamps.UploadPhoto)
	priv.POST("/:id/courses", publisher, m.Courses.Create)

	priv.POST("/:id/reviews", middleware.Authorize(entity.RoleUser, entity.RoleAdmin), m.Reviews.Create)
}
