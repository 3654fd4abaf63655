package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campdir/internal/application"
	"campdir/internal/interface/middleware"
	"campdir/internal/query"
	"campdir/pkg/response"
	"campdir/pkg/validation"
)

type CourseHandler struct {
	Svc *application.CourseService
}

func NewCourseHandler(svc *application.CourseService) *CourseHandler {
	return &CourseHandler{Svc: svc}
}

// List serves both GET /courses and GET /bootcamps/:id/courses. The nested
// form returns the bootcamp's full course list without pagination.
func (h *CourseHandler) List(c *gin.Context) {
	if bootcampID := c.Param("id"); bootcampID != "" {
		items, err := h.Svc.ListByBootcamp(c.Request.Context(), bootcampID)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.List(c, items, len(items), nil)
		return
	}

	opts, err := query.Parse(c.Request.URL.Query(), h.Svc.Courses.Fields())
	if err != nil {
		response.FromError(c, err)
		return
	}
	items, total, err := h.Svc.List(c.Request.Context(), opts)
	if err != nil {
		response.FromError(c, err)
		return
	}
	data := query.ApplySelect(items, opts.Select)
	response.List(c, data, len(items), query.Paginate(opts.Page, opts.Limit, total))
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, course)
}

// Create handles POST /bootcamps/:id/courses.
func (h *CourseHandler) Create(c *gin.Context) {
	var in application.CreateCourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var in application.UpdateCourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course, err := h.Svc.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
