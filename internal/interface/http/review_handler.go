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

type ReviewHandler struct {
	Svc *application.ReviewService
}

func NewReviewHandler(svc *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

// List serves both GET /reviews and GET /bootcamps/:id/reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	if bootcampID := c.Param("id"); bootcampID != "" {
		items, err := h.Svc.ListByBootcamp(c.Request.Context(), bootcampID)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.List(c, items, len(items), nil)
		return
	}

	opts, err := query.Parse(c.Request.URL.Query(), h.Svc.Reviews.Fields())
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

func (h *ReviewHandler) Get(c *gin.Context) {
	rv, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, rv)
}

// Create handles POST /bootcamps/:id/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	var in application.CreateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rv, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, rv)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var in application.UpdateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rv, err := h.Svc.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
