package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campdir/internal/application"
	"campdir/internal/interface/middleware"
	"campdir/internal/query"
	"campdir/pkg/response"
	"campdir/pkg/validation"
)

type BootcampHandler struct {
	Svc *application.BootcampService
}

func NewBootcampHandler(svc *application.BootcampService) *BootcampHandler {
	return &BootcampHandler{Svc: svc}
}

// List handles GET /bootcamps with filter/select/sort/page/limit parameters.
func (h *BootcampHandler) List(c *gin.Context) {
	opts, err := query.Parse(c.Request.URL.Query(), h.Svc.Repo.Fields())
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

func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

func (h *BootcampHandler) Create(c *gin.Context) {
	var in application.CreateBootcampInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, b)
}

func (h *BootcampHandler) Update(c *gin.Context) {
	var in application.UpdateBootcampInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

func (h *BootcampHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}

// UploadPhoto handles PUT /bootcamps/:id/photo with a multipart "file" part.
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "please upload a file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "please upload a file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	name, err := h.Svc.UploadPhoto(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"),
		fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, name)
}

// Radius handles GET /bootcamps/radius/:zipcode/:distance (miles).
func (h *BootcampHandler) Radius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "distance must be a number", nil)
		return
	}
	items, err := h.Svc.Radius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, len(items), nil)
}

// Search handles GET /bootcamps/search?q= backed by the Elasticsearch index.
func (h *BootcampHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, hits, len(hits), nil)
}
