package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campdir/internal/application"
	"campdir/internal/query"
	"campdir/pkg/response"
	"campdir/pkg/validation"
)

// UserHandler is the admin-only account management surface under /users.
type UserHandler struct {
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

func (h *UserHandler) List(c *gin.Context) {
	opts, err := query.Parse(c.Request.URL.Query(), h.Svc.Users.Fields())
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

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	var in application.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	var in application.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
