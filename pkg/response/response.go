package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campdir/pkg/apperr"
)

// Envelope is the uniform API response shape:
// {success:true, data, count?, pagination?} or {success:false, error}.
type Envelope struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Count      *int   `json:"count,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
	Token      string `json:"token,omitempty"`
	Error      any    `json:"error,omitempty"`
}

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// List writes a collection response with its count and optional pagination block.
func List(c *gin.Context, data any, count int, pagination any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count, Pagination: pagination})
}

// Token writes the auth envelope used by register/login/reset: the signed
// session token travels in the body next to the cookie.
func Token(c *gin.Context, status int, token string) {
	c.JSON(status, Envelope{Success: true, Token: token})
}

func Fail(c *gin.Context, status int, message string, details any) {
	c.JSON(status, Envelope{Success: false, Error: message, Data: details})
}

// FromError is the single translation point from the apperr taxonomy to HTTP
// statuses. Handlers hand every error here instead of picking codes locally.
func FromError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.Validation:
		status = http.StatusBadRequest
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Authentication:
		status = http.StatusUnauthorized
	case apperr.Authorization:
		status = http.StatusForbidden
	case apperr.Conflict:
		status = http.StatusConflict
	case apperr.External:
		status = http.StatusBadGateway
	}
	c.JSON(status, Envelope{Success: false, Error: apperr.Message(err)})
}
