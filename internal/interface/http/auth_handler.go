package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campdir/internal/application"
	"campdir/internal/interface/middleware"
	"campdir/pkg/helpers"
	"campdir/pkg/response"
	"campdir/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// sendToken writes the session both ways: as the response token and as the
// HTTP-only cookie.
func (h *AuthHandler) sendToken(c *gin.Context, status int, s *application.Session) {
	h.Cookies.SetToken(c, s.Token, s.Expires)
	response.Token(c, status, s.Token)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in application.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	s, err := h.Svc.Register(c.Request.Context(), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.sendToken(c, http.StatusCreated, s)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in application.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "please provide an email and password", validation.ToDetails(err))
		return
	}
	s, err := h.Svc.Login(c.Request.Context(), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, s)
}

// Logout clears the session cookie. Tokens are stateless, so the bearer form
// stays valid until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var in application.UpdateDetailsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateDetails(c.Request.Context(), middleware.ActorFrom(c), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var in application.UpdatePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	s, err := h.Svc.UpdatePassword(c.Request.Context(), middleware.ActorFrom(c), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, s)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), in.Email); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "email sent")
}

// ResetPassword handles PUT /auth/resetpassword/:resettoken.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var in struct {
		Password string `json:"password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	s, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("resettoken"), in.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, s)
}
