package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/tabibi/patient-api/internal/handler"
	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/service/auth"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	code, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"auth_code": code,
	}))
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

// Refresh handles POST /api/v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

// Callback handles GET /api/v1/auth/callback?code=...&next=...
//
// It exchanges the one-time code for a session and redirects to the landing
// destination resolved for the identity's role. Any failure redirects to the
// error page instead of rendering a JSON error, since the caller is a browser
// following a confirmation link.
func (h *Handler) Callback(c *gin.Context) {
	code := c.Query("code")
	next := c.Query("next")

	if code == "" {
		c.Redirect(http.StatusFound, auth.PathAuthError)
		return
	}

	tokens, dest, err := h.service.ExchangeCode(c.Request.Context(), code, next)
	if err != nil {
		c.Error(err)
		c.Redirect(http.StatusFound, auth.PathAuthError)
		return
	}

	q := url.Values{}
	q.Set("access_token", tokens.AccessToken)
	q.Set("refresh_token", tokens.RefreshToken)
	c.Redirect(http.StatusFound, dest+"#"+q.Encode())
}
