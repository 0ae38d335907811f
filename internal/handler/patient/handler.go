package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tabibi/patient-api/internal/handler"
	"github.com/tabibi/patient-api/internal/middleware"
	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/service/patient"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

// Me handles GET /api/v1/patients/me
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	p, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

// Update handles PUT /api/v1/patients/me
func (h *Handler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.service.Update(c.Request.Context(), userID, &req)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

// Dashboard handles GET /api/v1/patients/me/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(dashboard))
}
