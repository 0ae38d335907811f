package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tabibi/patient-api/internal/handler"
	"github.com/tabibi/patient-api/internal/middleware"
	"github.com/tabibi/patient-api/internal/service/prescription"
)

type Handler struct {
	service *prescription.Service
}

func NewHandler(service *prescription.Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/v1/prescriptions
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	prescriptions, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}

// Get handles GET /api/v1/prescriptions/:id
func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prescription ID"))
		return
	}

	p, err := h.service.GetOwn(c.Request.Context(), userID, id)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}
