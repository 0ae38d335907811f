package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tabibi/patient-api/internal/handler"
	"github.com/tabibi/patient-api/internal/middleware"
	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/service/booking"
	"github.com/tabibi/patient-api/internal/service/doctor"
)

type Handler struct {
	service    *doctor.Service
	bookingSvc *booking.Service
}

func NewHandler(service *doctor.Service, bookingSvc *booking.Service) *Handler {
	return &Handler{service: service, bookingSvc: bookingSvc}
}

// List handles GET /api/v1/doctors
func (h *Handler) List(c *gin.Context) {
	doctors, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		status, message := handler.StatusForError(err)
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

// Get handles GET /api/v1/doctors/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	doc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doc))
}

// Schedule handles GET /api/v1/doctors/:id/schedule
func (h *Handler) Schedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	schedule, err := h.bookingSvc.GetSchedule(c.Request.Context(), id)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(schedule))
}

// CompleteProfile handles POST /api/v1/doctors/complete-profile
func (h *Handler) CompleteProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req model.CompleteDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doc, err := h.service.CompleteProfile(c.Request.Context(), userID, &req)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doc))
}
