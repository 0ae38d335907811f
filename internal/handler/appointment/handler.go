package appointment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tabibi/patient-api/internal/handler"
	"github.com/tabibi/patient-api/internal/middleware"
	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/service/booking"
	"github.com/tabibi/patient-api/pkg/metrics"
)

type Handler struct {
	service *booking.Service
	metrics *metrics.Metrics
}

func NewHandler(service *booking.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

// Book handles POST /api/v1/appointments
func (h *Handler) Book(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.Book(c.Request.Context(), userID, &req)
	if err != nil {
		status, message := handler.StatusForError(err)
		if status == http.StatusConflict {
			h.metrics.BookingConflicts.Inc()
		}
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	h.metrics.AppointmentsBooked.Inc()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

// List handles GET /api/v1/appointments?upcoming=true&limit=10
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	upcoming := c.Query("upcoming") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	appointments, err := h.service.ListOwn(c.Request.Context(), userID, upcoming, limit)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// Get handles GET /api/v1/appointments/:id
func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	apt, err := h.service.GetOwn(c.Request.Context(), userID, id)
	if err != nil {
		status, message := handler.StatusForError(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

// Cancel handles POST /api/v1/appointments/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, id); err != nil {
		status, message := handler.StatusForError(err)
		c.Error(err)
		c.JSON(status, handler.NewErrorResponse(message))
		return
	}

	h.metrics.AppointmentsCancelled.Inc()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"status": string(model.AppointmentStatusCancelled),
	}))
}
