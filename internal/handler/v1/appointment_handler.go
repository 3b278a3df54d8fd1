package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
	"github.com/vollmed/clinic-api/internal/domain/doctor"
	"github.com/vollmed/clinic-api/internal/service"
	"github.com/vollmed/clinic-api/pkg/metrics"
)

type AppointmentHandler struct {
	bookingSvc *service.BookingService
	collector  *metrics.Collector
}

func NewAppointmentHandler(bookingSvc *service.BookingService, collector *metrics.Collector) *AppointmentHandler {
	return &AppointmentHandler{bookingSvc: bookingSvc, collector: collector}
}

type bookAppointmentRequest struct {
	DoctorID    *uuid.UUID        `json:"doctor_id"`
	PatientID   uuid.UUID         `json:"patient_id" binding:"required"`
	ScheduledAt time.Time         `json:"scheduled_at" binding:"required"`
	Specialty   *doctor.Specialty `json:"specialty"`
}

type cancelAppointmentRequest struct {
	AppointmentID uuid.UUID                       `json:"appointment_id" binding:"required"`
	Reason        *appointment.CancellationReason `json:"reason" binding:"required"`
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req bookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.bookingSvc.Book(c.Request.Context(), &appointment.BookCommand{
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		ScheduledAt: req.ScheduledAt,
		Specialty:   req.Specialty,
	})
	if err != nil {
		h.collector.BookingsRejectedTotal.WithLabelValues(bookingRejectionKind(err)).Inc()
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsBookedTotal.Inc()
	respondCreated(c, a)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req cancelAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.bookingSvc.Cancel(c.Request.Context(), &appointment.CancelCommand{
		AppointmentID: req.AppointmentID,
		Reason:        req.Reason,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsCancelled.Inc()
	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.bookingSvc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}
