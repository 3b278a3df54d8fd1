package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
	"github.com/vollmed/clinic-api/internal/domain/doctor"
	"github.com/vollmed/clinic-api/internal/domain/patient"
	"github.com/vollmed/clinic-api/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, appointment.ErrCancellationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, doctor.ErrDuplicateEmail),
		errors.Is(err, doctor.ErrDuplicateDocument),
		errors.Is(err, patient.ErrDuplicateEmail),
		errors.Is(err, patient.ErrDuplicateDocument):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrInvalidRequest),
		errors.Is(err, appointment.ErrInsufficientLeadTime),
		errors.Is(err, appointment.ErrOutsideBusinessHours),
		errors.Is(err, appointment.ErrDoctorScheduleConflict),
		errors.Is(err, appointment.ErrDuplicateAppointment),
		errors.Is(err, appointment.ErrReasonRequired),
		errors.Is(err, appointment.ErrInvalidCancellationReason),
		errors.Is(err, doctor.ErrDoctorNotAvailable),
		errors.Is(err, doctor.ErrDoctorNotActive),
		errors.Is(err, doctor.ErrSpecialtyRequired),
		errors.Is(err, doctor.ErrNoDoctorAvailable),
		errors.Is(err, doctor.ErrInvalidSpecialty),
		errors.Is(err, patient.ErrPatientNotAvailable),
		errors.Is(err, patient.ErrPatientNotActive):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountInactive):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	case errors.Is(err, service.ErrAccountLocked):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error: "account temporarily locked",
			Code:  "ACCOUNT_LOCKED",
		})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// bookingRejectionKind labels rejected bookings for the metrics counter.
func bookingRejectionKind(err error) string {
	switch {
	case errors.Is(err, appointment.ErrInsufficientLeadTime):
		return "insufficient_lead_time"
	case errors.Is(err, appointment.ErrOutsideBusinessHours):
		return "outside_business_hours"
	case errors.Is(err, appointment.ErrDoctorScheduleConflict):
		return "doctor_schedule_conflict"
	case errors.Is(err, appointment.ErrDuplicateAppointment):
		return "duplicate_appointment"
	case errors.Is(err, doctor.ErrDoctorNotFound), errors.Is(err, doctor.ErrDoctorNotAvailable),
		errors.Is(err, doctor.ErrDoctorNotActive):
		return "doctor_unavailable"
	case errors.Is(err, patient.ErrPatientNotFound), errors.Is(err, patient.ErrPatientNotAvailable),
		errors.Is(err, patient.ErrPatientNotActive):
		return "patient_unavailable"
	case errors.Is(err, doctor.ErrSpecialtyRequired), errors.Is(err, doctor.ErrNoDoctorAvailable):
		return "no_doctor_for_specialty"
	default:
		return "other"
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}
