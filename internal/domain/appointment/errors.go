package appointment

import "errors"

var (
	ErrInvalidRequest            = errors.New("booking request is required")
	ErrAppointmentNotFound       = errors.New("appointment not found")
	ErrCancellationNotFound      = errors.New("appointment to cancel not found")
	ErrInsufficientLeadTime      = errors.New("appointment must be booked at least 30 minutes in advance")
	ErrOutsideBusinessHours      = errors.New("appointment is outside clinic business hours")
	ErrDoctorScheduleConflict    = errors.New("doctor already has an appointment at this time")
	ErrDuplicateAppointment      = errors.New("patient already has an appointment on this day")
	ErrReasonRequired            = errors.New("cancellation reason is required")
	ErrInvalidCancellationReason = errors.New("invalid cancellation reason")
)
