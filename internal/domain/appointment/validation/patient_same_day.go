package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
)

// PatientSameDay rejects bookings for patients who already have an
// appointment within the clinic's operating window of the same calendar day.
type PatientSameDay struct {
	appointments appointment.Repository
}

func NewPatientSameDay(appointments appointment.Repository) *PatientSameDay {
	return &PatientSameDay{appointments: appointments}
}

func (r *PatientSameDay) Validate(ctx context.Context, cmd *appointment.BookCommand) error {
	at := cmd.ScheduledAt
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), OpeningHour, 0, 0, 0, at.Location())
	dayEnd := time.Date(at.Year(), at.Month(), at.Day(), ClosingHour, 0, 0, 0, at.Location())

	duplicate, err := r.appointments.ExistsByPatientBetween(ctx, cmd.PatientID, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("checking patient schedule: %w", err)
	}
	if duplicate {
		return appointment.ErrDuplicateAppointment
	}
	return nil
}
