// Package validation holds the booking rules applied before an appointment
// is created. Each rule is an independent predicate over the booking
// command; rules run in the fixed order Default returns them in, and the
// first failure aborts the booking.
package validation

import (
	"context"
	"time"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
	"github.com/vollmed/clinic-api/internal/domain/doctor"
	"github.com/vollmed/clinic-api/internal/domain/patient"
)

type Rule interface {
	Validate(ctx context.Context, cmd *appointment.BookCommand) error
}

// Default returns the clinic's booking rules in their evaluation order.
func Default(
	doctors doctor.Repository,
	patients patient.Repository,
	appointments appointment.Repository,
) []Rule {
	return []Rule{
		NewMinimumLeadTime(nil),
		NewBusinessHours(),
		NewDoctorActive(doctors),
		NewPatientActive(patients),
		NewDoctorScheduleConflict(appointments),
		NewPatientSameDay(appointments),
	}
}

// OpeningHour and ClosingHour bound the clinic's operating window. Bookings
// at the closing hour itself are still accepted.
const (
	OpeningHour = 7
	ClosingHour = 18
)

// Clock lets tests pin "now" for the lead-time rule.
type Clock func() time.Time
