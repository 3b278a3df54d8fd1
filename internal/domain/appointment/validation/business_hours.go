package validation

import (
	"context"
	"time"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
)

// BusinessHours rejects bookings on Sundays and outside the clinic's
// opening hours. An 18:00 booking is the last one accepted.
type BusinessHours struct{}

func NewBusinessHours() *BusinessHours {
	return &BusinessHours{}
}

func (r *BusinessHours) Validate(_ context.Context, cmd *appointment.BookCommand) error {
	at := cmd.ScheduledAt
	sunday := at.Weekday() == time.Sunday
	beforeOpening := at.Hour() < OpeningHour
	afterClosing := at.Hour() > ClosingHour

	if sunday || beforeOpening || afterClosing {
		return appointment.ErrOutsideBusinessHours
	}
	return nil
}
