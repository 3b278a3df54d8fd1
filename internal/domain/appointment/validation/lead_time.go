package validation

import (
	"context"
	"time"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
)

const minimumLeadTime = 30 * time.Minute

// MinimumLeadTime rejects bookings less than 30 minutes ahead of the
// evaluation time.
type MinimumLeadTime struct {
	now Clock
}

func NewMinimumLeadTime(now Clock) *MinimumLeadTime {
	if now == nil {
		now = time.Now
	}
	return &MinimumLeadTime{now: now}
}

func (r *MinimumLeadTime) Validate(_ context.Context, cmd *appointment.BookCommand) error {
	if cmd.ScheduledAt.Sub(r.now()) < minimumLeadTime {
		return appointment.ErrInsufficientLeadTime
	}
	return nil
}
