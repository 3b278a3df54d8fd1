package validation

import (
	"context"
	"fmt"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
)

// DoctorScheduleConflict rejects bookings when the named doctor already has
// a non-cancelled appointment at exactly the requested time. The check is by
// exact timestamp equality, not a time-range overlap. When no doctor is
// named yet, the selection query enforces the same predicate.
type DoctorScheduleConflict struct {
	appointments appointment.Repository
}

func NewDoctorScheduleConflict(appointments appointment.Repository) *DoctorScheduleConflict {
	return &DoctorScheduleConflict{appointments: appointments}
}

func (r *DoctorScheduleConflict) Validate(ctx context.Context, cmd *appointment.BookCommand) error {
	if cmd.DoctorID == nil {
		return nil
	}

	conflict, err := r.appointments.ExistsByDoctorAndTime(ctx, *cmd.DoctorID, cmd.ScheduledAt)
	if err != nil {
		return fmt.Errorf("checking doctor schedule: %w", err)
	}
	if conflict {
		return appointment.ErrDoctorScheduleConflict
	}
	return nil
}
