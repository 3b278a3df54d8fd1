package validation

import (
	"context"
	"fmt"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
	"github.com/vollmed/clinic-api/internal/domain/doctor"
)

// DoctorActive rejects bookings that name a deactivated doctor. Bookings
// without a doctor id are skipped; the doctor assigned later is drawn from
// active doctors only.
type DoctorActive struct {
	doctors doctor.Repository
}

func NewDoctorActive(doctors doctor.Repository) *DoctorActive {
	return &DoctorActive{doctors: doctors}
}

func (r *DoctorActive) Validate(ctx context.Context, cmd *appointment.BookCommand) error {
	if cmd.DoctorID == nil {
		return nil
	}

	active, err := r.doctors.FindActiveFlagByID(ctx, *cmd.DoctorID)
	if err != nil {
		return fmt.Errorf("checking doctor active flag: %w", err)
	}
	if !active {
		return doctor.ErrDoctorNotActive
	}
	return nil
}
