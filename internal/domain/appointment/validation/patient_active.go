package validation

import (
	"context"
	"fmt"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
	"github.com/vollmed/clinic-api/internal/domain/patient"
)

// PatientActive rejects bookings for deactivated patients.
type PatientActive struct {
	patients patient.Repository
}

func NewPatientActive(patients patient.Repository) *PatientActive {
	return &PatientActive{patients: patients}
}

func (r *PatientActive) Validate(ctx context.Context, cmd *appointment.BookCommand) error {
	active, err := r.patients.FindActiveFlagByID(ctx, cmd.PatientID)
	if err != nil {
		return fmt.Errorf("checking patient active flag: %w", err)
	}
	if !active {
		return patient.ErrPatientNotActive
	}
	return nil
}
