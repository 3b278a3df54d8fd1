package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Save upserts an appointment keyed by id. Cancellation overwrites the
	// original row rather than appending a new one.
	Save(ctx context.Context, a *Appointment) error

	// FindByID returns ErrAppointmentNotFound if no such appointment exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// ExistsByDoctorAndTime reports whether the doctor has a non-cancelled
	// appointment at exactly the given time.
	ExistsByDoctorAndTime(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error)

	// ExistsByPatientBetween reports whether the patient has any appointment
	// scheduled within [start, end].
	ExistsByPatientBetween(ctx context.Context, patientID uuid.UUID, start, end time.Time) (bool, error)
}
