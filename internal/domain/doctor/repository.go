package doctor

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Save upserts a doctor keyed by id.
	Save(ctx context.Context, d *Doctor) error

	// FindByID returns ErrDoctorNotFound if no such doctor exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByIDAndActive(ctx context.Context, id uuid.UUID) (bool, error)

	// FindActiveFlagByID returns the active flag of an existing doctor, and
	// false if the doctor does not exist at all.
	FindActiveFlagByID(ctx context.Context, id uuid.UUID) (bool, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByDocument(ctx context.Context, document string) (bool, error)

	// FindAvailable returns all active doctors of the given specialty with no
	// non-cancelled appointment at exactly the given time.
	FindAvailable(ctx context.Context, specialty Specialty, at time.Time) ([]*Doctor, error)

	// ListActive returns a page of active doctors ordered by name, plus the
	// total count of active doctors.
	ListActive(ctx context.Context, page, pageSize int) ([]*Doctor, int64, error)
}
