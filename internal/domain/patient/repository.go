package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Save upserts a patient keyed by id.
	Save(ctx context.Context, p *Patient) error

	// FindByID returns ErrPatientNotFound if no such patient exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	ExistsByIDAndActive(ctx context.Context, id uuid.UUID) (bool, error)

	// FindActiveFlagByID returns the active flag of an existing patient, and
	// false if the patient does not exist at all.
	FindActiveFlagByID(ctx context.Context, id uuid.UUID) (bool, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByDocument(ctx context.Context, document string) (bool, error)

	// ListActive returns a page of active patients ordered by name, plus the
	// total count of active patients.
	ListActive(ctx context.Context, page, pageSize int) ([]*Patient, int64, error)
}
