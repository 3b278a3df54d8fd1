package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vollmed/clinic-api/internal/domain/doctor"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

var _ doctor.Repository = (*DoctorRepository)(nil)

func (r *DoctorRepository) Save(ctx context.Context, d *doctor.Doctor) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DoctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *DoctorRepository) ExistsByIDAndActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).
		Where("id = ? AND active", id).
		Count(&count).Error
	return count > 0, err
}

func (r *DoctorRepository) FindActiveFlagByID(ctx context.Context, id uuid.UUID) (bool, error) {
	// A missing doctor reads as inactive.
	var active bool
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).
		Select("active").
		Where("id = ?", id).
		Limit(1).
		Scan(&active).Error
	return active, err
}

func (r *DoctorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *DoctorRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).
		Where("document = ?", document).
		Count(&count).Error
	return count > 0, err
}

func (r *DoctorRepository) FindAvailable(ctx context.Context, specialty doctor.Specialty, at time.Time) ([]*doctor.Doctor, error) {
	var doctors []*doctor.Doctor
	err := r.db.WithContext(ctx).
		Where(`active AND specialty = ? AND NOT EXISTS (
			SELECT 1 FROM clinical.appointments a
			WHERE a.doctor_id = clinical.doctors.id
			  AND a.scheduled_at = ?
			  AND a.cancellation_reason IS NULL
		)`, specialty, at).
		Find(&doctors).Error
	return doctors, err
}

func (r *DoctorRepository) ListActive(ctx context.Context, page, pageSize int) ([]*doctor.Doctor, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&doctor.Doctor{}).Where("active")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []*doctor.Doctor
	err := query.
		Order("name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&doctors).Error
	return doctors, total, err
}
