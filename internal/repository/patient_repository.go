package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vollmed/clinic-api/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

var _ patient.Repository = (*PatientRepository)(nil)

func (r *PatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) ExistsByIDAndActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&patient.Patient{}).
		Where("id = ? AND active", id).
		Count(&count).Error
	return count > 0, err
}

func (r *PatientRepository) FindActiveFlagByID(ctx context.Context, id uuid.UUID) (bool, error) {
	// A missing patient reads as inactive.
	var active bool
	err := r.db.WithContext(ctx).Model(&patient.Patient{}).
		Select("active").
		Where("id = ?", id).
		Limit(1).
		Scan(&active).Error
	return active, err
}

func (r *PatientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&patient.Patient{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *PatientRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&patient.Patient{}).
		Where("document = ?", document).
		Count(&count).Error
	return count > 0, err
}

func (r *PatientRepository) ListActive(ctx context.Context, page, pageSize int) ([]*patient.Patient, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&patient.Patient{}).Where("active")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []*patient.Patient
	err := query.
		Order("name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&patients).Error
	return patients, total, err
}
