package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

// Save upserts by id, so cancellation overwrites the stored row.
func (r *AppointmentRepository) Save(ctx context.Context, a *appointment.Appointment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) ExistsByDoctorAndTime(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).
		Where("doctor_id = ? AND scheduled_at = ? AND cancellation_reason IS NULL", doctorID, at).
		Count(&count).Error
	return count > 0, err
}

func (r *AppointmentRepository) ExistsByPatientBetween(ctx context.Context, patientID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).
		Where("patient_id = ? AND scheduled_at BETWEEN ? AND ?", patientID, start, end).
		Count(&count).Error
	return count > 0, err
}
