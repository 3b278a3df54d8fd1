package appointment

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vollmed/clinic-api/internal/domain"
	"github.com/vollmed/clinic-api/internal/domain/doctor"
)

// CancellationReason is the closed set of reasons an appointment may be
// cancelled for. Like doctor.Specialty, it persists and serializes in its
// canonical text form ("Patient withdrew").
type CancellationReason string

const (
	ReasonPatientWithdrew CancellationReason = "patient_withdrew"
	ReasonDoctorCancelled CancellationReason = "doctor_cancelled"
	ReasonOther           CancellationReason = "other"
)

func (r CancellationReason) IsValid() bool {
	switch r {
	case ReasonPatientWithdrew, ReasonDoctorCancelled, ReasonOther:
		return true
	}
	return false
}

func (r CancellationReason) Canonical() string {
	return domain.CanonicalEnum(string(r))
}

// ParseCancellationReason maps any legal textual representation to a
// CancellationReason, ignoring case and surrounding whitespace.
func ParseCancellationReason(text string) (CancellationReason, error) {
	r := CancellationReason(domain.NormalizeEnum(text))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCancellationReason, text)
	}
	return r, nil
}

func (r CancellationReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Canonical())
}

func (r *CancellationReason) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseCancellationReason(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the canonical text form.
func (r CancellationReason) Value() (driver.Value, error) {
	return r.Canonical(), nil
}

func (r *CancellationReason) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseCancellationReason(v)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	case []byte:
		return r.Scan(string(v))
	default:
		return fmt.Errorf("scanning cancellation reason: unsupported type %T", src)
	}
}

// Appointment references exactly one doctor and one patient, both of which
// existed when it was created. The cancellation reason stays nil until the
// appointment is cancelled; cancelling produces a new value that overwrites
// the original row.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`
	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	ScheduledAt time.Time `gorm:"column:scheduled_at;not null;index"`

	CancellationReason *CancellationReason `gorm:"column:cancellation_reason;type:varchar(30)"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

func (a *Appointment) IsCancelled() bool {
	return a.CancellationReason != nil
}

// WithCancellation returns a copy carrying the given reason, id and all other
// fields unchanged. The nil check here backs up the input-boundary one.
// Cancelling an already-cancelled appointment overwrites the reason.
func (a Appointment) WithCancellation(reason *CancellationReason) (Appointment, error) {
	if reason == nil {
		return Appointment{}, ErrReasonRequired
	}
	if !reason.IsValid() {
		return Appointment{}, fmt.Errorf("%w: %q", ErrInvalidCancellationReason, string(*reason))
	}
	next := a
	r := *reason
	next.CancellationReason = &r
	return next, nil
}

// BookCommand is a request to book an appointment. The doctor id is
// optional; when absent, a doctor of the given specialty is assigned
// automatically.
type BookCommand struct {
	DoctorID    *uuid.UUID
	PatientID   uuid.UUID
	ScheduledAt time.Time
	Specialty   *doctor.Specialty
}

type CancelCommand struct {
	AppointmentID uuid.UUID
	Reason        *CancellationReason
}
