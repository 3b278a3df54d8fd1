package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vollmed/clinic-api/internal/domain/appointment"
	"github.com/vollmed/clinic-api/internal/domain/appointment/validation"
	"github.com/vollmed/clinic-api/internal/domain/doctor"
	"github.com/vollmed/clinic-api/internal/domain/patient"
)

// BookingService decides whether a requested appointment is legal and, when
// no doctor is named, assigns one at random among the available candidates.
type BookingService struct {
	appointments appointment.Repository
	doctors      doctor.Repository
	patients     patient.Repository
	rules        []validation.Rule
	auditSvc     *AuditService
	log          *zap.Logger

	// rand.Rand is not safe for concurrent use
	mu  sync.Mutex
	rng *rand.Rand
}

func NewBookingService(
	appointments appointment.Repository,
	doctors doctor.Repository,
	patients patient.Repository,
	rules []validation.Rule,
	auditSvc *AuditService,
	rng *rand.Rand,
	log *zap.Logger,
) *BookingService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BookingService{
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		rules:        rules,
		auditSvc:     auditSvc,
		rng:          rng,
		log:          log,
	}
}

// Book runs the pre-checks and the rule set, resolves the doctor, and
// persists the new appointment. Validation precedes any write, so a failed
// booking leaves no partial state behind.
func (s *BookingService) Book(ctx context.Context, cmd *appointment.BookCommand) (*appointment.Appointment, error) {
	if cmd == nil {
		return nil, appointment.ErrInvalidRequest
	}

	if cmd.DoctorID != nil {
		exists, err := s.doctors.ExistsByID(ctx, *cmd.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("checking doctor existence: %w", err)
		}
		if !exists {
			return nil, doctor.ErrDoctorNotFound
		}

		active, err := s.doctors.ExistsByIDAndActive(ctx, *cmd.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("checking doctor availability: %w", err)
		}
		if !active {
			return nil, doctor.ErrDoctorNotAvailable
		}
	}

	if cmd.PatientID != uuid.Nil {
		active, err := s.patients.ExistsByIDAndActive(ctx, cmd.PatientID)
		if err != nil {
			return nil, fmt.Errorf("checking patient availability: %w", err)
		}
		if !active {
			return nil, patient.ErrPatientNotAvailable
		}
	}

	// First failing rule aborts the booking
	for _, rule := range s.rules {
		if err := rule.Validate(ctx, cmd); err != nil {
			return nil, err
		}
	}

	p, err := s.patients.FindByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, err
	}

	var doctorID uuid.UUID
	if cmd.DoctorID != nil {
		doctorID = *cmd.DoctorID
	} else {
		d, err := s.SelectDoctor(ctx, cmd.Specialty, cmd.ScheduledAt)
		if err != nil {
			return nil, err
		}
		doctorID = d.ID
	}

	a := &appointment.Appointment{
		DoctorID:    doctorID,
		PatientID:   p.ID,
		ScheduledAt: cmd.ScheduledAt,
	}

	if err := s.appointments.Save(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
	})

	s.log.Info("appointment booked",
		zap.String("appointment_id", a.ID.String()),
		zap.String("doctor_id", doctorID.String()),
		zap.String("patient_id", p.ID.String()),
		zap.Time("scheduled_at", a.ScheduledAt),
	)

	return a, nil
}

// SelectDoctor picks a doctor of the given specialty uniformly at random
// among the active ones with no appointment at exactly the given time.
func (s *BookingService) SelectDoctor(ctx context.Context, specialty *doctor.Specialty, at time.Time) (*doctor.Doctor, error) {
	if specialty == nil {
		return nil, doctor.ErrSpecialtyRequired
	}

	candidates, err := s.doctors.FindAvailable(ctx, *specialty, at)
	if err != nil {
		return nil, fmt.Errorf("finding available doctors: %w", err)
	}
	if len(candidates) == 0 {
		return nil, doctor.ErrNoDoctorAvailable
	}

	s.mu.Lock()
	i := s.rng.Intn(len(candidates))
	s.mu.Unlock()

	return candidates[i], nil
}

// Cancel records a cancellation reason on an existing appointment,
// overwriting the stored row. Cancelling twice overwrites the reason again.
func (s *BookingService) Cancel(ctx context.Context, cmd *appointment.CancelCommand) error {
	if cmd == nil {
		return appointment.ErrInvalidRequest
	}

	a, err := s.appointments.FindByID(ctx, cmd.AppointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return appointment.ErrCancellationNotFound
		}
		return err
	}

	cancelled, err := a.WithCancellation(cmd.Reason)
	if err != nil {
		return err
	}

	if err := s.appointments.Save(ctx, &cancelled); err != nil {
		s.log.Error("failed to cancel appointment", zap.Error(err))
		return fmt.Errorf("cancelling appointment: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "cancel",
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
		Changes:      fmt.Sprintf(`{"cancellation_reason":%q}`, cmd.Reason.Canonical()),
	})

	s.log.Info("appointment cancelled",
		zap.String("appointment_id", a.ID.String()),
		zap.String("reason", cmd.Reason.Canonical()),
	)

	return nil
}

// GetAppointment looks up an appointment by id.
func (s *BookingService) GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return s.appointments.FindByID(ctx, id)
}
