package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vollmed/clinic-api/internal/domain"
	"github.com/vollmed/clinic-api/internal/domain/appointment"
	"github.com/vollmed/clinic-api/internal/domain/doctor"
	"github.com/vollmed/clinic-api/internal/domain/patient"
	"github.com/vollmed/clinic-api/pkg/auth"
)

// memStore backs the in-memory repository fakes. All repositories share one
// store so cross-entity queries (doctor availability) see the same data.
type memStore struct {
	mu           sync.Mutex
	doctors      map[uuid.UUID]doctor.Doctor
	patients     map[uuid.UUID]patient.Patient
	appointments map[uuid.UUID]appointment.Appointment
}

func newMemStore() *memStore {
	return &memStore{
		doctors:      make(map[uuid.UUID]doctor.Doctor),
		patients:     make(map[uuid.UUID]patient.Patient),
		appointments: make(map[uuid.UUID]appointment.Appointment),
	}
}

func (s *memStore) addDoctor(d doctor.Doctor) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	s.doctors[d.ID] = d
	return d.ID
}

func (s *memStore) addPatient(p patient.Patient) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.patients[p.ID] = p
	return p.ID
}

func (s *memStore) addAppointment(a appointment.Appointment) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.appointments[a.ID] = a
	return a.ID
}

func (s *memStore) doctorBusyAt(id uuid.UUID, at time.Time) bool {
	for _, a := range s.appointments {
		if a.DoctorID == id && a.ScheduledAt.Equal(at) && !a.IsCancelled() {
			return true
		}
	}
	return false
}

type memDoctorRepo struct{ store *memStore }

var _ doctor.Repository = (*memDoctorRepo)(nil)

func (r *memDoctorRepo) Save(_ context.Context, d *doctor.Doctor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.store.doctors[d.ID] = *d
	return nil
}

func (r *memDoctorRepo) FindByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.doctors[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return &d, nil
}

func (r *memDoctorRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.doctors[id]
	return ok, nil
}

func (r *memDoctorRepo) ExistsByIDAndActive(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.doctors[id]
	return ok && d.Active, nil
}

func (r *memDoctorRepo) FindActiveFlagByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.doctors[id].Active, nil
}

func (r *memDoctorRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, d := range r.store.doctors {
		if d.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDoctorRepo) ExistsByDocument(_ context.Context, document string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, d := range r.store.doctors {
		if d.Document == document {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDoctorRepo) FindAvailable(_ context.Context, specialty doctor.Specialty, at time.Time) ([]*doctor.Doctor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*doctor.Doctor
	for _, d := range r.store.doctors {
		if d.Active && d.Specialty == specialty && !r.store.doctorBusyAt(d.ID, at) {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memDoctorRepo) ListActive(_ context.Context, page, pageSize int) ([]*doctor.Doctor, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*doctor.Doctor
	for _, d := range r.store.doctors {
		if d.Active {
			d := d
			all = append(all, &d)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

type memPatientRepo struct{ store *memStore }

var _ patient.Repository = (*memPatientRepo)(nil)

func (r *memPatientRepo) Save(_ context.Context, p *patient.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.store.patients[p.ID] = *p
	return nil
}

func (r *memPatientRepo) FindByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return &p, nil
}

func (r *memPatientRepo) ExistsByIDAndActive(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.patients[id]
	return ok && p.Active, nil
}

func (r *memPatientRepo) FindActiveFlagByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.patients[id].Active, nil
}

func (r *memPatientRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.patients {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPatientRepo) ExistsByDocument(_ context.Context, document string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.patients {
		if p.Document == document {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPatientRepo) ListActive(_ context.Context, page, pageSize int) ([]*patient.Patient, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*patient.Patient
	for _, p := range r.store.patients {
		if p.Active {
			p := p
			all = append(all, &p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

type memAppointmentRepo struct{ store *memStore }

var _ appointment.Repository = (*memAppointmentRepo)(nil)

func (r *memAppointmentRepo) Save(_ context.Context, a *appointment.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.store.appointments[a.ID] = *a
	return nil
}

func (r *memAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *memAppointmentRepo) ExistsByDoctorAndTime(_ context.Context, doctorID uuid.UUID, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.doctorBusyAt(doctorID, at), nil
}

func (r *memAppointmentRepo) ExistsByPatientBetween(_ context.Context, patientID uuid.UUID, start, end time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.appointments {
		if a.PatientID == patientID && !a.ScheduledAt.Before(start) && !a.ScheduledAt.After(end) {
			return true, nil
		}
	}
	return false, nil
}

func contextWithTestClaims(userID uuid.UUID, role domain.Role, ip string) context.Context {
	ctx := auth.ContextWithClaims(context.Background(), &domain.Claims{UserID: userID, Role: role})
	return auth.ContextWithClientIP(ctx, ip)
}

type memAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *memAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}
