package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vollmed/clinic-api/internal/domain"
	"github.com/vollmed/clinic-api/internal/domain/patient"
)

func newPatientService(t *testing.T) (*PatientService, *memStore) {
	t.Helper()
	store := newMemStore()
	auditSvc := NewAuditService(&memAuditRepo{}, zap.NewNop())
	t.Cleanup(auditSvc.Shutdown)
	return NewPatientService(&memPatientRepo{store: store}, auditSvc, zap.NewNop()), store
}

func validPatientCommand() *patient.RegisterCommand {
	return &patient.RegisterCommand{
		Name:     "Ana Lima",
		Email:    "ana.lima@example.com",
		Document: "12345678901",
		Phone:    "11966665555",
		Address: domain.Address{
			Street:     "Avenida Paulista",
			District:   "Bela Vista",
			City:       "Sao Paulo",
			Number:     "1500",
			Complement: "Apto 21",
		},
	}
}

func TestPatientRegister(t *testing.T) {
	svc, _ := newPatientService(t)

	p, err := svc.Register(context.Background(), validPatientCommand())
	require.NoError(t, err)
	assert.True(t, p.Active)
}

func TestPatientRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newPatientService(t)

	_, err := svc.Register(context.Background(), validPatientCommand())
	require.NoError(t, err)

	dup := validPatientCommand()
	dup.Document = "98765432109"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, patient.ErrDuplicateEmail)
}

func TestPatientRegisterDuplicateDocument(t *testing.T) {
	svc, _ := newPatientService(t)

	_, err := svc.Register(context.Background(), validPatientCommand())
	require.NoError(t, err)

	dup := validPatientCommand()
	dup.Email = "other@example.com"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, patient.ErrDuplicateDocument)
}

func TestPatientRegisterValidation(t *testing.T) {
	svc, _ := newPatientService(t)

	cmd := validPatientCommand()
	cmd.Document = "1234" // too short
	cmd.Phone = ""

	_, err := svc.Register(context.Background(), cmd)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "document must contain 8 to 11 digits")
	assert.Contains(t, verr.Fields, "phone is required")
}

func TestPatientDeactivate(t *testing.T) {
	svc, store := newPatientService(t)

	p, err := svc.Register(context.Background(), validPatientCommand())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), p.ID))
	assert.False(t, store.patients[p.ID].Active)
}
