package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vollmed/clinic-api/internal/domain"
	"github.com/vollmed/clinic-api/internal/domain/doctor"
)

func newDoctorService(t *testing.T) (*DoctorService, *memStore) {
	t.Helper()
	store := newMemStore()
	auditSvc := NewAuditService(&memAuditRepo{}, zap.NewNop())
	t.Cleanup(auditSvc.Shutdown)
	return NewDoctorService(&memDoctorRepo{store: store}, auditSvc, zap.NewNop()), store
}

func validDoctorCommand() *doctor.RegisterCommand {
	return &doctor.RegisterCommand{
		Name:      "Dr. Alice Reyes",
		Phone:     "11988887777",
		Email:     "alice.reyes@vollmed.example",
		Document:  "123.456",
		Specialty: doctor.SpecialtyCardiology,
		Address: domain.Address{
			Street:     "Rua das Flores",
			District:   "Centro",
			City:       "Sao Paulo",
			Number:     "100",
			Complement: "Sala 3",
		},
	}
}

func TestDoctorRegister(t *testing.T) {
	svc, _ := newDoctorService(t)

	d, err := svc.Register(context.Background(), validDoctorCommand())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.True(t, d.Active)
	assert.Equal(t, doctor.SpecialtyCardiology, d.Specialty)
}

func TestDoctorRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newDoctorService(t)

	_, err := svc.Register(context.Background(), validDoctorCommand())
	require.NoError(t, err)

	dup := validDoctorCommand()
	dup.Document = "654.321"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, doctor.ErrDuplicateEmail)
}

func TestDoctorRegisterDuplicateDocument(t *testing.T) {
	svc, _ := newDoctorService(t)

	_, err := svc.Register(context.Background(), validDoctorCommand())
	require.NoError(t, err)

	dup := validDoctorCommand()
	dup.Email = "other@vollmed.example"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, doctor.ErrDuplicateDocument)
}

func TestDoctorRegisterValidation(t *testing.T) {
	svc, _ := newDoctorService(t)

	cmd := validDoctorCommand()
	cmd.Name = "  "
	cmd.Document = "not-a-document"
	cmd.Specialty = doctor.Specialty("astrology")
	cmd.Address.City = ""

	_, err := svc.Register(context.Background(), cmd)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name is required")
	assert.Contains(t, verr.Fields, "document must be numeric, with or without dots")
	assert.Contains(t, verr.Fields, "specialty is invalid")
	assert.Contains(t, verr.Fields, "address.city is required")
}

func TestDoctorUpdate(t *testing.T) {
	svc, _ := newDoctorService(t)

	d, err := svc.Register(context.Background(), validDoctorCommand())
	require.NoError(t, err)

	name := "Dr. Alice R. Medina"
	updated, err := svc.Update(context.Background(), &doctor.UpdateCommand{ID: d.ID, Name: &name})
	require.NoError(t, err)

	assert.Equal(t, name, updated.Name)
	assert.Equal(t, d.Email, updated.Email)
	assert.Equal(t, d.Specialty, updated.Specialty)
}

func TestDoctorUpdateUnknownID(t *testing.T) {
	svc, _ := newDoctorService(t)
	_, err := svc.Update(context.Background(), &doctor.UpdateCommand{ID: uuid.New()})
	assert.ErrorIs(t, err, doctor.ErrDoctorNotFound)
}

func TestDoctorUpdateDocumentTaken(t *testing.T) {
	svc, _ := newDoctorService(t)

	first, err := svc.Register(context.Background(), validDoctorCommand())
	require.NoError(t, err)

	other := validDoctorCommand()
	other.Email = "other@vollmed.example"
	other.Document = "654.321"
	second, err := svc.Register(context.Background(), other)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), &doctor.UpdateCommand{ID: second.ID, Document: &first.Document})
	assert.ErrorIs(t, err, doctor.ErrDuplicateDocument)
}

func TestDoctorDeactivate(t *testing.T) {
	svc, store := newDoctorService(t)

	d, err := svc.Register(context.Background(), validDoctorCommand())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), d.ID))

	stored := store.doctors[d.ID]
	assert.False(t, stored.Active)

	// deactivated doctors drop out of the active listing
	listed, total, err := svc.ListActive(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Zero(t, total)
}
