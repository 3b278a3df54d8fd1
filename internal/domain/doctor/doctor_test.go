package doctor

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vollmed/clinic-api/internal/domain"
)

func TestParseSpecialty(t *testing.T) {
	tests := []struct {
		in      string
		want    Specialty
		wantErr bool
	}{
		{"cardiology", SpecialtyCardiology, false},
		{"CARDIOLOGY", SpecialtyCardiology, false},
		{"  Cardiology ", SpecialtyCardiology, false},
		{"Orthopedics", SpecialtyOrthopedics, false},
		{"gynecology", SpecialtyGynecology, false},
		{"pediatrics", SpecialtyPediatrics, false},
		{"dermatology", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSpecialty(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidSpecialty, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestSpecialtyJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SpecialtyCardiology)
	require.NoError(t, err)
	assert.Equal(t, `"Cardiology"`, string(data))

	var s Specialty
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, SpecialtyCardiology, s)
}

func TestSpecialtyValueScan(t *testing.T) {
	v, err := SpecialtyPediatrics.Value()
	require.NoError(t, err)
	assert.Equal(t, "Pediatrics", v)

	var s Specialty
	require.NoError(t, s.Scan("Pediatrics"))
	assert.Equal(t, SpecialtyPediatrics, s)

	require.NoError(t, s.Scan([]byte("Orthopedics")))
	assert.Equal(t, SpecialtyOrthopedics, s)

	assert.Error(t, s.Scan(42))
}

func testDoctor() Doctor {
	return Doctor{
		ID:        uuid.New(),
		Name:      "Dr. Alice Reyes",
		Phone:     "11988887777",
		Email:     "alice.reyes@vollmed.example",
		Document:  "123.456",
		Specialty: SpecialtyCardiology,
		Address: domain.Address{
			Street:     "Rua das Flores",
			District:   "Centro",
			City:       "Sao Paulo",
			Number:     "100",
			Complement: "Sala 3",
		},
		Active: true,
	}
}

func TestWithUpdatesReplacesOnlyProvidedFields(t *testing.T) {
	original := testDoctor()

	name := "Dr. Alice R. Medina"
	updated := original.WithUpdates(&UpdateCommand{Name: &name})

	assert.Equal(t, name, updated.Name)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.Email, updated.Email)
	assert.Equal(t, original.Document, updated.Document)
	assert.Equal(t, original.Specialty, updated.Specialty)
	assert.Equal(t, original.Address, updated.Address)

	// the original value is untouched
	assert.Equal(t, "Dr. Alice Reyes", original.Name)
}

func TestDeactivated(t *testing.T) {
	original := testDoctor()
	deactivated := original.Deactivated()

	assert.False(t, deactivated.Active)
	assert.Equal(t, original.ID, deactivated.ID)
	assert.True(t, original.Active)
}

func TestNewStartsActive(t *testing.T) {
	d := New(&RegisterCommand{
		Name:      "Dr. Bruno Costa",
		Phone:     "11977776666",
		Email:     "bruno.costa@vollmed.example",
		Document:  "654.321",
		Specialty: SpecialtyOrthopedics,
	})
	assert.True(t, d.Active)
	assert.Equal(t, uuid.Nil, d.ID)
}
