package appointment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCancellationReason(t *testing.T) {
	tests := []struct {
		in      string
		want    CancellationReason
		wantErr bool
	}{
		{"Patient withdrew", ReasonPatientWithdrew, false},
		{"patient_withdrew", ReasonPatientWithdrew, false},
		{"  DOCTOR CANCELLED ", ReasonDoctorCancelled, false},
		{"Other", ReasonOther, false},
		{"no show", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCancellationReason(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidCancellationReason, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestCancellationReasonJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(ReasonDoctorCancelled)
	require.NoError(t, err)
	assert.Equal(t, `"Doctor cancelled"`, string(data))

	var r CancellationReason
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Equal(t, ReasonDoctorCancelled, r)
}

func TestWithCancellation(t *testing.T) {
	a := Appointment{
		ID:          uuid.New(),
		DoctorID:    uuid.New(),
		PatientID:   uuid.New(),
		ScheduledAt: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
	}

	reason := ReasonPatientWithdrew
	cancelled, err := a.WithCancellation(&reason)
	require.NoError(t, err)

	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, ReasonPatientWithdrew, *cancelled.CancellationReason)
	assert.Equal(t, a.ID, cancelled.ID)
	assert.Equal(t, a.DoctorID, cancelled.DoctorID)
	assert.Equal(t, a.PatientID, cancelled.PatientID)
	assert.True(t, a.ScheduledAt.Equal(cancelled.ScheduledAt))

	// the stored reason is a copy, not an alias of the caller's pointer
	reason = ReasonOther
	assert.Equal(t, ReasonPatientWithdrew, *cancelled.CancellationReason)

	// the original value stays uncancelled
	assert.False(t, a.IsCancelled())
	assert.True(t, cancelled.IsCancelled())
}

func TestWithCancellationNilReason(t *testing.T) {
	a := Appointment{ID: uuid.New()}
	_, err := a.WithCancellation(nil)
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestWithCancellationInvalidReason(t *testing.T) {
	a := Appointment{ID: uuid.New()}
	bad := CancellationReason("no_show")
	_, err := a.WithCancellation(&bad)
	assert.ErrorIs(t, err, ErrInvalidCancellationReason)
}

func TestWithCancellationOverwritesPreviousReason(t *testing.T) {
	a := Appointment{ID: uuid.New()}

	first := ReasonPatientWithdrew
	cancelled, err := a.WithCancellation(&first)
	require.NoError(t, err)

	second := ReasonDoctorCancelled
	recancelled, err := cancelled.WithCancellation(&second)
	require.NoError(t, err)

	assert.Equal(t, ReasonDoctorCancelled, *recancelled.CancellationReason)
}
