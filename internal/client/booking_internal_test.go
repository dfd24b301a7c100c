package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-appointment-server/internal/handlers"
	"hospital-appointment-server/internal/models"
)

// TestStaleSlotFetchDiscarded pins the fetch-token guard: a slot fetch that
// finishes after a newer one started must not overwrite the newer result.
func TestStaleSlotFetchDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "2026-09-10" {
			close(started)
			<-release
		}
		// Echo the date as the only slot so results are distinguishable.
		_ = json.NewEncoder(w).Encode(handlers.SlotsResponse{
			DoctorID:       1,
			Date:           date,
			AvailableSlots: []string{date},
		})
	}))
	t.Cleanup(ts.Close)

	store := &MemorySessionStore{}
	require.NoError(t, store.Set(&Session{AccessToken: "tok", Role: models.RolePatient}))

	flow := &BookingFlow{
		client:    New(ts.URL+"/api", store),
		Logf:      t.Logf,
		patientID: 1,
		doctorID:  1,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- flow.SetDate(context.Background(), "2026-09-10")
	}()
	<-started

	// A newer fetch completes while the first is still held by the server.
	require.NoError(t, flow.SetDate(context.Background(), "2026-09-11"))
	assert.Equal(t, []string{"2026-09-11"}, flow.AvailableSlots())

	close(release)
	require.NoError(t, <-errCh)

	// The stale completion changed nothing.
	assert.Equal(t, []string{"2026-09-11"}, flow.AvailableSlots())
	_, date, _ := flow.Selected()
	assert.Equal(t, "2026-09-11", date)
}

// TestStaleDoctorFetchDiscarded does the same for the doctor directory.
func TestStaleDoctorFetchDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		specialization := r.URL.Query().Get("specialization")
		if specialization == "CARDIOLOGIST" {
			close(started)
			<-release
		}
		_ = json.NewEncoder(w).Encode([]models.DoctorDto{{DoctorID: 1, Specialization: specialization}})
	}))
	t.Cleanup(ts.Close)

	store := &MemorySessionStore{}
	require.NoError(t, store.Set(&Session{AccessToken: "tok", Role: models.RolePatient}))

	flow := &BookingFlow{
		client:    New(ts.URL+"/api", store),
		Logf:      t.Logf,
		patientID: 1,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- flow.SetSpecialization(context.Background(), "CARDIOLOGIST")
	}()
	<-started

	require.NoError(t, flow.SetSpecialization(context.Background(), "DERMATOLOGIST"))
	require.Len(t, flow.Doctors(), 1)
	assert.Equal(t, "DERMATOLOGIST", flow.Doctors()[0].Specialization)

	close(release)
	require.NoError(t, <-errCh)
	assert.Equal(t, "DERMATOLOGIST", flow.Doctors()[0].Specialization)
}
