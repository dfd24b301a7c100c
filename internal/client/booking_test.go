package client_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-appointment-server/internal/client"
	"hospital-appointment-server/internal/models"
)

func newPatientFlow(t *testing.T, c *client.Client) *client.BookingFlow {
	t.Helper()
	flow, err := client.NewBookingFlow(context.Background(), c)
	require.NoError(t, err)
	flow.Logf = t.Logf
	return flow
}

func TestBookingFlowRequiresPatientSession(t *testing.T) {
	db, ts := newBackend(t)
	seedDoctor(t, db, "jdoe", "CARDIOLOGIST")

	c := newClient(ts)
	_, err := client.NewBookingFlow(context.Background(), c)
	assert.ErrorIs(t, err, client.ErrNotAuthenticated)

	// A doctor session is treated exactly like no session.
	loginAs(t, c, "jdoe")
	_, err = client.NewBookingFlow(context.Background(), c)
	assert.ErrorIs(t, err, client.ErrNotAuthenticated)
}

func TestBookingFlowEndToEnd(t *testing.T) {
	db, ts := newBackend(t)
	seedPatient(t, db, "psmith")
	_, cardio := seedDoctor(t, db, "jdoe", "CARDIOLOGIST")
	seedDoctor(t, db, "asmith", "DERMATOLOGIST")

	c := newClient(ts)
	loginAs(t, c, "psmith")
	flow := newPatientFlow(t, c)
	ctx := context.Background()

	assert.Equal(t, client.StateSpecializationUnselected, flow.State())

	require.NoError(t, flow.LoadDoctors(ctx))
	assert.Equal(t, client.StateDoctorsLoaded, flow.State())
	assert.Len(t, flow.Doctors(), 2)

	require.NoError(t, flow.SetSpecialization(ctx, "CARDIOLOGIST"))
	require.Len(t, flow.Doctors(), 1)

	require.NoError(t, flow.SelectDoctor(ctx, cardio.DoctorID))
	assert.Equal(t, client.StateDoctorSelected, flow.State())

	require.NoError(t, flow.SetDate(ctx, "2026-09-10"))
	assert.Equal(t, client.StateSlotsLoaded, flow.State())
	assert.Len(t, flow.AvailableSlots(), 12)

	require.NoError(t, flow.SelectSlot("09:30"))
	flow.SetSymptoms("Chest pain")

	appt, err := flow.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, cardio.DoctorID, appt.DoctorID)
	assert.Equal(t, client.StateSuccess, flow.State())

	// The form selection reset on success.
	doctorID, date, slot := flow.Selected()
	assert.Zero(t, doctorID)
	assert.Empty(t, date)
	assert.Empty(t, slot)

	// The booked slot is no longer offered.
	slots, err := c.Slots(ctx, cardio.DoctorID, "2026-09-10")
	require.NoError(t, err)
	assert.NotContains(t, slots.AvailableSlots, "09:30")
}

func TestBookingFlowSpecializationChangeClearsSelection(t *testing.T) {
	db, ts := newBackend(t)
	seedPatient(t, db, "psmith")
	_, cardio := seedDoctor(t, db, "jdoe", "CARDIOLOGIST")
	seedDoctor(t, db, "asmith", "DERMATOLOGIST")

	c := newClient(ts)
	loginAs(t, c, "psmith")
	flow := newPatientFlow(t, c)
	ctx := context.Background()

	require.NoError(t, flow.SetSpecialization(ctx, "CARDIOLOGIST"))
	require.NoError(t, flow.SelectDoctor(ctx, cardio.DoctorID))
	require.NoError(t, flow.SetDate(ctx, "2026-09-10"))
	require.NoError(t, flow.SelectSlot("09:30"))

	// Changing the filter drops the doctor and everything after it.
	require.NoError(t, flow.SetSpecialization(ctx, "DERMATOLOGIST"))
	doctorID, _, slot := flow.Selected()
	assert.Zero(t, doctorID)
	assert.Empty(t, slot)
	assert.Nil(t, flow.AvailableSlots())
	require.Len(t, flow.Doctors(), 1)
	assert.Equal(t, "DERMATOLOGIST", flow.Doctors()[0].Specialization)

	// Clearing the filter restores the full directory.
	require.NoError(t, flow.SetSpecialization(ctx, ""))
	assert.Len(t, flow.Doctors(), 2)
}

func TestBookingFlowSubmitValidatesLocally(t *testing.T) {
	db, ts := newBackend(t)
	seedPatient(t, db, "psmith")
	_, cardio := seedDoctor(t, db, "jdoe", "CARDIOLOGIST")

	c := newClient(ts)
	loginAs(t, c, "psmith")
	flow := newPatientFlow(t, c)
	ctx := context.Background()

	require.NoError(t, flow.LoadDoctors(ctx))
	require.NoError(t, flow.SelectDoctor(ctx, cardio.DoctorID))
	require.NoError(t, flow.SetDate(ctx, "2026-09-10"))
	require.NoError(t, flow.SelectSlot("09:30"))
	// Symptoms never entered.

	_, err := flow.Submit(ctx)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Please fill in all required fields and ensure you have a valid patient profile", apiErr.Message)

	// Nothing was booked and the selection survived the failure.
	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
	doctorID, date, slot := flow.Selected()
	assert.Equal(t, cardio.DoctorID, doctorID)
	assert.Equal(t, "2026-09-10", date)
	assert.Equal(t, "09:30", slot)
}

func TestBookingFlowPendingDoctor(t *testing.T) {
	db, ts := newBackend(t)
	seedPatient(t, db, "psmith")
	_, cardio := seedDoctor(t, db, "jdoe", "CARDIOLOGIST")
	_, derm := seedDoctor(t, db, "asmith", "DERMATOLOGIST")

	c := newClient(ts)
	loginAs(t, c, "psmith")
	flow := newPatientFlow(t, c)
	ctx := context.Background()

	var logged []string
	flow.Logf = func(format string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	// The deep-linked doctor is outside the filtered list: dropped, logged,
	// and no doctor ends up selected.
	flow.SetPendingDoctor(derm.DoctorID)
	require.NoError(t, flow.SetSpecialization(ctx, "CARDIOLOGIST"))
	doctorID, _, _ := flow.Selected()
	assert.Zero(t, doctorID)
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "pending doctor")

	// Present in the list: applied as the selection.
	flow.SetPendingDoctor(cardio.DoctorID)
	require.NoError(t, flow.LoadDoctors(ctx))
	doctorID, _, _ = flow.Selected()
	assert.Equal(t, cardio.DoctorID, doctorID)
}

func TestBookingFlowReschedule(t *testing.T) {
	db, ts := newBackend(t)
	_, patient := seedPatient(t, db, "psmith")
	_, cardio := seedDoctor(t, db, "jdoe", "CARDIOLOGIST")

	approved := models.Appointment{
		PatientID: patient.PatientID, DoctorID: cardio.DoctorID,
		Date: "2026-09-10", Time: "09:30", Symptoms: "Chest pain",
		Status: models.StatusApproved,
	}
	require.NoError(t, db.Create(&approved).Error)
	pending := models.Appointment{
		PatientID: patient.PatientID, DoctorID: cardio.DoctorID,
		Date: "2026-09-11", Time: "10:00", Symptoms: "Follow up",
		Status: models.StatusPending,
	}
	require.NoError(t, db.Create(&pending).Error)

	c := newClient(ts)
	loginAs(t, c, "psmith")
	flow := newPatientFlow(t, c)
	ctx := context.Background()

	// Only approved appointments can be rescheduled.
	err := flow.Reschedule(ctx, pending.Dto())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	var stillPending models.Appointment
	require.NoError(t, db.First(&stillPending, "id = ?", pending.ID).Error)
	assert.Equal(t, models.StatusPending, stillPending.Status)

	// Rescheduling cancels the original and prefills the next booking.
	require.NoError(t, flow.Reschedule(ctx, approved.Dto()))
	var cancelled models.Appointment
	require.NoError(t, db.First(&cancelled, "id = ?", approved.ID).Error)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	require.NoError(t, flow.LoadDoctors(ctx))
	doctorID, _, _ := flow.Selected()
	assert.Equal(t, cardio.DoctorID, doctorID)

	// The freed slot can be booked again.
	require.NoError(t, flow.SetDate(ctx, "2026-09-10"))
	require.NoError(t, flow.SelectSlot("09:30"))
	appt, err := flow.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Chest pain", appt.Symptoms)
}
