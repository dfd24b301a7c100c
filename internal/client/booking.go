package client

import (
	"context"
	"log"
	"sync"

	"hospital-appointment-server/internal/handlers"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/scheduling"
)

// State names the position of a booking flow in its workflow.
type State string

const (
	StateUnauthenticated          State = "Unauthenticated"
	StateSpecializationUnselected State = "SpecializationUnselected"
	StateDoctorsLoaded            State = "DoctorsLoaded"
	StateDoctorSelected           State = "DoctorSelected"
	StateDateSelected             State = "DateSelected"
	StateSlotsLoaded              State = "SlotsLoaded"
	StateSuccess                  State = "Success"
)

// BookingFlow drives the patient booking form: pick a doctor (optionally
// filtered by specialization), pick a date, fetch that doctor's open slots
// and submit. Every fetch carries a monotonically increasing token; a fetch
// that finishes after a newer one started is discarded instead of
// overwriting fresher state.
type BookingFlow struct {
	client *Client

	// Logf receives diagnostics that are never surfaced as user errors.
	Logf func(format string, args ...interface{})

	mu              sync.Mutex
	patientID       uint
	specialization  string
	doctors         []models.DoctorDto
	doctorID        uint
	date            string
	slot            string
	symptoms        string
	availableSlots  []string
	pendingDoctorID uint
	booked          *models.AppointmentDto

	doctorSeq uint64
	slotSeq   uint64
}

// NewBookingFlow gates entry on an authenticated patient session and resolves
// the patient id from the profile.
func NewBookingFlow(ctx context.Context, c *Client) (*BookingFlow, error) {
	if _, err := c.RequireRole(models.RolePatient); err != nil {
		return nil, err
	}
	profile, err := c.Me(ctx)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.RolePatient || profile.PatientID == nil {
		return nil, &APIError{Message: "User profile is not properly configured as a patient"}
	}
	return &BookingFlow{
		client:    c,
		Logf:      log.Printf,
		patientID: *profile.PatientID,
	}, nil
}

// State derives the workflow position from the form fields.
func (f *BookingFlow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case f.patientID == 0:
		return StateUnauthenticated
	case f.booked != nil:
		return StateSuccess
	case f.availableSlots != nil && f.doctorID != 0 && f.date != "":
		return StateSlotsLoaded
	case f.doctorID != 0 && f.date != "":
		return StateDateSelected
	case f.doctorID != 0:
		return StateDoctorSelected
	case f.doctors != nil:
		return StateDoctorsLoaded
	default:
		return StateSpecializationUnselected
	}
}

// Doctors returns the currently loaded doctor list.
func (f *BookingFlow) Doctors() []models.DoctorDto {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doctors
}

// AvailableSlots returns the open times for the selected doctor and date.
func (f *BookingFlow) AvailableSlots() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.availableSlots
}

// Selected returns the current form selection.
func (f *BookingFlow) Selected() (doctorID uint, date, slot string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doctorID, f.date, f.slot
}

// SetPendingDoctor records a doctor id arriving via a reschedule deep-link.
// It is applied only once the doctor list has loaded and the id is confirmed
// present in it.
func (f *BookingFlow) SetPendingDoctor(doctorID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingDoctorID = doctorID
}

// LoadDoctors fetches the doctor list for the current specialization filter
// and applies any pending deep-linked doctor id.
func (f *BookingFlow) LoadDoctors(ctx context.Context) error {
	f.mu.Lock()
	f.doctorSeq++
	seq := f.doctorSeq
	specialization := f.specialization
	f.mu.Unlock()

	doctors, err := f.client.Doctors(ctx, specialization)
	if err != nil {
		return err
	}

	f.mu.Lock()
	if seq != f.doctorSeq {
		// A newer fetch was issued while this one was in flight.
		f.mu.Unlock()
		return nil
	}
	f.doctors = doctors
	pending := f.pendingDoctorID
	f.pendingDoctorID = 0
	f.mu.Unlock()

	if pending == 0 {
		return nil
	}
	if f.hasDoctor(pending) {
		return f.SelectDoctor(ctx, pending)
	}
	// Dropped silently: a diagnostic, never a user-facing error.
	f.Logf("booking: pending doctor %d not in loaded list, ignoring", pending)
	return nil
}

// SetSpecialization changes the directory filter. The selected doctor and any
// slot state are cleared before the filtered list is re-fetched; clearing the
// filter re-fetches the full directory.
func (f *BookingFlow) SetSpecialization(ctx context.Context, specialization string) error {
	f.mu.Lock()
	f.specialization = specialization
	f.doctorID = 0
	f.slot = ""
	f.availableSlots = nil
	f.mu.Unlock()
	return f.LoadDoctors(ctx)
}

// SelectDoctor picks a doctor from the loaded list. Any prior slot selection
// is cleared; when a date is already set the slot list is re-fetched.
func (f *BookingFlow) SelectDoctor(ctx context.Context, doctorID uint) error {
	if !f.hasDoctor(doctorID) {
		return &APIError{Message: "Doctor is not in the loaded list"}
	}
	f.mu.Lock()
	f.doctorID = doctorID
	f.slot = ""
	f.availableSlots = nil
	fetch := f.date != ""
	f.mu.Unlock()
	if fetch {
		return f.refreshSlots(ctx)
	}
	return nil
}

// SetDate picks the appointment date. Any prior slot selection is cleared;
// when a doctor is already selected the slot list is re-fetched.
func (f *BookingFlow) SetDate(ctx context.Context, date string) error {
	f.mu.Lock()
	f.date = date
	f.slot = ""
	f.availableSlots = nil
	fetch := f.doctorID != 0
	f.mu.Unlock()
	if fetch {
		return f.refreshSlots(ctx)
	}
	return nil
}

// SelectSlot picks one of the fetched open times.
func (f *BookingFlow) SelectSlot(slot string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.availableSlots {
		if s == slot {
			f.slot = slot
			return nil
		}
	}
	return &APIError{Message: "Selected time is not available"}
}

// SetSymptoms records the visit reason.
func (f *BookingFlow) SetSymptoms(symptoms string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.symptoms = symptoms
}

func (f *BookingFlow) refreshSlots(ctx context.Context) error {
	f.mu.Lock()
	f.slotSeq++
	seq := f.slotSeq
	doctorID, date := f.doctorID, f.date
	f.mu.Unlock()

	slots, err := f.client.Slots(ctx, doctorID, date)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.slotSeq {
		return nil // superseded by a newer fetch
	}
	f.availableSlots = slots.AvailableSlots
	return nil
}

// Submit books the appointment. Missing fields fail locally with a validation
// message and no network call. On success the form selection resets; on
// failure the entered values are kept so the user can retry.
func (f *BookingFlow) Submit(ctx context.Context) (*models.AppointmentDto, error) {
	f.mu.Lock()
	req := handlers.CreateAppointmentRequest{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		Symptoms:  f.symptoms,
		Date:      f.date,
		Time:      f.slot,
	}
	f.mu.Unlock()

	if req.DoctorID == 0 || req.Date == "" || req.Time == "" || req.Symptoms == "" || req.PatientID == 0 {
		return nil, &APIError{Message: "Please fill in all required fields and ensure you have a valid patient profile"}
	}

	appointment, err := f.client.CreateAppointment(ctx, req)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked = appointment
	f.doctorID = 0
	f.date = ""
	f.slot = ""
	f.symptoms = ""
	f.availableSlots = nil
	return appointment, nil
}

// Reschedule cancels an approved appointment and prefills the flow for a new
// booking with the same doctor and symptoms. The two steps are not atomic: a
// failed cancel leaves the original appointment active and the flow
// untouched.
func (f *BookingFlow) Reschedule(ctx context.Context, appointment models.AppointmentDto) error {
	if !scheduling.CanReschedule(appointment.Status) {
		return &APIError{Message: "Only approved appointments can be rescheduled"}
	}
	if _, err := f.client.CancelAppointment(ctx, appointment.ID); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingDoctorID = appointment.DoctorID
	f.symptoms = appointment.Symptoms
	f.date = ""
	f.slot = ""
	f.availableSlots = nil
	f.booked = nil
	return nil
}

func (f *BookingFlow) hasDoctor(doctorID uint) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.doctors {
		if d.DoctorID == doctorID {
			return true
		}
	}
	return false
}
