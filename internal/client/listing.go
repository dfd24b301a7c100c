package client

import (
	"context"

	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/scheduling"
)

// UnknownPatient is shown when a patient record cannot be resolved.
const UnknownPatient = "Unknown"

// AppointmentView pairs an appointment with the resolved patient name for
// the doctor's list.
type AppointmentView struct {
	models.AppointmentDto
	PatientName string `json:"patientName"`
}

// DoctorAppointmentList fetches a doctor's appointments, applies the status
// filter as a pure projection and resolves each patient's name with one
// lookup per distinct patient. Lookup failures degrade to UnknownPatient
// rather than failing the list.
func (c *Client) DoctorAppointmentList(ctx context.Context, doctorID uint, filter scheduling.Filter, today string) ([]AppointmentView, error) {
	appointments, err := c.DoctorAppointments(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	appointments = scheduling.Apply(appointments, filter, today)

	names := make(map[uint]string)
	views := make([]AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		name, ok := names[a.PatientID]
		if !ok {
			if p, err := c.Patient(ctx, a.PatientID); err == nil {
				name = p.Name
			} else {
				name = UnknownPatient
			}
			names[a.PatientID] = name
		}
		views = append(views, AppointmentView{AppointmentDto: a, PatientName: name})
	}
	return views, nil
}

// PatientAppointmentList fetches a patient's appointments and applies the
// status filter as a pure projection.
func (c *Client) PatientAppointmentList(ctx context.Context, patientID uint, filter scheduling.Filter, today string) ([]models.AppointmentDto, error) {
	appointments, err := c.PatientAppointments(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return scheduling.Apply(appointments, filter, today), nil
}
