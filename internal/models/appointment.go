package models

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusApproved  AppointmentStatus = "APPROVED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusRejected  AppointmentStatus = "REJECTED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment represents a booking of a doctor's time slot by a patient.
// Appointments are never deleted, only status-transitioned.
type Appointment struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	PatientID uint              `gorm:"index;not null" json:"patientId"`
	DoctorID  uint              `gorm:"index;not null" json:"doctorId"`
	Date      string            `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	Time      string            `gorm:"size:5;not null" json:"time"`        // HH:MM
	Symptoms  string            `gorm:"size:255" json:"symptoms"`
	Status    AppointmentStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`

	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}

// AppointmentDto is the wire representation of an appointment.
type AppointmentDto struct {
	ID        uint              `json:"id"`
	PatientID uint              `json:"patientId"`
	DoctorID  uint              `json:"doctorId"`
	Symptoms  string            `json:"symptoms"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Status    AppointmentStatus `json:"status"`
}

// Dto projects an Appointment onto its wire representation.
func (a *Appointment) Dto() AppointmentDto {
	return AppointmentDto{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Symptoms:  a.Symptoms,
		Date:      a.Date,
		Time:      a.Time,
		Status:    a.Status,
	}
}
