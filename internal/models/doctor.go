package models

import "time"

// Doctor profile status. A doctor signup stays PENDING until an admin approves it.
const (
	DoctorPending = "PENDING"
	DoctorActive  = "ACTIVE"
)

// Doctor holds the profile of a DOCTOR user. One-to-one with User.
type Doctor struct {
	DoctorID        uint      `gorm:"primaryKey" json:"doctorId"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"userId"`
	Name            string    `gorm:"size:50" json:"name"`
	Specialization  string    `gorm:"size:100;index" json:"specialization"`
	Availability    string    `gorm:"size:50" json:"availability"`
	Phone           string    `gorm:"size:10" json:"phone"`
	ConsultationFee float64   `json:"consultationFee"`
	Status          string    `gorm:"size:20;default:'PENDING'" json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// DoctorDto is the wire representation of a doctor.
type DoctorDto struct {
	DoctorID        uint    `json:"doctorId"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	Availability    string  `json:"availability"`
	Phone           string  `json:"phone"`
	ConsultationFee float64 `json:"consultationFee"`
	Status          string  `json:"status"`
}

// Dto projects a Doctor onto its wire representation.
func (d *Doctor) Dto() DoctorDto {
	return DoctorDto{
		DoctorID:        d.DoctorID,
		Name:            d.Name,
		Specialization:  d.Specialization,
		Availability:    d.Availability,
		Phone:           d.Phone,
		ConsultationFee: d.ConsultationFee,
		Status:          d.Status,
	}
}
