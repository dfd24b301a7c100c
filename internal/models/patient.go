package models

import "time"

// Patient holds the profile of a PATIENT user. One-to-one with User.
type Patient struct {
	PatientID uint      `gorm:"primaryKey" json:"patientId"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"userId"`
	Name      string    `gorm:"size:50" json:"name"`
	Age       int       `json:"age"`
	Contact   string    `gorm:"size:10" json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// PatientDto is the wire representation of a patient.
type PatientDto struct {
	PatientID uint   `json:"patientId"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Contact   string `json:"contact"`
	UserID    uint   `json:"userId"`
}

// Dto projects a Patient onto its wire representation.
func (p *Patient) Dto() PatientDto {
	return PatientDto{
		PatientID: p.PatientID,
		Name:      p.Name,
		Age:       p.Age,
		Contact:   p.Contact,
		UserID:    p.UserID,
	}
}
