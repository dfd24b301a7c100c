// Package seed populates an empty database with demo accounts and
// appointments for local development.
package seed

import (
	"time"

	"gorm.io/gorm"

	"hospital-appointment-server/internal/models"
)

// Run seeds demo data when the users table is empty. Safe to call on every
// startup.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // avoid duplicate seeding
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := map[string]*models.User{}
		for _, u := range []struct {
			username string
			role     models.Role
			password string
		}{
			{"admin1", models.RoleAdmin, "admin123"},
			{"admin2", models.RoleAdmin, "admin123"},
			{"doctor1", models.RoleDoctor, "doctor123"},
			{"doctor2", models.RoleDoctor, "doctor123"},
			{"patient1", models.RolePatient, "patient123"},
			{"patient2", models.RolePatient, "patient123"},
			{"patient3", models.RolePatient, "patient123"},
		} {
			user := &models.User{
				Username: u.username,
				Email:    u.username + "@example.com",
				Role:     u.role,
				Status:   models.AccountActivated,
			}
			if err := user.SetPassword(u.password); err != nil {
				return err
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			users[u.username] = user
		}

		doctors := []*models.Doctor{
			{
				UserID:          users["doctor1"].UserID,
				Name:            "Dr John Smith",
				Specialization:  "CARDIOLOGIST",
				Availability:    "Mon-Fri 10:00-16:00",
				Phone:           "1234567890",
				ConsultationFee: 500,
				Status:          models.DoctorActive,
			},
			{
				UserID:          users["doctor2"].UserID,
				Name:            "Dr Alice Brown",
				Specialization:  "DERMATOLOGIST",
				Availability:    "Tue-Sat 09:00-15:00",
				Phone:           "0987654321",
				ConsultationFee: 400,
				Status:          models.DoctorActive,
			},
		}
		for _, d := range doctors {
			if err := tx.Create(d).Error; err != nil {
				return err
			}
		}

		patients := []*models.Patient{
			{UserID: users["patient1"].UserID, Name: "Patient One", Age: 30, Contact: "1111111111"},
			{UserID: users["patient2"].UserID, Name: "Patient Two", Age: 25, Contact: "2222222222"},
			{UserID: users["patient3"].UserID, Name: "Patient Three", Age: 40, Contact: "3333333333"},
		}
		for _, p := range patients {
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		day := func(n int) string {
			return time.Now().AddDate(0, 0, n).Format("2006-01-02")
		}
		appointments := []*models.Appointment{
			{PatientID: patients[0].PatientID, DoctorID: doctors[0].DoctorID, Date: day(1), Time: "10:00", Symptoms: "Fever", Status: models.StatusPending},
			{PatientID: patients[0].PatientID, DoctorID: doctors[1].DoctorID, Date: day(2), Time: "11:00", Symptoms: "Skin rash", Status: models.StatusPending},
			{PatientID: patients[1].PatientID, DoctorID: doctors[0].DoctorID, Date: day(1), Time: "14:00", Symptoms: "Chest pain", Status: models.StatusPending},
			{PatientID: patients[1].PatientID, DoctorID: doctors[1].DoctorID, Date: day(3), Time: "14:30", Symptoms: "Acne", Status: models.StatusPending},
			{PatientID: patients[2].PatientID, DoctorID: doctors[0].DoctorID, Date: day(2), Time: "15:00", Symptoms: "Headache", Status: models.StatusPending},
			{PatientID: patients[2].PatientID, DoctorID: doctors[1].DoctorID, Date: day(3), Time: "15:30", Symptoms: "Skin allergy", Status: models.StatusPending},
		}
		for _, a := range appointments {
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
