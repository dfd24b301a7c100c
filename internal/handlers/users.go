package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-appointment-server/internal/middleware"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/utils"
)

// UserHandler handles profile requests for the authenticated user.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// UserProfile is the /user/me response: the account plus the role-specific
// projection (patient or doctor details).
type UserProfile struct {
	UserID        uint                 `json:"userId"`
	Username      string               `json:"username"`
	Email         string               `json:"email"`
	Role          models.Role          `json:"role"`
	AccountStatus models.AccountStatus `json:"accountStatus"`

	// Patient specific fields
	PatientID *uint `json:"patientId,omitempty"`
	Age       *int  `json:"age,omitempty"`

	// Doctor specific fields
	DoctorID        *uint    `json:"doctorId,omitempty"`
	Specialization  string   `json:"specialization,omitempty"`
	Availability    string   `json:"availability,omitempty"`
	ConsultationFee *float64 `json:"consultationFee,omitempty"`

	// Shared by both projections
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Me handles fetching the currently authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	profile := UserProfile{
		UserID:        user.UserID,
		Username:      user.Username,
		Email:         user.Email,
		Role:          user.Role,
		AccountStatus: user.Status,
	}

	switch user.Role {
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, "user_id = ?", user.UserID).Error; err != nil {
			utils.InternalServerError(c, "Patient details missing")
			return
		}
		profile.PatientID = &patient.PatientID
		profile.Name = patient.Name
		profile.Age = &patient.Age
		profile.Phone = patient.Contact
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.DB.First(&doctor, "user_id = ?", user.UserID).Error; err != nil {
			utils.InternalServerError(c, "Doctor details missing")
			return
		}
		profile.DoctorID = &doctor.DoctorID
		profile.Name = doctor.Name
		profile.Specialization = doctor.Specialization
		profile.Availability = doctor.Availability
		profile.Phone = doctor.Phone
		profile.ConsultationFee = &doctor.ConsultationFee
	}

	c.JSON(200, profile)
}
