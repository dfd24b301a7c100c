package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-appointment-server/internal/middleware"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/utils"
)

// PatientHandler handles patient profile requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// GetPatientByID handles fetching a patient profile. Accessible by the owning
// patient, an admin, or a doctor with an appointment involving this patient
// (the doctor's schedule shows patient names).
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, ok := h.load(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	authorized := role == models.RoleAdmin || patient.UserID == userID
	if !authorized && role == models.RoleDoctor {
		var count int64
		err := h.DB.Model(&models.Appointment{}).
			Joins("JOIN doctors ON doctors.doctor_id = appointments.doctor_id").
			Where("appointments.patient_id = ? AND doctors.user_id = ?", patient.PatientID, userID).
			Count(&count).Error
		if err != nil {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
		authorized = count > 0
	}
	if !authorized {
		utils.Forbidden(c, "Not authorised to access this patient")
		return
	}

	c.JSON(200, patient.Dto())
}

// UpdatePatientRequest represents a partial patient profile update.
type UpdatePatientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=50"`
	Age     *int    `json:"age" binding:"omitempty,gte=1,lte=150"`
	Contact *string `json:"contact" binding:"omitempty,len=10,numeric"`
}

// UpdatePatient handles updating a patient profile. Accessible by the owning
// patient or an admin.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patient, ok := h.load(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if role != models.RoleAdmin && patient.UserID != userID {
		utils.Forbidden(c, "Not authorised to access this patient")
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Contact != nil {
		patient.Contact = *req.Contact
	}

	if err := h.DB.Save(patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}
	c.JSON(200, patient.Dto())
}

// load fetches the patient from the path. On failure it writes the error
// response and returns ok=false.
func (h *PatientHandler) load(c *gin.Context) (*models.Patient, bool) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid patient ID")
		return nil, false
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "patient_id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &patient, true
}
