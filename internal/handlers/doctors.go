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

// DoctorHandler handles doctor directory requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// GetDoctors handles fetching the doctor directory, optionally filtered by
// specialization (case-insensitive substring match).
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Model(&models.Doctor{})
	if specialization := c.Query("specialization"); specialization != "" {
		query = query.Where("UPPER(specialization) LIKE UPPER(?)", "%"+specialization+"%")
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	dtos := make([]models.DoctorDto, len(doctors))
	for i := range doctors {
		dtos[i] = doctors[i].Dto()
	}
	c.JSON(200, dtos)
}

// GetDoctorByID handles fetching a single doctor.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "doctor_id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	c.JSON(200, doctor.Dto())
}

// UpdateDoctorRequest represents a partial doctor profile update.
type UpdateDoctorRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=50"`
	Specialization  *string  `json:"specialization" binding:"omitempty,min=1,max=100"`
	Availability    *string  `json:"availability" binding:"omitempty,min=1,max=50"`
	Phone           *string  `json:"phone" binding:"omitempty,len=10,numeric"`
	ConsultationFee *float64 `json:"consultationFee" binding:"omitempty,gte=0.01,lte=50000"`
}

// UpdateDoctor handles updating a doctor profile. Allowed for admins, or for
// the doctor's own profile once it is ACTIVE.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.Specialization != nil && !models.IsSpecialization(*req.Specialization) {
		utils.BadRequest(c, "Specialization must be one of the listed specialties.")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "doctor_id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !h.canManage(c, &doctor) {
		utils.Forbidden(c, "You are not authorized to update this doctor")
		return
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Availability != nil {
		doctor.Availability = *req.Availability
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}
	c.JSON(200, doctor.Dto())
}

// ApproveDoctor handles admin approval of a pending doctor signup: the doctor
// profile becomes ACTIVE and the linked account is activated.
func (h *DoctorHandler) ApproveDoctor(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "doctor_id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		doctor.Status = models.DoctorActive
		if doctor.Availability == "" || doctor.Availability == "NO" {
			doctor.Availability = "YES"
		}
		if err := tx.Save(&doctor).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("user_id = ?", doctor.UserID).
			Update("status", models.AccountActivated).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to approve doctor: "+err.Error())
		return
	}
	c.JSON(200, doctor.Dto())
}

// DeleteDoctor handles removing a doctor profile. Allowed for admins, or for
// the doctor's own ACTIVE profile.
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "doctor_id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !h.canManage(c, &doctor) {
		utils.Forbidden(c, "You are not authorized to delete this doctor")
		return
	}

	if err := h.DB.Delete(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete doctor: "+err.Error())
		return
	}
	c.JSON(200, gin.H{"message": "Doctor deleted successfully"})
}

// GetSpecializations returns the fixed specialty catalogue used by the
// registration and booking forms.
func (h *DoctorHandler) GetSpecializations(c *gin.Context) {
	c.JSON(200, models.Specializations())
}

// canManage reports whether the requester is an admin or the doctor's own
// ACTIVE profile.
func (h *DoctorHandler) canManage(c *gin.Context, doctor *models.Doctor) bool {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if role == models.RoleAdmin {
		return true
	}
	return role == models.RoleDoctor && doctor.UserID == userID && doctor.Status == models.DoctorActive
}
