package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-appointment-server/internal/middleware"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/scheduling"
	"hospital-appointment-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

const dateLayout = "2006-01-02"

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	PatientID uint   `json:"patientId" binding:"required"`
	DoctorID  uint   `json:"doctorId" binding:"required"`
	Symptoms  string `json:"symptoms" binding:"required,max=255"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

// CreateAppointment books a PENDING appointment for a patient. The slot must
// not be held by any non-cancelled appointment of the same doctor.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		utils.BadRequest(c, "Date must be in YYYY-MM-DD format")
		return
	}
	if !scheduling.IsClinicTime(req.Time) {
		utils.BadRequest(c, "Time is outside clinic hours")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "patient_id = ?", req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	// Patients can only book for themselves.
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if role == models.RolePatient && patient.UserID != userID {
		utils.Forbidden(c, "Patients can only book appointments for themselves")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "doctor_id = ?", req.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	appointment := models.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Symptoms:  req.Symptoms,
		Status:    models.StatusPending,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		available, err := h.slotAvailable(tx, req.DoctorID, req.Date, req.Time)
		if err != nil {
			return err
		}
		if !available {
			return errSlotTaken
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) {
			utils.Conflict(c, "slot not available")
		} else {
			utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		}
		return
	}

	c.JSON(201, appointment.Dto())
}

var errSlotTaken = errors.New("slot not available")

// slotAvailable reports whether no non-cancelled appointment holds the
// (doctor, date, time) slot.
func (h *AppointmentHandler) slotAvailable(tx *gorm.DB, doctorID uint, date, slot string) (bool, error) {
	var count int64
	err := tx.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status <> ?",
			doctorID, date, slot, models.StatusCancelled).
		Count(&count).Error
	return count == 0, err
}

// GetAllAppointments handles fetching every appointment (admin).
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.DB.Order("date desc, time desc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	c.JSON(200, toDtos(appointments))
}

// GetAppointmentByID handles fetching a single appointment. Accessible by the
// involved patient, the involved doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, ok := h.load(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if role != models.RoleAdmin &&
		appointment.Patient.UserID != userID &&
		appointment.Doctor.UserID != userID {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	c.JSON(200, appointment.Dto())
}

// GetPatientAppointments handles fetching a patient's appointments, newest
// first. Accessible by the owning patient or an admin. An optional ?filter=
// query applies the shared list projection server-side.
func (h *AppointmentHandler) GetPatientAppointments(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("patientId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid patient ID")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "patient_id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if role != models.RoleAdmin && patient.UserID != userID {
		utils.Forbidden(c, "Not authorised to view this patient's appointments")
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Where("patient_id = ?", patientID).
		Order("date desc, time desc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	dtos := toDtos(appointments)
	if raw := c.Query("filter"); raw != "" {
		today := time.Now().Format(dateLayout)
		dtos = scheduling.Apply(dtos, scheduling.ParseFilter(raw), today)
	}
	c.JSON(200, dtos)
}

// GetDoctorAppointments handles fetching a doctor's appointments, newest
// first. Accessible by the owning doctor or an admin.
func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("doctorId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "doctor_id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if role != models.RoleAdmin && doctor.UserID != userID {
		utils.Forbidden(c, "Not authorised to view this doctor's appointments")
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Where("doctor_id = ?", doctorID).
		Order("date desc, time desc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	c.JSON(200, toDtos(appointments))
}

// SlotsResponse lists a doctor's open and taken times for one date.
type SlotsResponse struct {
	DoctorID       uint     `json:"doctorId"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
}

// GetSlots handles fetching slot availability for a (doctor, date) pair.
func (h *AppointmentHandler) GetSlots(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Query("doctorId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "doctorId query parameter is required")
		return
	}
	date := c.Query("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		utils.BadRequest(c, "date query parameter must be in YYYY-MM-DD format")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "doctor_id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	booked, err := h.bookedTimes(uint(doctorID), date)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch slots: "+err.Error())
		return
	}

	c.JSON(200, SlotsResponse{
		DoctorID:       uint(doctorID),
		Date:           date,
		AvailableSlots: scheduling.AvailableSlots(booked),
		BookedSlots:    booked,
	})
}

// CheckAvailability reports whether a single (doctor, date, time) slot is free.
func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Query("doctorId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "doctorId query parameter is required")
		return
	}
	date := c.Query("date")
	slot := c.Query("time")
	if _, err := time.Parse(dateLayout, date); err != nil {
		utils.BadRequest(c, "date query parameter must be in YYYY-MM-DD format")
		return
	}

	available, err := h.slotAvailable(h.DB, uint(doctorID), date, slot)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	c.JSON(200, gin.H{"available": available && scheduling.IsClinicTime(slot)})
}

// bookedTimes returns the non-cancelled times for a doctor on a date, in
// clinic grid order.
func (h *AppointmentHandler) bookedTimes(doctorID uint, date string) ([]string, error) {
	var appointments []models.Appointment
	err := h.DB.Where("doctor_id = ? AND date = ? AND status <> ?",
		doctorID, date, models.StatusCancelled).Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		taken[a.Time] = true
	}
	booked := make([]string, 0, len(taken))
	for _, t := range scheduling.ClinicTimes() {
		if taken[t] {
			booked = append(booked, t)
		}
	}
	return booked, nil
}

// CancelAppointment handles PUT /:id/cancel. A patient may cancel their own
// PENDING or APPROVED appointments; admins may cancel any cancellable one.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	h.transition(c, models.StatusCancelled, func(a *models.Appointment, role models.Role, userID uint) (bool, string) {
		if !scheduling.CanCancel(a.Status) {
			return false, "Appointment can no longer be cancelled"
		}
		if role == models.RoleAdmin || (role == models.RolePatient && a.Patient.UserID == userID) {
			return true, ""
		}
		return false, "You are not authorized to cancel this appointment"
	})
}

// ApproveAppointment handles PUT /:id/approve. The owning doctor (or an admin)
// may approve a PENDING appointment.
func (h *AppointmentHandler) ApproveAppointment(c *gin.Context) {
	h.transition(c, models.StatusApproved, func(a *models.Appointment, role models.Role, userID uint) (bool, string) {
		if !scheduling.CanApprove(a.Status) {
			return false, "Only pending appointments can be approved"
		}
		if role == models.RoleAdmin || (role == models.RoleDoctor && a.Doctor.UserID == userID) {
			return true, ""
		}
		return false, "You are not authorized to approve this appointment"
	})
}

// RejectAppointment handles PUT /:id/reject. The owning doctor (or an admin)
// may reject a PENDING appointment.
func (h *AppointmentHandler) RejectAppointment(c *gin.Context) {
	h.transition(c, models.StatusRejected, func(a *models.Appointment, role models.Role, userID uint) (bool, string) {
		if !scheduling.CanReject(a.Status) {
			return false, "Only pending appointments can be rejected"
		}
		if role == models.RoleAdmin || (role == models.RoleDoctor && a.Doctor.UserID == userID) {
			return true, ""
		}
		return false, "You are not authorized to reject this appointment"
	})
}

// UpdateStatusRequest represents the request body for a generic status update.
type UpdateStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=PENDING APPROVED CANCELLED REJECTED COMPLETED"`
}

// UpdateAppointmentStatus handles PUT /:id/status. Transitions are
// one-directional; who may perform one depends on the role:
// doctors approve/reject/complete their own appointments, patients cancel
// their own, admins may apply any legal transition.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	h.transition(c, req.Status, func(a *models.Appointment, role models.Role, userID uint) (bool, string) {
		if !scheduling.CanTransition(a.Status, req.Status) {
			return false, "Invalid status transition"
		}
		switch role {
		case models.RoleAdmin:
			return true, ""
		case models.RoleDoctor:
			if a.Doctor.UserID != userID {
				return false, "You are not authorized to update this appointment"
			}
			ok := req.Status == models.StatusApproved ||
				req.Status == models.StatusRejected ||
				req.Status == models.StatusCompleted
			if !ok {
				return false, "Doctors may only approve, reject or complete appointments"
			}
			return true, ""
		case models.RolePatient:
			if a.Patient.UserID != userID {
				return false, "You are not authorized to update this appointment"
			}
			if req.Status != models.StatusCancelled {
				return false, "Patients can only cancel appointments"
			}
			return true, ""
		}
		return false, "You are not authorized to update this appointment"
	})
}

// transition loads the appointment, runs the authorization/eligibility check
// and persists the new status.
func (h *AppointmentHandler) transition(
	c *gin.Context,
	to models.AppointmentStatus,
	check func(a *models.Appointment, role models.Role, userID uint) (bool, string),
) {
	appointment, ok := h.load(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	allowed, reason := check(appointment, role, userID)
	if !allowed {
		if appointment.Status == to || !scheduling.CanTransition(appointment.Status, to) {
			utils.BadRequest(c, reason)
		} else {
			utils.Forbidden(c, reason)
		}
		return
	}

	appointment.Status = to
	if err := h.DB.Save(appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}
	c.JSON(200, appointment.Dto())
}

// load fetches the appointment from the path with its patient and doctor rows
// preloaded for ownership checks.
func (h *AppointmentHandler) load(c *gin.Context) (*models.Appointment, bool) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID")
		return nil, false
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").
		First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &appointment, true
}

func toDtos(appointments []models.Appointment) []models.AppointmentDto {
	dtos := make([]models.AppointmentDto, len(appointments))
	for i := range appointments {
		dtos[i] = appointments[i].Dto()
	}
	return dtos
}
