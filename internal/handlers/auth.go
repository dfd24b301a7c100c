package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-appointment-server/internal/config"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/registration"
	"hospital-appointment-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the response body for login and registration.
type AuthResponse struct {
	AccessToken string      `json:"accessToken,omitempty"`
	TokenType   string      `json:"tokenType,omitempty"`
	UserID      uint        `json:"userId"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	Message     string      `json:"message,omitempty"`
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid username or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	switch user.Status {
	case models.AccountDeactivated:
		utils.Forbidden(c, "Account is deactivated")
		return
	case models.AccountBlocked:
		utils.Forbidden(c, "Account is blocked")
		return
	case models.AccountPending:
		utils.Forbidden(c, "Account is pending admin approval")
		return
	}

	token, err := utils.GenerateToken(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	c.JSON(200, AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		Message:     "Login successful",
	})
}

// Register handles user registration. The required field set depends on the
// selected role; validation is driven by the registration table. PATIENT
// registrations are activated and authenticated immediately; DOCTOR and ADMIN
// registrations stay pending until an admin approves them.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registration.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if errs := registration.Validate(req); len(errs) > 0 {
		utils.BadRequest(c, registration.ErrorMessage(errs))
		return
	}

	var existing models.User
	if err := h.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Username already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Status:   models.AccountActivated,
	}
	if req.Role != models.RolePatient {
		// Doctor and admin signups wait for admin approval.
		user.Status = models.AccountPending
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		switch req.Role {
		case models.RolePatient:
			patient := models.Patient{
				UserID:  user.UserID,
				Name:    req.Name,
				Contact: req.Contact,
			}
			if req.Age != nil {
				patient.Age = *req.Age
			}
			return tx.Create(&patient).Error
		case models.RoleDoctor:
			doctor := models.Doctor{
				UserID:         user.UserID,
				Name:           req.Name,
				Specialization: req.Specialization,
				Availability:   req.Availability,
				Phone:          req.Phone,
				Status:         models.DoctorPending,
			}
			if doctor.Availability == "" {
				doctor.Availability = "NO"
			}
			if req.ConsultationFee != nil {
				doctor.ConsultationFee = *req.ConsultationFee
			}
			return tx.Create(&doctor).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	resp := AuthResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}

	if user.Role == models.RolePatient {
		token, err := utils.GenerateToken(&user, h.Cfg)
		if err != nil {
			utils.InternalServerError(c, "Failed to generate token: "+err.Error())
			return
		}
		resp.AccessToken = token
		resp.TokenType = "Bearer"
		resp.Message = "Registration successful"
	} else {
		resp.Message = "Registration successful. Pending admin approval."
	}

	c.JSON(201, resp)
}
