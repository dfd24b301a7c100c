package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-appointment-server/internal/config"
	"hospital-appointment-server/internal/handlers"
	"hospital-appointment-server/internal/middleware"
	"hospital-appointment-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// The registration form needs the catalogue before any login exists.
		public.GET("/specializations", doctorHandler.GetSpecializations)
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		private.GET("/user/me", userHandler.Me)

		// Doctor directory
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.GET("/:id", doctorHandler.GetDoctorByID)
			doctorRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor), doctorHandler.UpdateDoctor)
			doctorRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor), doctorHandler.DeleteDoctor)
			doctorRoutes.PUT("/approve/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), doctorHandler.ApproveDoctor)
		}

		// Patient profiles. Reads are open to doctors with an appointment
		// involving the patient; the handler enforces that.
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePatient), patientHandler.UpdatePatient)
		}

		// Appointments
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin), appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), appointmentHandler.GetAllAppointments)

			appointmentRoutes.GET("/slots", appointmentHandler.GetSlots)
			appointmentRoutes.GET("/check-availability", appointmentHandler.CheckAvailability)

			appointmentRoutes.GET("/patient/:patientId", appointmentHandler.GetPatientAppointments)
			appointmentRoutes.GET("/doctor/:doctorId", appointmentHandler.GetDoctorAppointments)

			// Authorization and transition eligibility inside the handlers
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id/cancel", appointmentHandler.CancelAppointment)
			appointmentRoutes.PUT("/:id/approve", appointmentHandler.ApproveAppointment)
			appointmentRoutes.PUT("/:id/reject", appointmentHandler.RejectAppointment)
			appointmentRoutes.PUT("/:id/status", appointmentHandler.UpdateAppointmentStatus)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
