package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openbims/bims-backend/internal/handlers"
	"github.com/openbims/bims-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins        []string
	AuthMiddleware      *middleware.AuthMiddleware
	AuthHandler         *handlers.AuthHandler
	RegistrationHandler *handlers.RegistrationHandler
	ResidentHandler     *handlers.ResidentHandler
	PersonalHandler     *handlers.PersonalHandler
	HouseholdHandler    *handlers.HouseholdHandler
	FamilyHandler       *handlers.FamilyHandler
	BusinessHandler     *handlers.BusinessHandler
	NotificationHandler *handlers.NotificationHandler
	MedicineHandler     *handlers.MedicineHandler
	KycHandler          *handlers.KycHandler
	ReportHandler       *handlers.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/auth/staff/login", cfg.AuthHandler.LoginStaff)
	router.POST("/auth/resident/login", cfg.AuthHandler.LoginResident)
	router.POST("/auth/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.GET("/notifications", cfg.NotificationHandler.List)
	protected.POST("/requests", cfg.RegistrationHandler.Stage)
	protected.POST("/medicine/requests", cfg.MedicineHandler.Request)

	staff := protected.Group("/")
	staff.Use(cfg.AuthMiddleware.RequireStaff())

	staff.POST("/auth/staff/register", cfg.AuthHandler.RegisterStaff)

	staff.POST("/registrations", cfg.RegistrationHandler.Register)
	staff.GET("/requests/:id", cfg.RegistrationHandler.GetRequest)
	staff.POST("/requests/:id/approve", cfg.RegistrationHandler.ApproveRequest)
	staff.POST("/requests/:id/reject", cfg.RegistrationHandler.RejectRequest)

	staff.GET("/residents", cfg.ResidentHandler.List)
	staff.GET("/residents/search", cfg.ResidentHandler.Search)
	staff.GET("/residents/:id", cfg.ResidentHandler.Get)

	staff.GET("/persons/:id", cfg.PersonalHandler.Get)
	staff.PATCH("/persons/:id", cfg.PersonalHandler.Update)
	staff.GET("/persons/:id/history", cfg.PersonalHandler.History)
	staff.GET("/persons/:id/history/:history_id/addresses", cfg.PersonalHandler.AddressesAt)
	staff.POST("/persons/:id/kyc", cfg.KycHandler.Verify)
	staff.GET("/persons/:id/kyc", cfg.KycHandler.Results)

	staff.GET("/households", cfg.HouseholdHandler.List)
	staff.GET("/households/:id", cfg.HouseholdHandler.Get)

	staff.GET("/families", cfg.FamilyHandler.List)
	staff.GET("/families/:id", cfg.FamilyHandler.Get)
	staff.POST("/families/:id/members", cfg.FamilyHandler.AddMember)

	staff.POST("/businesses", cfg.BusinessHandler.Create)
	staff.GET("/businesses", cfg.BusinessHandler.List)
	staff.GET("/businesses/:id", cfg.BusinessHandler.Get)
	staff.PATCH("/businesses/:id", cfg.BusinessHandler.Update)
	staff.POST("/businesses/:id/verify", cfg.BusinessHandler.Verify)
	staff.GET("/businesses/:id/history", cfg.BusinessHandler.History)
	staff.GET("/businesses/:id/files", cfg.BusinessHandler.Files)

	staff.POST("/medicine/items", cfg.MedicineHandler.CreateItem)
	staff.POST("/medicine/requests/:id/dispense", cfg.MedicineHandler.Dispense)
	staff.POST("/medicine/requests/:id/deny", cfg.MedicineHandler.Deny)

	staff.GET("/reports/residents.xlsx", cfg.ReportHandler.ResidentMasterlist)

	return router
}
