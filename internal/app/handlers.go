package app

import (
	"github.com/gin-gonic/gin"

	"github.com/openbims/bims-backend/internal/handlers"
	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/middleware"
	"github.com/openbims/bims-backend/internal/server"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

type Handlers struct {
	Auth         *handlers.AuthHandler
	Registration *handlers.RegistrationHandler
	Resident     *handlers.ResidentHandler
	Personal     *handlers.PersonalHandler
	Household    *handlers.HouseholdHandler
	Family       *handlers.FamilyHandler
	Business     *handlers.BusinessHandler
	Notification *handlers.NotificationHandler
	Medicine     *handlers.MedicineHandler
	Kyc          *handlers.KycHandler
	Report       *handlers.ReportHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         handlers.NewAuthHandler(s.Auth),
		Registration: handlers.NewRegistrationHandler(s.Registration, s.RequestRegistration),
		Resident:     handlers.NewResidentHandler(s.Resident, s.Personal),
		Personal:     handlers.NewPersonalHandler(s.Personal),
		Household:    handlers.NewHouseholdHandler(s.Household),
		Family:       handlers.NewFamilyHandler(s.Family),
		Business:     handlers.NewBusinessHandler(s.Business),
		Notification: handlers.NewNotificationHandler(s.Notification),
		Medicine:     handlers.NewMedicineHandler(s.Medicine),
		Kyc:          handlers.NewKycHandler(s.Kyc),
		Report:       handlers.NewReportHandler(s.Report),
	}
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, s.Auth),
	}
}

func wireRouter(cfg Config, h Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:        cfg.AllowOrigins,
		AuthMiddleware:      mw.Auth,
		AuthHandler:         h.Auth,
		RegistrationHandler: h.Registration,
		ResidentHandler:     h.Resident,
		PersonalHandler:     h.Personal,
		HouseholdHandler:    h.Household,
		FamilyHandler:       h.Family,
		BusinessHandler:     h.Business,
		NotificationHandler: h.Notification,
		MedicineHandler:     h.Medicine,
		KycHandler:          h.Kyc,
		ReportHandler:       h.Report,
	})
}
