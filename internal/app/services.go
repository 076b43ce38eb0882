package app

import (
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/idgen"
	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/services"
)

type Services struct {
	Auth                services.AuthService
	Notification        services.NotificationService
	Registration        services.RegistrationService
	RequestRegistration services.RequestRegistrationService
	Personal            services.PersonalService
	Resident            services.ResidentService
	Household           services.HouseholdService
	Family              services.FamilyService
	Business            services.BusinessService
	Medicine            services.MedicineService
	Kyc                 services.KycService
	Report              services.ReportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")
	gen := idgen.NewGenerator(db, log)

	notification := services.NewNotificationService(db, log, r.Notification, r.Staff, r.FamilyComposition, c.Bus)
	registration := services.NewRegistrationService(
		db, log, cfg.Locality, gen,
		r.Personal, r.PersonalHistory,
		r.Sitio, r.Address, r.PersonalAddress,
		r.ResidentProfile, r.Account,
		r.Household, r.Family, r.FamilyComposition,
		r.Business, r.BusinessFile,
		c.Sync, c.Bucket, notification,
	)

	return Services{
		Auth:                services.NewAuthService(db, log, r.Staff, r.Account, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Notification:        notification,
		Registration:        registration,
		RequestRegistration: services.NewRequestRegistrationService(db, log, r.RequestRegistration, r.ResidentProfile, registration, notification),
		Personal:            services.NewPersonalService(db, log, r.Personal, r.PersonalHistory, r.PersonalAddress, c.Sync),
		Resident:            services.NewResidentService(db, log, r.ResidentProfile, r.PersonalAddress, r.Household, r.FamilyComposition, r.Business),
		Household:           services.NewHouseholdService(db, log, r.Household, r.Family),
		Family:              services.NewFamilyService(db, log, r.Family, r.FamilyComposition, r.ResidentProfile, notification),
		Business:            services.NewBusinessService(db, log, gen, r.Business, r.BusinessHistory, r.BusinessFile, r.BusinessRespondent, r.ResidentProfile, c.Sync, c.Bucket, notification),
		Medicine:            services.NewMedicineService(db, log, r.Medicine, r.ResidentProfile, c.Bucket, notification),
		Kyc:                 services.NewKycService(db, log, r.Personal, r.Kyc, c.Bucket, c.Vision, c.Faces),
		Report:              services.NewReportService(db, log, r.ResidentProfile),
	}
}
