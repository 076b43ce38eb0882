package app

import (
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/repos"
)

type Repos struct {
	Staff               repos.StaffRepo
	Personal            repos.PersonalRepo
	PersonalHistory     repos.PersonalHistoryRepo
	Sitio               repos.SitioRepo
	Address             repos.AddressRepo
	PersonalAddress     repos.PersonalAddressRepo
	ResidentProfile     repos.ResidentProfileRepo
	Account             repos.AccountRepo
	Household           repos.HouseholdRepo
	Family              repos.FamilyRepo
	FamilyComposition   repos.FamilyCompositionRepo
	Business            repos.BusinessRepo
	BusinessHistory     repos.BusinessHistoryRepo
	BusinessFile        repos.BusinessFileRepo
	BusinessRespondent  repos.BusinessRespondentRepo
	RequestRegistration repos.RequestRegistrationRepo
	Notification        repos.NotificationRepo
	Medicine            repos.MedicineRepo
	Kyc                 repos.KycRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Staff:               repos.NewStaffRepo(db, log),
		Personal:            repos.NewPersonalRepo(db, log),
		PersonalHistory:     repos.NewPersonalHistoryRepo(db, log),
		Sitio:               repos.NewSitioRepo(db, log),
		Address:             repos.NewAddressRepo(db, log),
		PersonalAddress:     repos.NewPersonalAddressRepo(db, log),
		ResidentProfile:     repos.NewResidentProfileRepo(db, log),
		Account:             repos.NewAccountRepo(db, log),
		Household:           repos.NewHouseholdRepo(db, log),
		Family:              repos.NewFamilyRepo(db, log),
		FamilyComposition:   repos.NewFamilyCompositionRepo(db, log),
		Business:            repos.NewBusinessRepo(db, log),
		BusinessHistory:     repos.NewBusinessHistoryRepo(db, log),
		BusinessFile:        repos.NewBusinessFileRepo(db, log),
		BusinessRespondent:  repos.NewBusinessRespondentRepo(db, log),
		RequestRegistration: repos.NewRequestRegistrationRepo(db, log),
		Notification:        repos.NewNotificationRepo(db, log),
		Medicine:            repos.NewMedicineRepo(db, log),
		Kyc:                 repos.NewKycRepo(db, log),
	}
}
