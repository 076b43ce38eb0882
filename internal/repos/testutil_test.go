package repos

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

// openTestDB connects to the database named by TEST_POSTGRES_DSN and
// migrates the full schema. Tests are skipped when the DSN is not set.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Staff{},
		&types.Personal{},
		&types.PersonalHistory{},
		&types.Sitio{},
		&types.Address{},
		&types.PersonalAddress{},
		&types.PersonalAddressHistory{},
		&types.ResidentProfile{},
		&types.Account{},
		&types.Household{},
		&types.Family{},
		&types.FamilyComposition{},
		&types.Respondent{},
		&types.BusinessRespondent{},
		&types.Business{},
		&types.BusinessHistory{},
		&types.BusinessFile{},
		&types.RequestRegistration{},
		&types.RequestRegistrationComposition{},
		&types.Notification{},
		&types.NotificationRecipient{},
		&types.MedicineItem{},
		&types.MedicineRequest{},
		&types.MedicineRequestFile{},
		&types.KycVerification{},
		&types.Sequence{},
	); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}

	t.Cleanup(func() {
		// Child tables first so deletes never trip foreign keys.
		for _, table := range []string{
			"kyc_verification", "medicine_request_file", "medicine_request", "medicine_item",
			"notification_recipient", "notification",
			"request_registration_composition", "request_registration",
			"business_file", "business_history", "business", "business_respondent", "respondent",
			"family_composition", "family", "household",
			"account", "resident_profile",
			"personal_address_history", "personal_address", "address", "sitio",
			"personal_history", "personal", "staff", `"sequence"`,
		} {
			db.Exec("DELETE FROM " + table)
		}
	})
	return db
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}
