package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
	"github.com/openbims/bims-backend/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New connects to Postgres, or to a local sqlite file when DB_DRIVER=sqlite
// is set (development without a Postgres instance).
func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := utils.GetEnv("DB_DRIVER", "postgres", log)

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "bims.db", log)
		dialector = sqlite.Open(path)
	default:
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "bims", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		dialector = postgres.Open(dsn)
	}

	serviceLog.Info("Connecting to database...", "driver", driver)
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &Service{db: gormDB, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
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
		&types.Sequence{},
		&types.MedicineItem{},
		&types.MedicineRequest{},
		&types.MedicineRequestFile{},
		&types.KycVerification{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}

	if s.db.Dialector.Name() != "postgres" {
		return nil
	}

	s.log.Info("Configuring cascade foreign keys...")
	cascades := []struct {
		table, constraint, column, refTable, refColumn string
	}{
		{"personal_history", "fk_personal_history_per_id", "per_id", "personal", "per_id"},
		{"personal_address", "fk_personal_address_per_id", "per_id", "personal", "per_id"},
		{"personal_address_history", "fk_personal_address_history_per_id", "per_id", "personal", "per_id"},
		{"business_history", "fk_business_history_bus_id", "bus_id", "business", "bus_id"},
		{"business_file", "fk_business_file_bus_id", "bus_id", "business", "bus_id"},
		{"family_composition", "fk_family_composition_fam_id", "fam_id", "family", "fam_id"},
		{"notification_recipient", "fk_notification_recipient_notification_id", "notification_id", "notification", "id"},
		{"request_registration_composition", "fk_request_registration_composition_request_id", "request_id", "request_registration", "id"},
		{"medicine_request_file", "fk_medicine_request_file_request_id", "request_id", "medicine_request", "id"},
		{"kyc_verification", "fk_kyc_verification_per_id", "per_id", "personal", "per_id"},
		{"account", "fk_account_rp_id", "rp_id", "resident_profile", "rp_id"},
	}
	for _, fk := range cascades {
		stmt := fmt.Sprintf(`
			ALTER TABLE %q
			DROP CONSTRAINT IF EXISTS %q;
			ALTER TABLE %q
			ADD CONSTRAINT %q
			FOREIGN KEY (%q)
			REFERENCES %q(%q)
			ON DELETE CASCADE
		`, fk.table, fk.constraint, fk.table, fk.constraint, fk.column, fk.refTable, fk.refColumn)
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add %s: %w", fk.constraint, err)
		}
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
