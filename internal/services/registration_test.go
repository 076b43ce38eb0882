package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/idgen"
	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

type stubSync struct {
	fail  bool
	posts []string
}

func (s *stubSync) PostQueries(ctx context.Context, entity string, payload any) error {
	if s.fail {
		return errors.New("sibling system unavailable")
	}
	s.posts = append(s.posts, entity)
	return nil
}

func (s *stubSync) UpdateQueries(ctx context.Context, entity, id string, payload any) error {
	if s.fail {
		return errors.New("sibling system unavailable")
	}
	return nil
}

func (s *stubSync) DeleteQueries(ctx context.Context, entity, id string) error {
	return nil
}

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
		&types.Staff{}, &types.Personal{}, &types.PersonalHistory{},
		&types.Sitio{}, &types.Address{}, &types.PersonalAddress{}, &types.PersonalAddressHistory{},
		&types.ResidentProfile{}, &types.Account{},
		&types.Household{}, &types.Family{}, &types.FamilyComposition{},
		&types.Respondent{}, &types.BusinessRespondent{}, &types.Business{},
		&types.BusinessHistory{}, &types.BusinessFile{},
		&types.Notification{}, &types.NotificationRecipient{},
		&types.MedicineItem{}, &types.MedicineRequest{},
		&types.Sequence{},
	); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	t.Cleanup(func() {
		for _, table := range []string{
			"medicine_request", "medicine_item",
			"notification_recipient", "notification",
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

func newTestRegistration(t *testing.T, db *gorm.DB, sync *stubSync) (RegistrationService, uuid.UUID) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	staffID := uuid.New()
	if err := db.Create(&types.Staff{
		ID: staffID, FirstName: "Ana", LastName: "Reyes",
		Assignment: types.StaffAssignmentProfiling,
		Username:   "ana." + uuid.New().String()[:8], Password: "x",
	}).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	staffRepo := repos.NewStaffRepo(db, log)
	compositionRepo := repos.NewFamilyCompositionRepo(db, log)
	notificationRepo := repos.NewNotificationRepo(db, log)
	notifier := NewNotificationService(db, log, notificationRepo, staffRepo, compositionRepo, nil)

	svc := NewRegistrationService(
		db, log,
		Locality{Province: "Cebu", City: "Cebu City", Barangay: "San Roque"},
		idgen.NewGenerator(db, log),
		repos.NewPersonalRepo(db, log),
		repos.NewPersonalHistoryRepo(db, log),
		repos.NewSitioRepo(db, log),
		repos.NewAddressRepo(db, log),
		repos.NewPersonalAddressRepo(db, log),
		repos.NewResidentProfileRepo(db, log),
		repos.NewAccountRepo(db, log),
		repos.NewHouseholdRepo(db, log),
		repos.NewFamilyRepo(db, log),
		compositionRepo,
		repos.NewBusinessRepo(db, log),
		repos.NewBusinessFileRepo(db, log),
		sync, nil, notifier,
	)
	return svc, staffID
}

func fullInput() RegisterResidentInput {
	houseIndex := 0
	return RegisterResidentInput{
		Personal: &PersonalInput{
			FirstName:   "Juan",
			LastName:    "Dela Cruz",
			DateOfBirth: time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC),
			Sex:         "M",
		},
		Addresses: []AddressInput{{
			Province: "Cebu", City: "Cebu City", Barangay: "San Roque",
			Street: "Rizal St", Sitio: "Mahayahay",
		}},
		Account: &AccountInput{Username: "juan." + uuid.New().String()[:8], Password: "secret123"},
		Houses:  []string{"Mahayahay - Rizal St"},
		SoloFamily: &SoloFamilyInput{
			BuildingType: types.BuildingTypeRenter,
			HouseIndex:   &houseIndex,
		},
		Business: &BusinessInput{Name: "Sari-Sari Store"},
	}
}

func TestRegisterResidentFullCascade(t *testing.T) {
	db := openTestDB(t)
	sync := &stubSync{}
	svc, staffID := newTestRegistration(t, db, sync)
	ctx := context.Background()

	result, err := svc.RegisterResident(ctx, staffID, fullInput())
	if err != nil {
		t.Fatalf("RegisterResident: %v", err)
	}

	if result.Profile == nil || len(result.Profile.RpID) != 11 {
		t.Fatalf("unexpected profile: %+v", result.Profile)
	}
	if len(result.Households) != 1 || !strings.HasPrefix(result.Households[0].HhID, "HH-") {
		t.Fatalf("unexpected households: %+v", result.Households)
	}
	if result.Family == nil || !strings.HasSuffix(result.Family.FamID, "-R") {
		t.Fatalf("renter family id should end in -R: %+v", result.Family)
	}
	if result.Business == nil || !strings.HasPrefix(result.Business.BusID, "BUS-") {
		t.Fatalf("unexpected business: %+v", result.Business)
	}
	if result.Business.VerifiedAt == nil {
		t.Fatal("business registered with its owner should carry a verification date")
	}
	if len(sync.posts) != 1 || sync.posts[0] != "registration" {
		t.Fatalf("sync posts = %v", sync.posts)
	}

	// The solo member carries the INDEPENDENT role.
	var compositions []*types.FamilyComposition
	if err := db.Where("fam_id = ?", result.Family.FamID).Find(&compositions).Error; err != nil {
		t.Fatalf("load compositions: %v", err)
	}
	if len(compositions) != 1 || compositions[0].Role != types.CompositionRoleIndependent {
		t.Fatalf("compositions = %+v", compositions)
	}

	// A new person starts at history version 1, attributed to the acting
	// staff, and the registration-time address links carry that version.
	var history []*types.PersonalHistory
	if err := db.Where("per_id = ?", result.Personal.PerID).Find(&history).Error; err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(history) != 1 || history[0].HistoryID != 1 {
		t.Fatalf("history rows = %+v, want a single version 1", history)
	}
	if history[0].StaffID != staffID {
		t.Fatalf("history attributed to %s, want %s", history[0].StaffID, staffID)
	}
	var addressHistory []*types.PersonalAddressHistory
	if err := db.Where("per_id = ?", result.Personal.PerID).Find(&addressHistory).Error; err != nil {
		t.Fatalf("load address history: %v", err)
	}
	if len(addressHistory) != 1 || addressHistory[0].HistoryID != 1 {
		t.Fatalf("address history rows = %+v, want one tagged with version 1", addressHistory)
	}

	// The person's home address and the house resolve to one row.
	var addressCount int64
	if err := db.Model(&types.Address{}).Count(&addressCount).Error; err != nil {
		t.Fatalf("count addresses: %v", err)
	}
	if addressCount != 1 {
		t.Fatalf("address rows = %d, want 1 (tuple dedup)", addressCount)
	}
}

func TestRegisterResidentNotifiesAdmins(t *testing.T) {
	db := openTestDB(t)
	svc, staffID := newTestRegistration(t, db, &stubSync{})
	ctx := context.Background()

	adminID := uuid.New()
	if err := db.Create(&types.Staff{
		ID: adminID, FirstName: "Rosa", LastName: "Lim",
		Assignment: types.StaffAssignmentAdmin,
		Username:   "rosa." + uuid.New().String()[:8], Password: "x",
	}).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	if _, err := svc.RegisterResident(ctx, staffID, fullInput()); err != nil {
		t.Fatalf("RegisterResident: %v", err)
	}

	// Household creation and the cascade-created business both reach the
	// admin set.
	for _, notifType := range []string{types.NotificationTypeHousehold, types.NotificationTypeBusiness} {
		var count int64
		err := db.Model(&types.NotificationRecipient{}).
			Joins("JOIN notification ON notification.id = notification_recipient.notification_id").
			Where("notification.notif_type = ? AND notification_recipient.staff_id = ?", notifType, adminID).
			Count(&count).Error
		if err != nil {
			t.Fatalf("count %s notifications: %v", notifType, err)
		}
		if count != 1 {
			t.Fatalf("%s notifications for admin = %d, want 1", notifType, count)
		}
	}
}

func TestRegisterResidentRollsBackOnSyncFailure(t *testing.T) {
	db := openTestDB(t)
	sync := &stubSync{fail: true}
	svc, staffID := newTestRegistration(t, db, sync)
	ctx := context.Background()

	if _, err := svc.RegisterResident(ctx, staffID, fullInput()); err == nil {
		t.Fatal("expected registration to fail when the mirror write fails")
	}

	// Nothing may survive the rollback.
	for _, probe := range []struct {
		name  string
		model any
	}{
		{"personal", &types.Personal{}},
		{"resident_profile", &types.ResidentProfile{}},
		{"account", &types.Account{}},
		{"household", &types.Household{}},
		{"family", &types.Family{}},
		{"family_composition", &types.FamilyComposition{}},
		{"business", &types.Business{}},
		{"address", &types.Address{}},
		{"personal_address", &types.PersonalAddress{}},
	} {
		var count int64
		if err := db.Model(probe.model).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", probe.name, err)
		}
		if count != 0 {
			t.Fatalf("%s has %d rows after rollback, want 0", probe.name, count)
		}
	}
}

func TestRegisterResidentJoinFamily(t *testing.T) {
	db := openTestDB(t)
	sync := &stubSync{}
	svc, staffID := newTestRegistration(t, db, sync)
	ctx := context.Background()

	first, err := svc.RegisterResident(ctx, staffID, fullInput())
	if err != nil {
		t.Fatalf("register head: %v", err)
	}

	input := RegisterResidentInput{
		Personal: &PersonalInput{
			FirstName:   "Maria",
			LastName:    "Dela Cruz",
			DateOfBirth: time.Date(1992, 6, 10, 0, 0, 0, 0, time.UTC),
			Sex:         "F",
		},
		JoinFamily: &JoinFamilyInput{FamID: first.Family.FamID, Role: types.CompositionRoleMother},
	}
	second, err := svc.RegisterResident(ctx, staffID, input)
	if err != nil {
		t.Fatalf("register joiner: %v", err)
	}
	if second.Family.FamID != first.Family.FamID {
		t.Fatalf("joiner got family %s, want %s", second.Family.FamID, first.Family.FamID)
	}
	if second.Profile.RpID == first.Profile.RpID {
		t.Fatal("profiles share an rp_id")
	}
	if !(first.Profile.RpID < second.Profile.RpID) {
		t.Fatalf("same-day ids out of order: %s then %s", first.Profile.RpID, second.Profile.RpID)
	}
}

func TestRegisterResidentValidation(t *testing.T) {
	db := openTestDB(t)
	svc, staffID := newTestRegistration(t, db, &stubSync{})
	ctx := context.Background()

	cases := []struct {
		name string
		mut  func(*RegisterResidentInput)
	}{
		{"no person", func(in *RegisterResidentInput) { in.Personal = nil }},
		{"solo and join", func(in *RegisterResidentInput) {
			in.JoinFamily = &JoinFamilyInput{FamID: "x", Role: types.CompositionRoleMother}
		}},
		{"bad building type", func(in *RegisterResidentInput) { in.SoloFamily.BuildingType = "Squatter" }},
		{"house index out of range", func(in *RegisterResidentInput) {
			idx := 5
			in.SoloFamily.HouseIndex = &idx
		}},
		{"empty business name", func(in *RegisterResidentInput) { in.Business.Name = "  " }},
	}
	for _, tc := range cases {
		input := fullInput()
		tc.mut(&input)
		if _, err := svc.RegisterResident(ctx, staffID, input); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}
