package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

func newTestMedicine(t *testing.T, db *gorm.DB) (MedicineService, uuid.UUID, string) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	staffID := uuid.New()
	if err := db.Create(&types.Staff{
		ID: staffID, FirstName: "Ana", LastName: "Reyes",
		Assignment: types.StaffAssignmentBHW,
		Username:   "bhw." + uuid.New().String()[:8], Password: "x",
	}).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	person := &types.Personal{
		FirstName: "Juan", LastName: "Dela Cruz",
		DateOfBirth: time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC),
		Sex:         "M", Status: "Active",
	}
	if err := db.Create(person).Error; err != nil {
		t.Fatalf("seed person: %v", err)
	}
	rpID := "25010100001"
	if err := db.Create(&types.ResidentProfile{
		RpID: rpID, PerID: person.PerID, StaffID: staffID,
	}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	notifier := NewNotificationService(db, log,
		repos.NewNotificationRepo(db, log),
		repos.NewStaffRepo(db, log),
		repos.NewFamilyCompositionRepo(db, log),
		nil,
	)
	svc := NewMedicineService(db, log,
		repos.NewMedicineRepo(db, log),
		repos.NewResidentProfileRepo(db, log),
		nil, notifier,
	)
	return svc, staffID, rpID
}

func TestDispenseDeductsStock(t *testing.T) {
	db := openTestDB(t)
	svc, staffID, rpID := newTestMedicine(t, db)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "Paracetamol 500mg", "tablet", 20)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	request, err := svc.Request(ctx, rpID, MedicineRequestInput{ItemID: item.ID, Quantity: 8})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if err := svc.Dispense(ctx, staffID, request.ID); err != nil {
		t.Fatalf("Dispense: %v", err)
	}

	var after types.MedicineItem
	if err := db.First(&after, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if after.Quantity != 12 {
		t.Fatalf("stock = %d after dispensing 8 of 20, want 12", after.Quantity)
	}

	// A second dispense of the same request must not deduct again.
	if err := svc.Dispense(ctx, staffID, request.ID); !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("re-dispense error = %v, want conflict", err)
	}
}

func TestDispenseRefusesOversell(t *testing.T) {
	db := openTestDB(t)
	svc, staffID, rpID := newTestMedicine(t, db)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "Amoxicillin 250mg", "capsule", 5)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	request, err := svc.Request(ctx, rpID, MedicineRequestInput{ItemID: item.ID, Quantity: 6})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if err := svc.Dispense(ctx, staffID, request.ID); !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("oversell error = %v, want conflict", err)
	}

	var after types.MedicineItem
	if err := db.First(&after, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if after.Quantity != 5 {
		t.Fatalf("stock changed to %d on a refused dispense, want 5", after.Quantity)
	}
	var req types.MedicineRequest
	if err := db.First(&req, "id = ?", request.ID).Error; err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if req.Status != types.MedicineRequestPending {
		t.Fatalf("request status = %s after refused dispense, want Pending", req.Status)
	}
}

func TestDenyLeavesStockAlone(t *testing.T) {
	db := openTestDB(t)
	svc, staffID, rpID := newTestMedicine(t, db)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, "Cetirizine 10mg", "tablet", 10)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	request, err := svc.Request(ctx, rpID, MedicineRequestInput{ItemID: item.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if err := svc.Deny(ctx, staffID, request.ID); err != nil {
		t.Fatalf("Deny: %v", err)
	}
	var after types.MedicineItem
	if err := db.First(&after, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if after.Quantity != 10 {
		t.Fatalf("stock = %d after deny, want 10", after.Quantity)
	}
}
