package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/openbims/bims-backend/internal/types"
)

func TestDeleteCreatedBefore(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	staffID := uuid.New()
	if err := db.Create(&types.Staff{ID: staffID, FirstName: "Ana", LastName: "Reyes", Assignment: types.StaffAssignmentProfiling, Username: "ana.reyes", Password: "x"}).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	person := &types.Personal{FirstName: "Juan", LastName: "Dela Cruz", DateOfBirth: time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC), Sex: "M"}
	if err := db.Create(person).Error; err != nil {
		t.Fatalf("seed person: %v", err)
	}
	profile := &types.ResidentProfile{RpID: "25010100001", PerID: person.PerID, StaffID: staffID}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	repo := NewRequestRegistrationRepo(db, log)
	now := time.Now()

	stale := &types.RequestRegistration{
		ID:           uuid.New(),
		RpID:         profile.RpID,
		Payload:      datatypes.JSON([]byte(`{}`)),
		Status:       "Pending",
		ReqCreatedAt: now.Add(-30*24*time.Hour - 10*time.Minute),
	}
	fresh := &types.RequestRegistration{
		ID:           uuid.New(),
		RpID:         profile.RpID,
		Payload:      datatypes.JSON([]byte(`{}`)),
		Status:       "Pending",
		ReqCreatedAt: now.Add(-29 * 24 * time.Hour),
	}
	if _, err := repo.Create(ctx, nil, []*types.RequestRegistration{stale, fresh}); err != nil {
		t.Fatalf("seed requests: %v", err)
	}

	removed, err := repo.DeleteCreatedBefore(ctx, nil, now.Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteCreatedBefore: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed %d rows, want 1", removed)
	}

	remaining, err := repo.GetByIDs(ctx, nil, []uuid.UUID{stale.ID, fresh.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != fresh.ID {
		t.Fatalf("expected only the fresh request to survive, got %d rows", len(remaining))
	}
}
