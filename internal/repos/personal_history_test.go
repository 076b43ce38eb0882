package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/openbims/bims-backend/internal/types"
)

func TestPersonalHistorySequence(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	staffID := uuid.New()
	if err := db.Create(&types.Staff{ID: staffID, FirstName: "Ana", LastName: "Reyes", Assignment: types.StaffAssignmentAdmin, Username: "ana.hist", Password: "x"}).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	person := &types.Personal{FirstName: "Maria", LastName: "Santos", DateOfBirth: time.Date(1985, 7, 1, 0, 0, 0, 0, time.UTC), Sex: "F"}
	if err := db.Create(person).Error; err != nil {
		t.Fatalf("seed person: %v", err)
	}

	repo := NewPersonalHistoryRepo(db, log)

	maxID, err := repo.MaxHistoryID(ctx, nil, person.PerID)
	if err != nil {
		t.Fatalf("MaxHistoryID on empty history: %v", err)
	}
	if maxID != 0 {
		t.Fatalf("empty history MaxHistoryID = %d, want 0", maxID)
	}

	for i := 1; i <= 3; i++ {
		_, err := repo.Create(ctx, nil, []*types.PersonalHistory{{
			ID:        uuid.New(),
			PerID:     person.PerID,
			HistoryID: i,
			Snapshot:  datatypes.JSON([]byte(`{}`)),
			StaffID:   staffID,
			Reason:    "correction",
		}})
		if err != nil {
			t.Fatalf("create history %d: %v", i, err)
		}
	}

	maxID, err = repo.MaxHistoryID(ctx, nil, person.PerID)
	if err != nil {
		t.Fatalf("MaxHistoryID: %v", err)
	}
	if maxID != 3 {
		t.Fatalf("MaxHistoryID = %d, want 3", maxID)
	}

	rows, err := repo.GetByPerID(ctx, nil, person.PerID)
	if err != nil {
		t.Fatalf("GetByPerID: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d history rows, want 3", len(rows))
	}
	for i, row := range rows {
		if row.HistoryID != i+1 {
			t.Fatalf("history not ordered: position %d has history_id %d", i, row.HistoryID)
		}
	}
}

func TestPersonalHistoryDuplicateVersionRejected(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	staffID := uuid.New()
	if err := db.Create(&types.Staff{ID: staffID, FirstName: "Ben", LastName: "Cruz", Assignment: types.StaffAssignmentAdmin, Username: "ben.hist", Password: "x"}).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	person := &types.Personal{FirstName: "Jose", LastName: "Ramos", DateOfBirth: time.Date(1970, 1, 15, 0, 0, 0, 0, time.UTC), Sex: "M"}
	if err := db.Create(person).Error; err != nil {
		t.Fatalf("seed person: %v", err)
	}

	repo := NewPersonalHistoryRepo(db, log)
	row := func() *types.PersonalHistory {
		return &types.PersonalHistory{
			ID:        uuid.New(),
			PerID:     person.PerID,
			HistoryID: 1,
			Snapshot:  datatypes.JSON([]byte(`{}`)),
			StaffID:   staffID,
		}
	}
	if _, err := repo.Create(ctx, nil, []*types.PersonalHistory{row()}); err != nil {
		t.Fatalf("first version: %v", err)
	}
	if _, err := repo.Create(ctx, nil, []*types.PersonalHistory{row()}); err == nil {
		t.Fatal("expected duplicate (per_id, history_id) to be rejected")
	}
}
