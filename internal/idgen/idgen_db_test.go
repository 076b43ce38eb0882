package idgen

import (
	"context"
	"os"
	"sort"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&types.Sequence{}); err != nil {
		t.Fatalf("migrate sequence table: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM "sequence"`)
	})
	return db
}

func newTestGenerator(t *testing.T, db *gorm.DB) *Generator {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	fixed := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	return NewGenerator(db, log).WithClock(func() time.Time { return fixed })
}

func TestNextResidentIDUniqueAndOrdered(t *testing.T) {
	db := openTestDB(t)
	gen := newTestGenerator(t, db)
	ctx := context.Background()

	const n = 50
	ids := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			id, err := gen.NextResidentID(ctx, tx)
			if err != nil {
				return err
			}
			if _, dup := seen[id]; dup {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
			return nil
		})
		if err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
	}

	if !sort.StringsAreSorted(ids) {
		t.Fatal("issue order is not lexicographic")
	}
}

func TestRolledBackClaimIsNotDuplicated(t *testing.T) {
	db := openTestDB(t)
	gen := newTestGenerator(t, db)
	ctx := context.Background()

	var first string
	if err := db.Transaction(func(tx *gorm.DB) error {
		id, err := gen.NextHouseholdID(ctx, tx)
		first = id
		return err
	}); err != nil {
		t.Fatalf("first claim: %v", err)
	}

	// An aborted transaction releases its number; whatever the next commit
	// claims must still differ from every committed id.
	sentinel := gorm.ErrInvalidData
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := gen.NextHouseholdID(ctx, tx); err != nil {
			return err
		}
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("expected sentinel rollback, got %v", err)
	}

	var third string
	if err := db.Transaction(func(tx *gorm.DB) error {
		id, err := gen.NextHouseholdID(ctx, tx)
		third = id
		return err
	}); err != nil {
		t.Fatalf("third claim: %v", err)
	}

	if third <= first {
		t.Fatalf("committed ids not increasing across rollback: %s then %s", first, third)
	}
}
