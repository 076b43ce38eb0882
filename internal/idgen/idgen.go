package idgen

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
)

// Sequence names, one per human-readable ID family.
const (
	SeqResidentProfile    = "resident_profile"
	SeqHousehold          = "household"
	SeqFamily             = "family"
	SeqBusiness           = "business"
	SeqBusinessRespondent = "business_respondent"
)

// Generator issues human-readable sequential IDs. Numbers are claimed from
// the sequence table with an atomic increment inside the caller's
// transaction; the row lock taken by the UPDATE serializes concurrent
// claimers, so two registrations can never observe the same next value.
// A rolled-back transaction releases its number for the next claimer.
type Generator struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewGenerator(db *gorm.DB, baseLog *logger.Logger) *Generator {
	return &Generator{
		db:  db,
		log: baseLog.With("component", "IDGenerator"),
		now: time.Now,
	}
}

// WithClock returns a copy of the generator using the supplied clock.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	clone := *g
	clone.now = now
	return &clone
}

func (g *Generator) NextResidentID(ctx context.Context, tx *gorm.DB) (string, error) {
	seq, err := g.claim(ctx, tx, SeqResidentProfile)
	if err != nil {
		return "", err
	}
	return FormatResidentID(g.now(), seq), nil
}

func (g *Generator) NextHouseholdID(ctx context.Context, tx *gorm.DB) (string, error) {
	seq, err := g.claim(ctx, tx, SeqHousehold)
	if err != nil {
		return "", err
	}
	return FormatHouseholdID(g.now(), seq), nil
}

func (g *Generator) NextFamilyID(ctx context.Context, tx *gorm.DB, buildingType string) (string, error) {
	seq, err := g.claim(ctx, tx, SeqFamily)
	if err != nil {
		return "", err
	}
	return FormatFamilyID(g.now(), seq, buildingType), nil
}

func (g *Generator) NextBusinessID(ctx context.Context, tx *gorm.DB) (string, error) {
	seq, err := g.claim(ctx, tx, SeqBusiness)
	if err != nil {
		return "", err
	}
	return FormatBusinessID(g.now(), seq), nil
}

func (g *Generator) NextBusinessRespondentID(ctx context.Context, tx *gorm.DB) (string, error) {
	seq, err := g.claim(ctx, tx, SeqBusinessRespondent)
	if err != nil {
		return "", err
	}
	return FormatBusinessRespondentID(g.now(), seq), nil
}

func (g *Generator) claim(ctx context.Context, tx *gorm.DB, name string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = g.db
	}

	if err := transaction.WithContext(ctx).
		Exec(`INSERT INTO "sequence" (name, value) VALUES (?, 0) ON CONFLICT (name) DO NOTHING`, name).Error; err != nil {
		return 0, fmt.Errorf("seed sequence %q: %w", name, err)
	}

	var next int64
	if err := transaction.WithContext(ctx).
		Raw(`UPDATE "sequence" SET value = value + 1 WHERE name = ? RETURNING value`, name).
		Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("claim sequence %q: %w", name, err)
	}
	if next < 1 {
		return 0, fmt.Errorf("claim sequence %q: no row updated", name)
	}
	return next, nil
}
