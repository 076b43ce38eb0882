package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

func TestAddMember(t *testing.T) {
	db := openTestDB(t)
	sync := &stubSync{}
	registration, staffID := newTestRegistration(t, db, sync)
	ctx := context.Background()

	head, err := registration.RegisterResident(ctx, staffID, fullInput())
	if err != nil {
		t.Fatalf("register head: %v", err)
	}

	// A resident registered without a family placement.
	loner, err := registration.RegisterResident(ctx, staffID, RegisterResidentInput{
		Personal: &PersonalInput{
			FirstName:   "Pedro",
			LastName:    "Santos",
			DateOfBirth: time.Date(1985, 1, 20, 0, 0, 0, 0, time.UTC),
			Sex:         "M",
		},
	})
	if err != nil {
		t.Fatalf("register loner: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	notifier := NewNotificationService(db, log,
		repos.NewNotificationRepo(db, log),
		repos.NewStaffRepo(db, log),
		repos.NewFamilyCompositionRepo(db, log),
		nil,
	)
	svc := NewFamilyService(db, log,
		repos.NewFamilyRepo(db, log),
		repos.NewFamilyCompositionRepo(db, log),
		repos.NewResidentProfileRepo(db, log),
		notifier,
	)

	created, err := svc.AddMember(ctx, staffID, head.Family.FamID, loner.Profile.RpID, types.CompositionRoleFather)
	if err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if created.FamID != head.Family.FamID || created.Role != types.CompositionRoleFather {
		t.Fatalf("unexpected composition: %+v", created)
	}

	// Joining the family you are already in is a conflict.
	if _, err := svc.AddMember(ctx, staffID, head.Family.FamID, loner.Profile.RpID, types.CompositionRoleFather); !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("rejoin error = %v, want conflict", err)
	}

	if _, err := svc.AddMember(ctx, staffID, head.Family.FamID, loner.Profile.RpID, "COUSIN"); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("bad role error = %v, want invalid argument", err)
	}

	detail, err := svc.Get(ctx, head.Family.FamID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(detail.Members) != 2 {
		t.Fatalf("family has %d members, want 2", len(detail.Members))
	}
}
