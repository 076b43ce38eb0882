package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

type FamilyDetail struct {
	Family  *types.Family              `json:"family"`
	Members []*types.FamilyComposition `json:"members"`
}

type FamilyService interface {
	Get(ctx context.Context, famID string) (*FamilyDetail, error)
	List(ctx context.Context, limit, offset int) ([]*types.Family, error)
	// AddMember records a new composition row joining the profile to the
	// family. Earlier memberships stay on record; the newest one wins.
	AddMember(ctx context.Context, staffID uuid.UUID, famID, rpID, role string) (*types.FamilyComposition, error)
}

type familyService struct {
	db              *gorm.DB
	log             *logger.Logger
	familyRepo      repos.FamilyRepo
	compositionRepo repos.FamilyCompositionRepo
	profileRepo     repos.ResidentProfileRepo
	notifier        NotificationService
}

func NewFamilyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	familyRepo repos.FamilyRepo,
	compositionRepo repos.FamilyCompositionRepo,
	profileRepo repos.ResidentProfileRepo,
	notifier NotificationService,
) FamilyService {
	return &familyService{
		db:              db,
		log:             baseLog.With("service", "FamilyService"),
		familyRepo:      familyRepo,
		compositionRepo: compositionRepo,
		profileRepo:     profileRepo,
		notifier:        notifier,
	}
}

func (s *familyService) Get(ctx context.Context, famID string) (*FamilyDetail, error) {
	families, err := s.familyRepo.GetByIDs(ctx, nil, []string{famID})
	if err != nil {
		return nil, err
	}
	if len(families) == 0 {
		return nil, fmt.Errorf("%w: family %s", pkgerrors.ErrNotFound, famID)
	}
	members, err := s.compositionRepo.GetByFamIDs(ctx, nil, []string{famID})
	if err != nil {
		return nil, err
	}
	return &FamilyDetail{Family: families[0], Members: members}, nil
}

func (s *familyService) List(ctx context.Context, limit, offset int) ([]*types.Family, error) {
	return s.familyRepo.List(ctx, nil, limit, offset)
}

func (s *familyService) AddMember(ctx context.Context, staffID uuid.UUID, famID, rpID, role string) (*types.FamilyComposition, error) {
	switch role {
	case types.CompositionRoleMother, types.CompositionRoleFather, types.CompositionRoleDependent, types.CompositionRoleIndependent:
	default:
		return nil, fmt.Errorf("%w: unknown family role %q", pkgerrors.ErrInvalidArgument, role)
	}

	var composition *types.FamilyComposition
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		families, err := s.familyRepo.GetByIDs(ctx, tx, []string{famID})
		if err != nil {
			return err
		}
		if len(families) == 0 {
			return fmt.Errorf("%w: family %s", pkgerrors.ErrNotFound, famID)
		}
		profiles, err := s.profileRepo.GetByIDs(ctx, tx, []string{rpID})
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			return fmt.Errorf("%w: resident %s", pkgerrors.ErrNotFound, rpID)
		}
		current, err := s.compositionRepo.CurrentByRpID(ctx, tx, rpID)
		if err != nil {
			return err
		}
		if current != nil && current.FamID == famID {
			return fmt.Errorf("%w: resident %s is already in family %s", pkgerrors.ErrConflict, rpID, famID)
		}

		created, err := s.compositionRepo.Create(ctx, tx, []*types.FamilyComposition{{
			ID:         uuid.New(),
			FamID:      famID,
			RpID:       rpID,
			Role:       role,
			RecordedAt: time.Now(),
		}})
		if err != nil {
			return err
		}
		composition = created[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	actor := staffID
	if rpIDs, recErr := s.notifier.FamilyMemberRecipients(ctx, famID); recErr == nil {
		filtered := rpIDs[:0]
		for _, id := range rpIDs {
			if id != rpID {
				filtered = append(filtered, id)
			}
		}
		if len(filtered) > 0 {
			s.notifier.Emit(ctx, Notice{
				Title:        "Family member added",
				Message:      fmt.Sprintf("Resident %s joined your family", rpID),
				NotifType:    types.NotificationTypeFamily,
				MobileRoute:  "/family",
				MobileParams: map[string]any{"fam_id": famID},
				ActorStaffID: &actor,
				RpIDs:        filtered,
			})
		}
	}
	return composition, nil
}
