package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

type HouseholdDetail struct {
	Household *types.Household `json:"household"`
	Families  []*types.Family  `json:"families"`
}

type HouseholdService interface {
	Get(ctx context.Context, hhID string) (*HouseholdDetail, error)
	List(ctx context.Context, limit, offset int) ([]*types.Household, int64, error)
}

type householdService struct {
	db            *gorm.DB
	log           *logger.Logger
	householdRepo repos.HouseholdRepo
	familyRepo    repos.FamilyRepo
}

func NewHouseholdService(
	db *gorm.DB,
	baseLog *logger.Logger,
	householdRepo repos.HouseholdRepo,
	familyRepo repos.FamilyRepo,
) HouseholdService {
	return &householdService{
		db:            db,
		log:           baseLog.With("service", "HouseholdService"),
		householdRepo: householdRepo,
		familyRepo:    familyRepo,
	}
}

func (s *householdService) Get(ctx context.Context, hhID string) (*HouseholdDetail, error) {
	households, err := s.householdRepo.GetByIDs(ctx, nil, []string{hhID})
	if err != nil {
		return nil, err
	}
	if len(households) == 0 {
		return nil, fmt.Errorf("%w: household %s", pkgerrors.ErrNotFound, hhID)
	}
	families, err := s.familyRepo.GetByHouseholdIDs(ctx, nil, []string{hhID})
	if err != nil {
		return nil, err
	}
	return &HouseholdDetail{Household: households[0], Families: families}, nil
}

func (s *householdService) List(ctx context.Context, limit, offset int) ([]*types.Household, int64, error) {
	households, err := s.householdRepo.List(ctx, nil, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.householdRepo.Count(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	return households, total, nil
}
