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

// ResidentDetail bundles a profile with everything hanging off it.
type ResidentDetail struct {
	Profile    *types.ResidentProfile   `json:"profile"`
	Addresses  []*types.PersonalAddress `json:"addresses"`
	Households []*types.Household       `json:"households"`
	Family     *types.FamilyComposition `json:"family"`
	Businesses []*types.Business        `json:"businesses"`
}

type ResidentService interface {
	Get(ctx context.Context, rpID string) (*ResidentDetail, error)
	List(ctx context.Context, limit, offset int) ([]*types.ResidentProfile, int64, error)
}

type residentService struct {
	db                  *gorm.DB
	log                 *logger.Logger
	profileRepo         repos.ResidentProfileRepo
	personalAddressRepo repos.PersonalAddressRepo
	householdRepo       repos.HouseholdRepo
	compositionRepo     repos.FamilyCompositionRepo
	businessRepo        repos.BusinessRepo
}

func NewResidentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	profileRepo repos.ResidentProfileRepo,
	personalAddressRepo repos.PersonalAddressRepo,
	householdRepo repos.HouseholdRepo,
	compositionRepo repos.FamilyCompositionRepo,
	businessRepo repos.BusinessRepo,
) ResidentService {
	return &residentService{
		db:                  db,
		log:                 baseLog.With("service", "ResidentService"),
		profileRepo:         profileRepo,
		personalAddressRepo: personalAddressRepo,
		householdRepo:       householdRepo,
		compositionRepo:     compositionRepo,
		businessRepo:        businessRepo,
	}
}

func (s *residentService) Get(ctx context.Context, rpID string) (*ResidentDetail, error) {
	profiles, err := s.profileRepo.GetByIDs(ctx, nil, []string{rpID})
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: resident %s", pkgerrors.ErrNotFound, rpID)
	}
	profile := profiles[0]

	addresses, err := s.personalAddressRepo.GetByPerIDs(ctx, nil, []int{profile.PerID})
	if err != nil {
		return nil, err
	}
	households, err := s.householdRepo.GetByOwnerRpIDs(ctx, nil, []string{rpID})
	if err != nil {
		return nil, err
	}
	composition, err := s.compositionRepo.CurrentByRpID(ctx, nil, rpID)
	if err != nil {
		return nil, err
	}
	businesses, err := s.businessRepo.GetByOwnerRpIDs(ctx, nil, []string{rpID})
	if err != nil {
		return nil, err
	}

	return &ResidentDetail{
		Profile:    profile,
		Addresses:  addresses,
		Households: households,
		Family:     composition,
		Businesses: businesses,
	}, nil
}

func (s *residentService) List(ctx context.Context, limit, offset int) ([]*types.ResidentProfile, int64, error) {
	profiles, err := s.profileRepo.List(ctx, nil, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.profileRepo.Count(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
