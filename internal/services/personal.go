package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/clients/syncqueries"
	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

// personalSnapshotFields are the columns captured into personal_history
// before every mutation.
var personalSnapshotFields = []string{
	"per_fname", "per_mname", "per_lname", "per_suffix",
	"per_dob", "per_sex", "per_civil_status", "per_contact", "per_status",
}

type UpdatePersonalInput struct {
	Fields map[string]any `json:"fields"`
	Reason string         `json:"reason"`
}

type PersonalService interface {
	Get(ctx context.Context, perID int) (*types.Personal, error)
	Search(ctx context.Context, name string, limit, offset int) ([]*types.Personal, error)
	// Update snapshots the person's current tracked fields into history,
	// then applies the changes. History rows are never rewritten.
	Update(ctx context.Context, staffID uuid.UUID, perID int, input UpdatePersonalInput) (*types.Personal, error)
	History(ctx context.Context, perID int) ([]*types.PersonalHistory, error)
	// AddressesAt returns the person's address links as of a history
	// version.
	AddressesAt(ctx context.Context, perID, historyID int) ([]*types.PersonalAddressHistory, error)
}

type personalService struct {
	db                  *gorm.DB
	log                 *logger.Logger
	personalRepo        repos.PersonalRepo
	personalHistoryRepo repos.PersonalHistoryRepo
	personalAddressRepo repos.PersonalAddressRepo
	sync                syncqueries.Client
}

func NewPersonalService(
	db *gorm.DB,
	baseLog *logger.Logger,
	personalRepo repos.PersonalRepo,
	personalHistoryRepo repos.PersonalHistoryRepo,
	personalAddressRepo repos.PersonalAddressRepo,
	syncClient syncqueries.Client,
) PersonalService {
	return &personalService{
		db:                  db,
		log:                 baseLog.With("service", "PersonalService"),
		personalRepo:        personalRepo,
		personalHistoryRepo: personalHistoryRepo,
		personalAddressRepo: personalAddressRepo,
		sync:                syncClient,
	}
}

func (s *personalService) Get(ctx context.Context, perID int) (*types.Personal, error) {
	persons, err := s.personalRepo.GetByIDs(ctx, nil, []int{perID})
	if err != nil {
		return nil, err
	}
	if len(persons) == 0 {
		return nil, fmt.Errorf("%w: person %d", pkgerrors.ErrNotFound, perID)
	}
	return persons[0], nil
}

func (s *personalService) Search(ctx context.Context, name string, limit, offset int) ([]*types.Personal, error) {
	return s.personalRepo.Search(ctx, nil, name, limit, offset)
}

func (s *personalService) Update(ctx context.Context, staffID uuid.UUID, perID int, input UpdatePersonalInput) (*types.Personal, error) {
	if len(input.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", pkgerrors.ErrInvalidArgument)
	}
	allowed := make(map[string]struct{}, len(personalSnapshotFields))
	for _, f := range personalSnapshotFields {
		allowed[f] = struct{}{}
	}
	for field := range input.Fields {
		if _, ok := allowed[field]; !ok {
			return nil, fmt.Errorf("%w: field %q is not updatable", pkgerrors.ErrInvalidArgument, field)
		}
	}

	var updated *types.Personal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		persons, err := s.personalRepo.GetByIDs(ctx, tx, []int{perID})
		if err != nil {
			return err
		}
		if len(persons) == 0 {
			return fmt.Errorf("%w: person %d", pkgerrors.ErrNotFound, perID)
		}
		current := persons[0]

		snapshot, err := snapshotPersonal(current)
		if err != nil {
			return err
		}
		maxID, err := s.personalHistoryRepo.MaxHistoryID(ctx, tx, perID)
		if err != nil {
			return err
		}
		_, err = s.personalHistoryRepo.Create(ctx, tx, []*types.PersonalHistory{{
			ID:        uuid.New(),
			PerID:     perID,
			HistoryID: maxID + 1,
			Snapshot:  snapshot,
			StaffID:   staffID,
			Reason:    input.Reason,
		}})
		if err != nil {
			return err
		}

		if err := s.personalRepo.UpdateFields(ctx, tx, perID, input.Fields); err != nil {
			return err
		}
		refreshed, err := s.personalRepo.GetByIDs(ctx, tx, []int{perID})
		if err != nil {
			return err
		}
		updated = refreshed[0]

		if s.sync != nil {
			if err := s.sync.UpdateQueries(ctx, "personal", fmt.Sprintf("%d", perID), input.Fields); err != nil {
				return fmt.Errorf("mirror personal update: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *personalService) History(ctx context.Context, perID int) ([]*types.PersonalHistory, error) {
	return s.personalHistoryRepo.GetByPerID(ctx, nil, perID)
}

func (s *personalService) AddressesAt(ctx context.Context, perID, historyID int) ([]*types.PersonalAddressHistory, error) {
	return s.personalAddressRepo.GetHistoryAt(ctx, nil, perID, historyID)
}

func snapshotPersonal(p *types.Personal) (datatypes.JSON, error) {
	raw, err := json.Marshal(map[string]any{
		"per_fname":        p.FirstName,
		"per_mname":        p.MiddleName,
		"per_lname":        p.LastName,
		"per_suffix":       p.Suffix,
		"per_dob":          p.DateOfBirth.Format(time.RFC3339),
		"per_sex":          p.Sex,
		"per_civil_status": p.CivilStatus,
		"per_contact":      p.ContactNo,
		"per_status":       p.Status,
	})
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
