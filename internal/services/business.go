package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/clients/gcp"
	"github.com/openbims/bims-backend/internal/clients/syncqueries"
	"github.com/openbims/bims-backend/internal/idgen"
	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

var businessSnapshotFields = []string{"bus_name", "bus_type", "bus_status"}

// RespondentInput describes the external contact for a business whose owner
// is not a registered resident.
type RespondentInput struct {
	FirstName string `json:"res_fname"`
	LastName  string `json:"res_lname"`
	ContactNo string `json:"res_contact"`
}

type CreateBusinessInput struct {
	Name       string           `json:"bus_name"`
	Type       string           `json:"bus_type"`
	OwnerRpID  *string          `json:"owner_rp_id"`
	Respondent *RespondentInput `json:"respondent"`
	Files      []FileUpload     `json:"files"`
}

type UpdateBusinessInput struct {
	Fields map[string]any `json:"fields"`
	Reason string         `json:"reason"`
}

type BusinessService interface {
	// Create registers a business owned by a resident profile or, when the
	// owner is external, by a newly minted business respondent.
	Create(ctx context.Context, staffID uuid.UUID, input CreateBusinessInput) (*types.Business, error)
	Get(ctx context.Context, busID string) (*types.Business, error)
	List(ctx context.Context, status string, limit, offset int) ([]*types.Business, error)
	Update(ctx context.Context, staffID uuid.UUID, busID string, input UpdateBusinessInput) (*types.Business, error)
	// Verify marks the business as inspected, stamping verified_at.
	Verify(ctx context.Context, staffID uuid.UUID, busID string) error
	History(ctx context.Context, busID string) ([]*types.BusinessHistory, error)
	Files(ctx context.Context, busID string) ([]*types.BusinessFile, error)
}

type businessService struct {
	db             *gorm.DB
	log            *logger.Logger
	gen            *idgen.Generator
	businessRepo   repos.BusinessRepo
	historyRepo    repos.BusinessHistoryRepo
	fileRepo       repos.BusinessFileRepo
	respondentRepo repos.BusinessRespondentRepo
	profileRepo    repos.ResidentProfileRepo
	sync           syncqueries.Client
	bucket         gcp.Bucket
	notifier       NotificationService
}

func NewBusinessService(
	db *gorm.DB,
	baseLog *logger.Logger,
	gen *idgen.Generator,
	businessRepo repos.BusinessRepo,
	historyRepo repos.BusinessHistoryRepo,
	fileRepo repos.BusinessFileRepo,
	respondentRepo repos.BusinessRespondentRepo,
	profileRepo repos.ResidentProfileRepo,
	syncClient syncqueries.Client,
	bucket gcp.Bucket,
	notifier NotificationService,
) BusinessService {
	return &businessService{
		db:             db,
		log:            baseLog.With("service", "BusinessService"),
		gen:            gen,
		businessRepo:   businessRepo,
		historyRepo:    historyRepo,
		fileRepo:       fileRepo,
		respondentRepo: respondentRepo,
		profileRepo:    profileRepo,
		sync:           syncClient,
		bucket:         bucket,
		notifier:       notifier,
	}
}

func (s *businessService) Create(ctx context.Context, staffID uuid.UUID, input CreateBusinessInput) (*types.Business, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: business name is required", pkgerrors.ErrInvalidArgument)
	}
	if (input.OwnerRpID == nil) == (input.Respondent == nil) {
		return nil, fmt.Errorf("%w: a business is owned by exactly one of a resident or a respondent", pkgerrors.ErrInvalidArgument)
	}
	if len(input.Files) > 0 && s.bucket == nil {
		return nil, fmt.Errorf("%w: file storage is not configured", pkgerrors.ErrInvalidArgument)
	}

	var business *types.Business
	var uploadedKeys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := &types.Business{
			Name:    strings.TrimSpace(input.Name),
			Type:    input.Type,
			Status:  types.BusinessStatusActive,
			StaffID: staffID,
		}

		if input.OwnerRpID != nil {
			profiles, err := s.profileRepo.GetByIDs(ctx, tx, []string{*input.OwnerRpID})
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				return fmt.Errorf("%w: resident %s", pkgerrors.ErrNotFound, *input.OwnerRpID)
			}
			record.OwnerRpID = input.OwnerRpID
		} else {
			respondents, err := s.respondentRepo.CreateRespondents(ctx, tx, []*types.Respondent{{
				FirstName: strings.TrimSpace(input.Respondent.FirstName),
				LastName:  strings.TrimSpace(input.Respondent.LastName),
				ContactNo: input.Respondent.ContactNo,
			}})
			if err != nil {
				return err
			}
			brID, err := s.gen.NextBusinessRespondentID(ctx, tx)
			if err != nil {
				return err
			}
			_, err = s.respondentRepo.Create(ctx, tx, []*types.BusinessRespondent{{
				BrID:         brID,
				RespondentID: respondents[0].ID,
			}})
			if err != nil {
				return err
			}
			record.BrID = &brID
		}

		busID, err := s.gen.NextBusinessID(ctx, tx)
		if err != nil {
			return err
		}
		record.BusID = busID

		created, err := s.businessRepo.Create(ctx, tx, []*types.Business{record})
		if err != nil {
			return err
		}
		business = created[0]

		files := make([]*types.BusinessFile, 0, len(input.Files))
		for _, upload := range input.Files {
			key := path.Join("business", busID, uuid.New().String()+path.Ext(upload.Name))
			url, err := s.bucket.Upload(ctx, key, upload.ContentType, bytes.NewReader(upload.Data))
			if err != nil {
				return fmt.Errorf("upload %q: %w", upload.Name, err)
			}
			uploadedKeys = append(uploadedKeys, key)
			files = append(files, &types.BusinessFile{
				ID:         uuid.New(),
				BusID:      busID,
				Name:       upload.Name,
				Type:       upload.ContentType,
				StorageKey: key,
				URL:        url,
			})
		}
		if _, err := s.fileRepo.Create(ctx, tx, files); err != nil {
			return err
		}

		if s.sync != nil {
			if err := s.sync.PostQueries(ctx, "business", map[string]any{
				"bus_id":   busID,
				"bus_name": record.Name,
			}); err != nil {
				return fmt.Errorf("mirror business: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		for _, key := range uploadedKeys {
			if delErr := s.bucket.Delete(ctx, key); delErr != nil {
				s.log.Warn("Failed to remove orphaned upload", "key", key, "error", delErr)
			}
		}
		return nil, err
	}

	actor := staffID
	if admins, adminErr := s.notifier.AdminRecipients(ctx); adminErr == nil && len(admins) > 0 {
		s.notifier.Emit(ctx, Notice{
			Title:        "New business registered",
			Message:      fmt.Sprintf("%s is awaiting verification", business.Name),
			NotifType:    types.NotificationTypeBusiness,
			WebRoute:     "/businesses",
			WebParams:    map[string]any{"bus_id": business.BusID},
			ActorStaffID: &actor,
			StaffIDs:     admins,
		})
	}
	return business, nil
}

func (s *businessService) Get(ctx context.Context, busID string) (*types.Business, error) {
	businesses, err := s.businessRepo.GetByIDs(ctx, nil, []string{busID})
	if err != nil {
		return nil, err
	}
	if len(businesses) == 0 {
		return nil, fmt.Errorf("%w: business %s", pkgerrors.ErrNotFound, busID)
	}
	return businesses[0], nil
}

func (s *businessService) List(ctx context.Context, status string, limit, offset int) ([]*types.Business, error) {
	return s.businessRepo.List(ctx, nil, status, limit, offset)
}

func (s *businessService) Update(ctx context.Context, staffID uuid.UUID, busID string, input UpdateBusinessInput) (*types.Business, error) {
	if len(input.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", pkgerrors.ErrInvalidArgument)
	}
	allowed := make(map[string]struct{}, len(businessSnapshotFields))
	for _, f := range businessSnapshotFields {
		allowed[f] = struct{}{}
	}
	for field := range input.Fields {
		if _, ok := allowed[field]; !ok {
			return nil, fmt.Errorf("%w: field %q is not updatable", pkgerrors.ErrInvalidArgument, field)
		}
	}

	var updated *types.Business
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		businesses, err := s.businessRepo.GetByIDs(ctx, tx, []string{busID})
		if err != nil {
			return err
		}
		if len(businesses) == 0 {
			return fmt.Errorf("%w: business %s", pkgerrors.ErrNotFound, busID)
		}
		current := businesses[0]

		snapshot, err := snapshotBusiness(current)
		if err != nil {
			return err
		}
		maxID, err := s.historyRepo.MaxHistoryID(ctx, tx, busID)
		if err != nil {
			return err
		}
		_, err = s.historyRepo.Create(ctx, tx, []*types.BusinessHistory{{
			ID:        uuid.New(),
			BusID:     busID,
			HistoryID: maxID + 1,
			Snapshot:  snapshot,
			StaffID:   staffID,
			Reason:    input.Reason,
		}})
		if err != nil {
			return err
		}

		if err := s.businessRepo.UpdateFields(ctx, tx, busID, input.Fields); err != nil {
			return err
		}
		refreshed, err := s.businessRepo.GetByIDs(ctx, tx, []string{busID})
		if err != nil {
			return err
		}
		updated = refreshed[0]

		if s.sync != nil {
			if err := s.sync.UpdateQueries(ctx, "business", busID, input.Fields); err != nil {
				return fmt.Errorf("mirror business update: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *businessService) Verify(ctx context.Context, staffID uuid.UUID, busID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		businesses, err := s.businessRepo.GetByIDs(ctx, tx, []string{busID})
		if err != nil {
			return err
		}
		if len(businesses) == 0 {
			return fmt.Errorf("%w: business %s", pkgerrors.ErrNotFound, busID)
		}
		if businesses[0].VerifiedAt != nil {
			return fmt.Errorf("%w: business %s already verified", pkgerrors.ErrConflict, busID)
		}
		now := time.Now()
		return s.businessRepo.UpdateFields(ctx, tx, busID, map[string]any{"verified_at": now})
	})
}

func (s *businessService) History(ctx context.Context, busID string) ([]*types.BusinessHistory, error) {
	return s.historyRepo.GetByBusID(ctx, nil, busID)
}

func (s *businessService) Files(ctx context.Context, busID string) ([]*types.BusinessFile, error) {
	return s.fileRepo.GetByBusIDs(ctx, nil, []string{busID})
}

func snapshotBusiness(b *types.Business) (datatypes.JSON, error) {
	raw, err := json.Marshal(map[string]any{
		"bus_name":   b.Name,
		"bus_type":   b.Type,
		"bus_status": b.Status,
	})
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
