package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/clients/gcp"
	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

type MedicineRequestInput struct {
	ItemID   uuid.UUID    `json:"item_id"`
	Quantity int          `json:"quantity"`
	Files    []FileUpload `json:"files"`
}

type MedicineService interface {
	CreateItem(ctx context.Context, name, unit string, quantity int) (*types.MedicineItem, error)
	// Request stages a resident's medicine request for BHW review.
	Request(ctx context.Context, rpID string, input MedicineRequestInput) (*types.MedicineRequest, error)
	// Dispense approves a pending request and deducts stock. The item row
	// is locked for the duration of the transaction so concurrent
	// dispenses cannot oversell the stock.
	Dispense(ctx context.Context, staffID uuid.UUID, requestID uuid.UUID) error
	Deny(ctx context.Context, staffID uuid.UUID, requestID uuid.UUID) error
}

type medicineService struct {
	db           *gorm.DB
	log          *logger.Logger
	medicineRepo repos.MedicineRepo
	profileRepo  repos.ResidentProfileRepo
	bucket       gcp.Bucket
	notifier     NotificationService
}

func NewMedicineService(
	db *gorm.DB,
	baseLog *logger.Logger,
	medicineRepo repos.MedicineRepo,
	profileRepo repos.ResidentProfileRepo,
	bucket gcp.Bucket,
	notifier NotificationService,
) MedicineService {
	return &medicineService{
		db:           db,
		log:          baseLog.With("service", "MedicineService"),
		medicineRepo: medicineRepo,
		profileRepo:  profileRepo,
		bucket:       bucket,
		notifier:     notifier,
	}
}

func (s *medicineService) CreateItem(ctx context.Context, name, unit string, quantity int) (*types.MedicineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", pkgerrors.ErrInvalidArgument)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", pkgerrors.ErrInvalidArgument)
	}
	created, err := s.medicineRepo.CreateItems(ctx, nil, []*types.MedicineItem{{
		ID:       uuid.New(),
		Name:     name,
		Unit:     unit,
		Quantity: quantity,
	}})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *medicineService) Request(ctx context.Context, rpID string, input MedicineRequestInput) (*types.MedicineRequest, error) {
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", pkgerrors.ErrInvalidArgument)
	}
	if len(input.Files) > 0 && s.bucket == nil {
		return nil, fmt.Errorf("%w: file storage is not configured", pkgerrors.ErrInvalidArgument)
	}

	var request *types.MedicineRequest
	var uploadedKeys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profiles, err := s.profileRepo.GetByIDs(ctx, tx, []string{rpID})
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			return fmt.Errorf("%w: resident %s", pkgerrors.ErrNotFound, rpID)
		}
		items, err := s.medicineRepo.GetItemByIDs(ctx, tx, []uuid.UUID{input.ItemID})
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: medicine item %s", pkgerrors.ErrNotFound, input.ItemID)
		}

		created, err := s.medicineRepo.CreateRequests(ctx, tx, []*types.MedicineRequest{{
			ID:       uuid.New(),
			RpID:     rpID,
			ItemID:   input.ItemID,
			Quantity: input.Quantity,
			Status:   types.MedicineRequestPending,
		}})
		if err != nil {
			return err
		}
		request = created[0]

		files := make([]*types.MedicineRequestFile, 0, len(input.Files))
		for _, upload := range input.Files {
			key := path.Join("medicine", request.ID.String(), uuid.New().String()+path.Ext(upload.Name))
			url, err := s.bucket.Upload(ctx, key, upload.ContentType, bytes.NewReader(upload.Data))
			if err != nil {
				return fmt.Errorf("upload %q: %w", upload.Name, err)
			}
			uploadedKeys = append(uploadedKeys, key)
			files = append(files, &types.MedicineRequestFile{
				ID:         uuid.New(),
				RequestID:  request.ID,
				Name:       upload.Name,
				Type:       upload.ContentType,
				StorageKey: key,
				URL:        url,
			})
		}
		_, err = s.medicineRepo.CreateRequestFiles(ctx, tx, files)
		return err
	})
	if err != nil {
		for _, key := range uploadedKeys {
			if delErr := s.bucket.Delete(ctx, key); delErr != nil {
				s.log.Warn("Failed to remove orphaned upload", "key", key, "error", delErr)
			}
		}
		return nil, err
	}
	return request, nil
}

func (s *medicineService) Dispense(ctx context.Context, staffID uuid.UUID, requestID uuid.UUID) error {
	var rpID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests, err := s.medicineRepo.GetRequestByIDs(ctx, tx, []uuid.UUID{requestID})
		if err != nil {
			return err
		}
		if len(requests) == 0 {
			return fmt.Errorf("%w: medicine request %s", pkgerrors.ErrNotFound, requestID)
		}
		request := requests[0]
		if request.Status != types.MedicineRequestPending {
			return fmt.Errorf("%w: request %s is already %s", pkgerrors.ErrConflict, requestID, request.Status)
		}
		rpID = request.RpID

		item, err := s.medicineRepo.GetItemForUpdate(ctx, tx, request.ItemID)
		if err != nil {
			return err
		}
		if item.Quantity < request.Quantity {
			return fmt.Errorf("%w: only %d of %s in stock", pkgerrors.ErrConflict, item.Quantity, item.Name)
		}
		if err := s.medicineRepo.SetItemQuantity(ctx, tx, item.ID, item.Quantity-request.Quantity); err != nil {
			return err
		}
		return s.medicineRepo.UpdateRequestStatus(ctx, tx, requestID, types.MedicineRequestDispensed, staffID)
	})
	if err != nil {
		return err
	}

	actor := staffID
	s.notifier.Emit(ctx, Notice{
		Title:        "Medicine request approved",
		Message:      "Your medicine request is ready for pickup",
		NotifType:    types.NotificationTypeProfiling,
		MobileRoute:  "/medicine",
		ActorStaffID: &actor,
		RpIDs:        []string{rpID},
	})
	return nil
}

func (s *medicineService) Deny(ctx context.Context, staffID uuid.UUID, requestID uuid.UUID) error {
	var rpID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests, err := s.medicineRepo.GetRequestByIDs(ctx, tx, []uuid.UUID{requestID})
		if err != nil {
			return err
		}
		if len(requests) == 0 {
			return fmt.Errorf("%w: medicine request %s", pkgerrors.ErrNotFound, requestID)
		}
		if requests[0].Status != types.MedicineRequestPending {
			return fmt.Errorf("%w: request %s is already %s", pkgerrors.ErrConflict, requestID, requests[0].Status)
		}
		rpID = requests[0].RpID
		return s.medicineRepo.UpdateRequestStatus(ctx, tx, requestID, types.MedicineRequestDenied, staffID)
	})
	if err != nil {
		return err
	}

	actor := staffID
	s.notifier.Emit(ctx, Notice{
		Title:        "Medicine request denied",
		Message:      "Your medicine request could not be fulfilled",
		NotifType:    types.NotificationTypeProfiling,
		MobileRoute:  "/medicine",
		ActorStaffID: &actor,
		RpIDs:        []string{rpID},
	})
	return nil
}
