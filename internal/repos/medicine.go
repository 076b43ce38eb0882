package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/types"
)

type MedicineRepo interface {
	CreateItems(ctx context.Context, tx *gorm.DB, items []*types.MedicineItem) ([]*types.MedicineItem, error)
	GetItemByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.MedicineItem, error)
	// GetItemForUpdate loads an item under a row lock; must run inside a
	// transaction.
	GetItemForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MedicineItem, error)
	SetItemQuantity(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error
	CreateRequests(ctx context.Context, tx *gorm.DB, requests []*types.MedicineRequest) ([]*types.MedicineRequest, error)
	CreateRequestFiles(ctx context.Context, tx *gorm.DB, files []*types.MedicineRequestFile) ([]*types.MedicineRequestFile, error)
	GetRequestByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.MedicineRequest, error)
	UpdateRequestStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, staffID uuid.UUID) error
}

type medicineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMedicineRepo(db *gorm.DB, baseLog *logger.Logger) MedicineRepo {
	repoLog := baseLog.With("repo", "MedicineRepo")
	return &medicineRepo{db: db, log: repoLog}
}

func (r *medicineRepo) CreateItems(ctx context.Context, tx *gorm.DB, items []*types.MedicineItem) ([]*types.MedicineItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(items) == 0 {
		return []*types.MedicineItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, translateCreate(err)
	}
	return items, nil
}

func (r *medicineRepo) GetItemByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.MedicineItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MedicineItem
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *medicineRepo) GetItemForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MedicineItem, error) {
	if tx == nil {
		return nil, fmt.Errorf("GetItemForUpdate requires a transaction")
	}

	item := &types.MedicineItem{}
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("medicine item %s: %w", id, pkgerrors.ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (r *medicineRepo) SetItemQuantity(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.MedicineItem{}).
		Where("id = ?", id).
		Update("med_quantity", quantity).Error
}

func (r *medicineRepo) CreateRequests(ctx context.Context, tx *gorm.DB, requests []*types.MedicineRequest) ([]*types.MedicineRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(requests) == 0 {
		return []*types.MedicineRequest{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
		return nil, translateCreate(err)
	}
	return requests, nil
}

func (r *medicineRepo) CreateRequestFiles(ctx context.Context, tx *gorm.DB, files []*types.MedicineRequestFile) ([]*types.MedicineRequestFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(files) == 0 {
		return []*types.MedicineRequestFile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&files).Error; err != nil {
		return nil, translateCreate(err)
	}
	return files, nil
}

func (r *medicineRepo) GetRequestByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.MedicineRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MedicineRequest
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *medicineRepo) UpdateRequestStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, staffID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.MedicineRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "staff_id": staffID}).Error
}
