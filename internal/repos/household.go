package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type HouseholdRepo interface {
	Create(ctx context.Context, tx *gorm.DB, households []*types.Household) ([]*types.Household, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, hhIDs []string) ([]*types.Household, error)
	GetByOwnerRpIDs(ctx context.Context, tx *gorm.DB, rpIDs []string) ([]*types.Household, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Household, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type householdRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHouseholdRepo(db *gorm.DB, baseLog *logger.Logger) HouseholdRepo {
	repoLog := baseLog.With("repo", "HouseholdRepo")
	return &householdRepo{db: db, log: repoLog}
}

func (r *householdRepo) Create(ctx context.Context, tx *gorm.DB, households []*types.Household) ([]*types.Household, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(households) == 0 {
		return []*types.Household{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&households).Error; err != nil {
		return nil, translateCreate(err)
	}
	return households, nil
}

func (r *householdRepo) GetByIDs(ctx context.Context, tx *gorm.DB, hhIDs []string) ([]*types.Household, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Household
	if len(hhIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("hh_id IN ?", hhIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *householdRepo) GetByOwnerRpIDs(ctx context.Context, tx *gorm.DB, rpIDs []string) ([]*types.Household, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Household
	if len(rpIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("owner_rp_id IN ?", rpIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *householdRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Household, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Preload("Address").Order("hh_id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var results []*types.Household
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *householdRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var n int64
	if err := transaction.WithContext(ctx).
		Model(&types.Household{}).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
