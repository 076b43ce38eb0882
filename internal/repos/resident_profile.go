package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type ResidentProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profiles []*types.ResidentProfile) ([]*types.ResidentProfile, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, rpIDs []string) ([]*types.ResidentProfile, error)
	GetByPerIDs(ctx context.Context, tx *gorm.DB, perIDs []int) ([]*types.ResidentProfile, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.ResidentProfile, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type residentProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResidentProfileRepo(db *gorm.DB, baseLog *logger.Logger) ResidentProfileRepo {
	repoLog := baseLog.With("repo", "ResidentProfileRepo")
	return &residentProfileRepo{db: db, log: repoLog}
}

func (r *residentProfileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*types.ResidentProfile) ([]*types.ResidentProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(profiles) == 0 {
		return []*types.ResidentProfile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&profiles).Error; err != nil {
		return nil, translateCreate(err)
	}
	return profiles, nil
}

func (r *residentProfileRepo) GetByIDs(ctx context.Context, tx *gorm.DB, rpIDs []string) ([]*types.ResidentProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ResidentProfile
	if len(rpIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("rp_id IN ?", rpIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *residentProfileRepo) GetByPerIDs(ctx context.Context, tx *gorm.DB, perIDs []int) ([]*types.ResidentProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ResidentProfile
	if len(perIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("per_id IN ?", perIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *residentProfileRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.ResidentProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Preload("Personal").Order("rp_id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var results []*types.ResidentProfile
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *residentProfileRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var n int64
	if err := transaction.WithContext(ctx).
		Model(&types.ResidentProfile{}).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
