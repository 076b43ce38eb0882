package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type KycRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.KycVerification) ([]*types.KycVerification, error)
	GetByPerIDs(ctx context.Context, tx *gorm.DB, perIDs []int) ([]*types.KycVerification, error)
}

type kycRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewKycRepo(db *gorm.DB, baseLog *logger.Logger) KycRepo {
	repoLog := baseLog.With("repo", "KycRepo")
	return &kycRepo{db: db, log: repoLog}
}

func (r *kycRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.KycVerification) ([]*types.KycVerification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.KycVerification{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, translateCreate(err)
	}
	return rows, nil
}

func (r *kycRepo) GetByPerIDs(ctx context.Context, tx *gorm.DB, perIDs []int) ([]*types.KycVerification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.KycVerification
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
