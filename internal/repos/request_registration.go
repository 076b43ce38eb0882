package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type RequestRegistrationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, requests []*types.RequestRegistration) ([]*types.RequestRegistration, error)
	CreateCompositions(ctx context.Context, tx *gorm.DB, rows []*types.RequestRegistrationComposition) ([]*types.RequestRegistrationComposition, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.RequestRegistration, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	// DeleteCreatedBefore removes staged requests whose req_created_at is at
	// or before the cutoff, returning how many rows went away.
	DeleteCreatedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type requestRegistrationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRequestRegistrationRepo(db *gorm.DB, baseLog *logger.Logger) RequestRegistrationRepo {
	repoLog := baseLog.With("repo", "RequestRegistrationRepo")
	return &requestRegistrationRepo{db: db, log: repoLog}
}

func (r *requestRegistrationRepo) Create(ctx context.Context, tx *gorm.DB, requests []*types.RequestRegistration) ([]*types.RequestRegistration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(requests) == 0 {
		return []*types.RequestRegistration{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
		return nil, translateCreate(err)
	}
	return requests, nil
}

func (r *requestRegistrationRepo) CreateCompositions(ctx context.Context, tx *gorm.DB, rows []*types.RequestRegistrationComposition) ([]*types.RequestRegistrationComposition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.RequestRegistrationComposition{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, translateCreate(err)
	}
	return rows, nil
}

func (r *requestRegistrationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.RequestRegistration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RequestRegistration
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

func (r *requestRegistrationRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.RequestRegistration{}).Error
}

func (r *requestRegistrationRepo) DeleteCreatedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Where("req_created_at <= ?", cutoff).
		Delete(&types.RequestRegistration{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
