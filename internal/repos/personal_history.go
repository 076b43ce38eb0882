package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type PersonalHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PersonalHistory) ([]*types.PersonalHistory, error)
	GetByPerID(ctx context.Context, tx *gorm.DB, perID int) ([]*types.PersonalHistory, error)
	MaxHistoryID(ctx context.Context, tx *gorm.DB, perID int) (int, error)
}

type personalHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonalHistoryRepo(db *gorm.DB, baseLog *logger.Logger) PersonalHistoryRepo {
	repoLog := baseLog.With("repo", "PersonalHistoryRepo")
	return &personalHistoryRepo{db: db, log: repoLog}
}

func (r *personalHistoryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PersonalHistory) ([]*types.PersonalHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.PersonalHistory{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, translateCreate(err)
	}
	return rows, nil
}

func (r *personalHistoryRepo) GetByPerID(ctx context.Context, tx *gorm.DB, perID int) ([]*types.PersonalHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PersonalHistory
	if err := transaction.WithContext(ctx).
		Where("per_id = ?", perID).
		Order("history_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *personalHistoryRepo) MaxHistoryID(ctx context.Context, tx *gorm.DB, perID int) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.PersonalHistory{}).
		Where("per_id = ?", perID).
		Select("MAX(history_id)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
