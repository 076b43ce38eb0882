package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type PersonalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, persons []*types.Personal) ([]*types.Personal, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, perIDs []int) ([]*types.Personal, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, perID int, fields map[string]interface{}) error
	Search(ctx context.Context, tx *gorm.DB, name string, limit, offset int) ([]*types.Personal, error)
}

type personalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonalRepo(db *gorm.DB, baseLog *logger.Logger) PersonalRepo {
	repoLog := baseLog.With("repo", "PersonalRepo")
	return &personalRepo{db: db, log: repoLog}
}

func (r *personalRepo) Create(ctx context.Context, tx *gorm.DB, persons []*types.Personal) ([]*types.Personal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(persons) == 0 {
		return []*types.Personal{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&persons).Error; err != nil {
		return nil, translateCreate(err)
	}
	return persons, nil
}

func (r *personalRepo) GetByIDs(ctx context.Context, tx *gorm.DB, perIDs []int) ([]*types.Personal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Personal
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

func (r *personalRepo) UpdateFields(ctx context.Context, tx *gorm.DB, perID int, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Personal{}).
		Where("per_id = ?", perID).
		Updates(fields).Error
}

func (r *personalRepo) Search(ctx context.Context, tx *gorm.DB, name string, limit, offset int) ([]*types.Personal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.Personal{})
	if name != "" {
		pattern := "%" + name + "%"
		query = query.Where("per_fname LIKE ? OR per_lname LIKE ?", pattern, pattern)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var results []*types.Personal
	if err := query.Order("per_id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
