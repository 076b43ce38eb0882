package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type StaffRepo interface {
	Create(ctx context.Context, tx *gorm.DB, staff []*types.Staff) ([]*types.Staff, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Staff, error)
	GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.Staff, error)
	GetByAssignment(ctx context.Context, tx *gorm.DB, assignment string) ([]*types.Staff, error)
}

type staffRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStaffRepo(db *gorm.DB, baseLog *logger.Logger) StaffRepo {
	repoLog := baseLog.With("repo", "StaffRepo")
	return &staffRepo{db: db, log: repoLog}
}

func (r *staffRepo) Create(ctx context.Context, tx *gorm.DB, staff []*types.Staff) ([]*types.Staff, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(staff) == 0 {
		return []*types.Staff{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&staff).Error; err != nil {
		return nil, translateCreate(err)
	}
	return staff, nil
}

func (r *staffRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Staff, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Staff
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

func (r *staffRepo) GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.Staff, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Staff
	if len(usernames) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("username IN ?", usernames).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *staffRepo) GetByAssignment(ctx context.Context, tx *gorm.DB, assignment string) ([]*types.Staff, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Staff
	if err := transaction.WithContext(ctx).
		Where("assignment = ?", assignment).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
