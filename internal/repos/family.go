package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type FamilyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, families []*types.Family) ([]*types.Family, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, famIDs []string) ([]*types.Family, error)
	GetByHouseholdIDs(ctx context.Context, tx *gorm.DB, hhIDs []string) ([]*types.Family, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Family, error)
}

type familyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFamilyRepo(db *gorm.DB, baseLog *logger.Logger) FamilyRepo {
	repoLog := baseLog.With("repo", "FamilyRepo")
	return &familyRepo{db: db, log: repoLog}
}

func (r *familyRepo) Create(ctx context.Context, tx *gorm.DB, families []*types.Family) ([]*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(families) == 0 {
		return []*types.Family{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&families).Error; err != nil {
		return nil, translateCreate(err)
	}
	return families, nil
}

func (r *familyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, famIDs []string) ([]*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Family
	if len(famIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("fam_id IN ?", famIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *familyRepo) GetByHouseholdIDs(ctx context.Context, tx *gorm.DB, hhIDs []string) ([]*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Family
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

func (r *familyRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Order("fam_id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var results []*types.Family
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type FamilyCompositionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.FamilyComposition) ([]*types.FamilyComposition, error)
	GetByFamIDs(ctx context.Context, tx *gorm.DB, famIDs []string) ([]*types.FamilyComposition, error)
	// CurrentByRpID resolves the profile's current family membership: the
	// most recently recorded composition, or nil when the profile has none.
	CurrentByRpID(ctx context.Context, tx *gorm.DB, rpID string) (*types.FamilyComposition, error)
}

type familyCompositionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFamilyCompositionRepo(db *gorm.DB, baseLog *logger.Logger) FamilyCompositionRepo {
	repoLog := baseLog.With("repo", "FamilyCompositionRepo")
	return &familyCompositionRepo{db: db, log: repoLog}
}

func (r *familyCompositionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.FamilyComposition) ([]*types.FamilyComposition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.FamilyComposition{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, translateCreate(err)
	}
	return rows, nil
}

func (r *familyCompositionRepo) GetByFamIDs(ctx context.Context, tx *gorm.DB, famIDs []string) ([]*types.FamilyComposition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.FamilyComposition
	if len(famIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("fam_id IN ?", famIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *familyCompositionRepo) CurrentByRpID(ctx context.Context, tx *gorm.DB, rpID string) (*types.FamilyComposition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.FamilyComposition
	if err := transaction.WithContext(ctx).
		Where("rp_id = ?", rpID).
		Order("recorded_at DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
