package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type AccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, accounts []*types.Account) ([]*types.Account, error)
	GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.Account, error)
	GetByRpIDs(ctx context.Context, tx *gorm.DB, rpIDs []string) ([]*types.Account, error)
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	repoLog := baseLog.With("repo", "AccountRepo")
	return &accountRepo{db: db, log: repoLog}
}

func (r *accountRepo) Create(ctx context.Context, tx *gorm.DB, accounts []*types.Account) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(accounts) == 0 {
		return []*types.Account{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&accounts).Error; err != nil {
		return nil, translateCreate(err)
	}
	return accounts, nil
}

func (r *accountRepo) GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Account
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

func (r *accountRepo) GetByRpIDs(ctx context.Context, tx *gorm.DB, rpIDs []string) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Account
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
