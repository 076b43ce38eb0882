package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type BusinessRepo interface {
	Create(ctx context.Context, tx *gorm.DB, businesses []*types.Business) ([]*types.Business, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, busIDs []string) ([]*types.Business, error)
	GetByOwnerRpIDs(ctx context.Context, tx *gorm.DB, rpIDs []string) ([]*types.Business, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, busID string, fields map[string]interface{}) error
	List(ctx context.Context, tx *gorm.DB, status string, limit, offset int) ([]*types.Business, error)
}

type businessRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusinessRepo(db *gorm.DB, baseLog *logger.Logger) BusinessRepo {
	repoLog := baseLog.With("repo", "BusinessRepo")
	return &businessRepo{db: db, log: repoLog}
}

func (r *businessRepo) Create(ctx context.Context, tx *gorm.DB, businesses []*types.Business) ([]*types.Business, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(businesses) == 0 {
		return []*types.Business{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&businesses).Error; err != nil {
		return nil, translateCreate(err)
	}
	return businesses, nil
}

func (r *businessRepo) GetByIDs(ctx context.Context, tx *gorm.DB, busIDs []string) ([]*types.Business, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Business
	if len(busIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("bus_id IN ?", busIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *businessRepo) GetByOwnerRpIDs(ctx context.Context, tx *gorm.DB, rpIDs []string) ([]*types.Business, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Business
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

func (r *businessRepo) UpdateFields(ctx context.Context, tx *gorm.DB, busID string, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Business{}).
		Where("bus_id = ?", busID).
		Updates(fields).Error
}

func (r *businessRepo) List(ctx context.Context, tx *gorm.DB, status string, limit, offset int) ([]*types.Business, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Order("bus_id")
	if status != "" {
		query = query.Where("bus_status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var results []*types.Business
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type BusinessHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.BusinessHistory) ([]*types.BusinessHistory, error)
	GetByBusID(ctx context.Context, tx *gorm.DB, busID string) ([]*types.BusinessHistory, error)
	MaxHistoryID(ctx context.Context, tx *gorm.DB, busID string) (int, error)
}

type businessHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusinessHistoryRepo(db *gorm.DB, baseLog *logger.Logger) BusinessHistoryRepo {
	repoLog := baseLog.With("repo", "BusinessHistoryRepo")
	return &businessHistoryRepo{db: db, log: repoLog}
}

func (r *businessHistoryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.BusinessHistory) ([]*types.BusinessHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.BusinessHistory{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, translateCreate(err)
	}
	return rows, nil
}

func (r *businessHistoryRepo) GetByBusID(ctx context.Context, tx *gorm.DB, busID string) ([]*types.BusinessHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.BusinessHistory
	if err := transaction.WithContext(ctx).
		Where("bus_id = ?", busID).
		Order("history_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *businessHistoryRepo) MaxHistoryID(ctx context.Context, tx *gorm.DB, busID string) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.BusinessHistory{}).
		Where("bus_id = ?", busID).
		Select("MAX(history_id)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

type BusinessFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, files []*types.BusinessFile) ([]*types.BusinessFile, error)
	GetByBusIDs(ctx context.Context, tx *gorm.DB, busIDs []string) ([]*types.BusinessFile, error)
}

type businessFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusinessFileRepo(db *gorm.DB, baseLog *logger.Logger) BusinessFileRepo {
	repoLog := baseLog.With("repo", "BusinessFileRepo")
	return &businessFileRepo{db: db, log: repoLog}
}

func (r *businessFileRepo) Create(ctx context.Context, tx *gorm.DB, files []*types.BusinessFile) ([]*types.BusinessFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(files) == 0 {
		return []*types.BusinessFile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&files).Error; err != nil {
		return nil, translateCreate(err)
	}
	return files, nil
}

func (r *businessFileRepo) GetByBusIDs(ctx context.Context, tx *gorm.DB, busIDs []string) ([]*types.BusinessFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.BusinessFile
	if len(busIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("bus_id IN ?", busIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type BusinessRespondentRepo interface {
	CreateRespondents(ctx context.Context, tx *gorm.DB, respondents []*types.Respondent) ([]*types.Respondent, error)
	Create(ctx context.Context, tx *gorm.DB, rows []*types.BusinessRespondent) ([]*types.BusinessRespondent, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, brIDs []string) ([]*types.BusinessRespondent, error)
}

type businessRespondentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusinessRespondentRepo(db *gorm.DB, baseLog *logger.Logger) BusinessRespondentRepo {
	repoLog := baseLog.With("repo", "BusinessRespondentRepo")
	return &businessRespondentRepo{db: db, log: repoLog}
}

func (r *businessRespondentRepo) CreateRespondents(ctx context.Context, tx *gorm.DB, respondents []*types.Respondent) ([]*types.Respondent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(respondents) == 0 {
		return []*types.Respondent{}, nil
	}

	for _, res := range respondents {
		if res.ID == uuid.Nil {
			res.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).Create(&respondents).Error; err != nil {
		return nil, translateCreate(err)
	}
	return respondents, nil
}

func (r *businessRespondentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.BusinessRespondent) ([]*types.BusinessRespondent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.BusinessRespondent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, translateCreate(err)
	}
	return rows, nil
}

func (r *businessRespondentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, brIDs []string) ([]*types.BusinessRespondent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.BusinessRespondent
	if len(brIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("br_id IN ?", brIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
