package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type SitioRepo interface {
	GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*types.Sitio, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Sitio, error)
}

type sitioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSitioRepo(db *gorm.DB, baseLog *logger.Logger) SitioRepo {
	repoLog := baseLog.With("repo", "SitioRepo")
	return &sitioRepo{db: db, log: repoLog}
}

func (r *sitioRepo) GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*types.Sitio, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	sitio := &types.Sitio{}
	err := transaction.WithContext(ctx).
		Where(&types.Sitio{Name: name}).
		Attrs(&types.Sitio{ID: uuid.New()}).
		FirstOrCreate(sitio).Error
	if err != nil {
		return nil, err
	}
	return sitio, nil
}

func (r *sitioRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Sitio, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Sitio
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

// AddressTuple is the full dedup key for an address row.
type AddressTuple struct {
	Province      string
	City          string
	Barangay      string
	Street        string
	SitioID       *uuid.UUID
	ExternalSitio string
}

type AddressRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, tuple AddressTuple) (*types.Address, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Address, error)
}

type addressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressRepo(db *gorm.DB, baseLog *logger.Logger) AddressRepo {
	repoLog := baseLog.With("repo", "AddressRepo")
	return &addressRepo{db: db, log: repoLog}
}

func (r *addressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, tuple AddressTuple) (*types.Address, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Where("add_province = ? AND add_city = ? AND add_barangay = ? AND add_street = ? AND add_external_sitio = ?",
			tuple.Province, tuple.City, tuple.Barangay, tuple.Street, tuple.ExternalSitio)
	if tuple.SitioID != nil {
		query = query.Where("sitio_id = ?", *tuple.SitioID)
	} else {
		query = query.Where("sitio_id IS NULL")
	}

	address := &types.Address{}
	err := query.Attrs(&types.Address{
		ID:            uuid.New(),
		Province:      tuple.Province,
		City:          tuple.City,
		Barangay:      tuple.Barangay,
		Street:        tuple.Street,
		SitioID:       tuple.SitioID,
		ExternalSitio: tuple.ExternalSitio,
	}).FirstOrCreate(address).Error
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (r *addressRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Address, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Address
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

type PersonalAddressRepo interface {
	CreateLinks(ctx context.Context, tx *gorm.DB, links []*types.PersonalAddress) ([]*types.PersonalAddress, error)
	CreateHistory(ctx context.Context, tx *gorm.DB, rows []*types.PersonalAddressHistory) ([]*types.PersonalAddressHistory, error)
	GetByPerIDs(ctx context.Context, tx *gorm.DB, perIDs []int) ([]*types.PersonalAddress, error)
	GetHistoryAt(ctx context.Context, tx *gorm.DB, perID, historyID int) ([]*types.PersonalAddressHistory, error)
}

type personalAddressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonalAddressRepo(db *gorm.DB, baseLog *logger.Logger) PersonalAddressRepo {
	repoLog := baseLog.With("repo", "PersonalAddressRepo")
	return &personalAddressRepo{db: db, log: repoLog}
}

func (r *personalAddressRepo) CreateLinks(ctx context.Context, tx *gorm.DB, links []*types.PersonalAddress) ([]*types.PersonalAddress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(links) == 0 {
		return []*types.PersonalAddress{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, translateCreate(err)
	}
	return links, nil
}

func (r *personalAddressRepo) CreateHistory(ctx context.Context, tx *gorm.DB, rows []*types.PersonalAddressHistory) ([]*types.PersonalAddressHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.PersonalAddressHistory{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, translateCreate(err)
	}
	return rows, nil
}

func (r *personalAddressRepo) GetByPerIDs(ctx context.Context, tx *gorm.DB, perIDs []int) ([]*types.PersonalAddress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PersonalAddress
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

func (r *personalAddressRepo) GetHistoryAt(ctx context.Context, tx *gorm.DB, perID, historyID int) ([]*types.PersonalAddressHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PersonalAddressHistory
	if err := transaction.WithContext(ctx).
		Where("per_id = ? AND history_id = ?", perID, historyID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
