package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	MedicineRequestPending   = "Pending"
	MedicineRequestDispensed = "Dispensed"
	MedicineRequestDenied    = "Denied"
)

type MedicineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:med_name" json:"med_name"`
	Unit      string    `gorm:"column:med_unit" json:"med_unit"`
	Quantity  int       `gorm:"not null;column:med_quantity" json:"med_quantity"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (MedicineItem) TableName() string {
	return "medicine_item"
}

type MedicineRequest struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RpID      string           `gorm:"not null;index;column:rp_id" json:"rp_id"`
	Profile   *ResidentProfile `gorm:"foreignKey:RpID;references:RpID" json:"-"`
	ItemID    uuid.UUID        `gorm:"type:uuid;not null;column:item_id" json:"item_id"`
	Item      *MedicineItem    `gorm:"foreignKey:ItemID;references:ID" json:"item,omitempty"`
	Quantity  int              `gorm:"not null;column:quantity" json:"quantity"`
	Status    string           `gorm:"not null;index;column:status" json:"status"`
	StaffID   *uuid.UUID       `gorm:"type:uuid;column:staff_id" json:"staff_id"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null" json:"updated_at"`
}

func (MedicineRequest) TableName() string {
	return "medicine_request"
}

type MedicineRequestFile struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID  uuid.UUID        `gorm:"type:uuid;not null;index;column:request_id" json:"request_id"`
	Request    *MedicineRequest `gorm:"constraint:OnDelete:CASCADE;foreignKey:RequestID;references:ID" json:"-"`
	Name       string           `gorm:"not null;column:file_name" json:"file_name"`
	Type       string           `gorm:"column:file_type" json:"file_type"`
	StorageKey string           `gorm:"not null;column:storage_key" json:"storage_key"`
	URL        string           `gorm:"column:url" json:"url"`
	CreatedAt  time.Time        `gorm:"not null" json:"created_at"`
}

func (MedicineRequestFile) TableName() string {
	return "medicine_request_file"
}
