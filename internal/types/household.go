package types

import (
	"time"

	"github.com/google/uuid"
)

type Household struct {
	HhID      string           `gorm:"primaryKey;column:hh_id" json:"hh_id"`
	AddressID uuid.UUID        `gorm:"type:uuid;not null;column:address_id" json:"address_id"`
	Address   *Address         `gorm:"foreignKey:AddressID;references:ID" json:"address,omitempty"`
	OwnerRpID string           `gorm:"not null;index;column:owner_rp_id" json:"owner_rp_id"`
	Owner     *ResidentProfile `gorm:"foreignKey:OwnerRpID;references:RpID" json:"owner,omitempty"`
	StaffID   uuid.UUID        `gorm:"type:uuid;not null;column:staff_id" json:"staff_id"`
	Staff     *Staff           `gorm:"foreignKey:StaffID;references:ID" json:"-"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null" json:"updated_at"`
}

func (Household) TableName() string {
	return "household"
}
