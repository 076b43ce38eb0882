package types

import (
	"time"

	"github.com/google/uuid"
)

type Sitio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:sit_name" json:"sit_name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Sitio) TableName() string {
	return "sitio"
}

// Address rows are deduplicated by get-or-create on the full location tuple.
type Address struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Province      string     `gorm:"not null;uniqueIndex:idx_address_tuple,priority:1;column:add_province" json:"add_province"`
	City          string     `gorm:"not null;uniqueIndex:idx_address_tuple,priority:2;column:add_city" json:"add_city"`
	Barangay      string     `gorm:"not null;uniqueIndex:idx_address_tuple,priority:3;column:add_barangay" json:"add_barangay"`
	Street        string     `gorm:"uniqueIndex:idx_address_tuple,priority:4;column:add_street" json:"add_street"`
	SitioID       *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_address_tuple,priority:5;column:sitio_id" json:"sitio_id"`
	Sitio         *Sitio     `gorm:"foreignKey:SitioID;references:ID" json:"sitio,omitempty"`
	ExternalSitio string     `gorm:"uniqueIndex:idx_address_tuple,priority:6;column:add_external_sitio" json:"add_external_sitio"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

func (Address) TableName() string {
	return "address"
}

type PersonalAddress struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PerID     int       `gorm:"not null;index;column:per_id" json:"per_id"`
	Personal  *Personal `gorm:"constraint:OnDelete:CASCADE;foreignKey:PerID;references:PerID" json:"-"`
	AddressID uuid.UUID `gorm:"type:uuid;not null;index;column:address_id" json:"address_id"`
	Address   *Address  `gorm:"foreignKey:AddressID;references:ID" json:"address,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PersonalAddress) TableName() string {
	return "personal_address"
}

// PersonalAddressHistory records an address link together with the person's
// history version at link time, so address-at-a-point-in-time queries can
// join on (per_id, history_id).
type PersonalAddressHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PerID     int       `gorm:"not null;index:idx_personal_address_history,priority:1;column:per_id" json:"per_id"`
	Personal  *Personal `gorm:"constraint:OnDelete:CASCADE;foreignKey:PerID;references:PerID" json:"-"`
	HistoryID int       `gorm:"not null;index:idx_personal_address_history,priority:2;column:history_id" json:"history_id"`
	AddressID uuid.UUID `gorm:"type:uuid;not null;column:address_id" json:"address_id"`
	Address   *Address  `gorm:"foreignKey:AddressID;references:ID" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PersonalAddressHistory) TableName() string {
	return "personal_address_history"
}
