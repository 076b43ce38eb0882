package types

import (
	"time"

	"github.com/google/uuid"
)

// ResidentProfile is the civil-registry record for a person. RpID is the
// public-facing sequential identifier and the primary key.
type ResidentProfile struct {
	RpID      string    `gorm:"primaryKey;column:rp_id" json:"rp_id"`
	PerID     int       `gorm:"not null;uniqueIndex;column:per_id" json:"per_id"`
	Personal  *Personal `gorm:"foreignKey:PerID;references:PerID" json:"personal,omitempty"`
	StaffID   uuid.UUID `gorm:"type:uuid;not null;column:staff_id" json:"staff_id"`
	Staff     *Staff    `gorm:"foreignKey:StaffID;references:ID" json:"-"`
	VoterID   *string   `gorm:"column:voter_id" json:"voter_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ResidentProfile) TableName() string {
	return "resident_profile"
}

// Account is a resident login bound to a profile.
type Account struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RpID            string           `gorm:"not null;uniqueIndex;column:rp_id" json:"rp_id"`
	ResidentProfile *ResidentProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:RpID;references:RpID" json:"-"`
	Username        string           `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Password        string           `gorm:"not null;column:password" json:"-"`
	CreatedAt       time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null" json:"updated_at"`
}

func (Account) TableName() string {
	return "account"
}
