package types

import (
	"time"

	"github.com/google/uuid"
)

// Occupancy ("building type") values carried on a family. The trailing
// letter of FamID encodes the same value.
const (
	BuildingTypeOwner  = "Owner"
	BuildingTypeRenter = "Renter"
	BuildingTypeSharer = "Sharer"
)

// Family composition roles.
const (
	CompositionRoleIndependent = "INDEPENDENT"
	CompositionRoleMother      = "MOTHER"
	CompositionRoleFather      = "FATHER"
	CompositionRoleDependent   = "DEPENDENT"
)

type Family struct {
	FamID        string     `gorm:"primaryKey;column:fam_id" json:"fam_id"`
	HouseholdID  string     `gorm:"not null;index;column:hh_id" json:"hh_id"`
	Household    *Household `gorm:"foreignKey:HouseholdID;references:HhID" json:"household,omitempty"`
	BuildingType string     `gorm:"not null;column:building_type" json:"building_type"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (Family) TableName() string {
	return "family"
}

// FamilyComposition joins a resident profile to a family with a role. A
// profile may accrue compositions over time; the most recently recorded one
// is the profile's current family.
type FamilyComposition struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	FamID      string           `gorm:"not null;index;column:fam_id" json:"fam_id"`
	Family     *Family          `gorm:"constraint:OnDelete:CASCADE;foreignKey:FamID;references:FamID" json:"-"`
	RpID       string           `gorm:"not null;index;column:rp_id" json:"rp_id"`
	Profile    *ResidentProfile `gorm:"foreignKey:RpID;references:RpID" json:"profile,omitempty"`
	Role       string           `gorm:"not null;column:role" json:"role"`
	RecordedAt time.Time        `gorm:"not null;index;column:recorded_at" json:"recorded_at"`
	CreatedAt  time.Time        `gorm:"not null" json:"created_at"`
}

func (FamilyComposition) TableName() string {
	return "family_composition"
}
