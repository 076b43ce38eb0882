package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	BusinessStatusActive = "Active"
	BusinessStatusClosed = "Closed"
)

// Respondent is an external (non-resident) business contact.
type Respondent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"not null;column:res_fname" json:"res_fname"`
	LastName  string    `gorm:"not null;column:res_lname" json:"res_lname"`
	ContactNo string    `gorm:"column:res_contact" json:"res_contact"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Respondent) TableName() string {
	return "respondent"
}

type BusinessRespondent struct {
	BrID         string      `gorm:"primaryKey;column:br_id" json:"br_id"`
	RespondentID uuid.UUID   `gorm:"type:uuid;not null;column:respondent_id" json:"respondent_id"`
	Respondent   *Respondent `gorm:"foreignKey:RespondentID;references:ID" json:"respondent,omitempty"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (BusinessRespondent) TableName() string {
	return "business_respondent"
}

// Business is owned either by a resident profile or by an external
// business respondent; exactly one of the two refs is set.
type Business struct {
	BusID      string              `gorm:"primaryKey;column:bus_id" json:"bus_id"`
	Name       string              `gorm:"not null;column:bus_name" json:"bus_name"`
	Type       string              `gorm:"column:bus_type" json:"bus_type"`
	OwnerRpID  *string             `gorm:"index;column:owner_rp_id" json:"owner_rp_id"`
	Owner      *ResidentProfile    `gorm:"foreignKey:OwnerRpID;references:RpID" json:"owner,omitempty"`
	BrID       *string             `gorm:"column:br_id" json:"br_id"`
	Respondent *BusinessRespondent `gorm:"foreignKey:BrID;references:BrID" json:"respondent,omitempty"`
	Status     string              `gorm:"not null;column:bus_status" json:"bus_status"`
	VerifiedAt *time.Time          `gorm:"column:verified_at" json:"verified_at"`
	StaffID    uuid.UUID           `gorm:"type:uuid;not null;column:staff_id" json:"staff_id"`
	Staff      *Staff              `gorm:"foreignKey:StaffID;references:ID" json:"-"`
	CreatedAt  time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"not null" json:"updated_at"`
}

func (Business) TableName() string {
	return "business"
}

type BusinessHistory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BusID     string         `gorm:"not null;uniqueIndex:idx_business_history_seq,priority:1;column:bus_id" json:"bus_id"`
	Business  *Business      `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusID;references:BusID" json:"-"`
	HistoryID int            `gorm:"not null;uniqueIndex:idx_business_history_seq,priority:2;column:history_id" json:"history_id"`
	Snapshot  datatypes.JSON `gorm:"not null;column:snapshot" json:"snapshot"`
	StaffID   uuid.UUID      `gorm:"type:uuid;not null;column:staff_id" json:"staff_id"`
	Staff     *Staff         `gorm:"foreignKey:StaffID;references:ID" json:"-"`
	Reason    string         `gorm:"column:reason" json:"reason"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (BusinessHistory) TableName() string {
	return "business_history"
}

type BusinessFile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusID      string    `gorm:"not null;index;column:bus_id" json:"bus_id"`
	Business   *Business `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusID;references:BusID" json:"-"`
	Name       string    `gorm:"not null;column:file_name" json:"file_name"`
	Type       string    `gorm:"column:file_type" json:"file_type"`
	StorageKey string    `gorm:"not null;column:storage_key" json:"storage_key"`
	URL        string    `gorm:"column:url" json:"url"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (BusinessFile) TableName() string {
	return "business_file"
}
