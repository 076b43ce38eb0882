package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Personal struct {
	PerID       int       `gorm:"primaryKey;autoIncrement;column:per_id" json:"per_id"`
	FirstName   string    `gorm:"not null;column:per_fname" json:"per_fname"`
	MiddleName  string    `gorm:"column:per_mname" json:"per_mname"`
	LastName    string    `gorm:"not null;column:per_lname" json:"per_lname"`
	Suffix      string    `gorm:"column:per_suffix" json:"per_suffix"`
	DateOfBirth time.Time `gorm:"not null;column:per_dob" json:"per_dob"`
	Sex         string    `gorm:"not null;column:per_sex" json:"per_sex"`
	CivilStatus string    `gorm:"column:per_civil_status" json:"per_civil_status"`
	ContactNo   string    `gorm:"column:per_contact" json:"per_contact"`
	Status      string    `gorm:"column:per_status" json:"per_status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Personal) TableName() string {
	return "personal"
}

// PersonalHistory is an append-only snapshot of a person's tracked fields
// taken before each mutation. HistoryID increases monotonically per person.
type PersonalHistory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PerID     int            `gorm:"not null;uniqueIndex:idx_personal_history_seq,priority:1;column:per_id" json:"per_id"`
	Personal  *Personal      `gorm:"constraint:OnDelete:CASCADE;foreignKey:PerID;references:PerID" json:"-"`
	HistoryID int            `gorm:"not null;uniqueIndex:idx_personal_history_seq,priority:2;column:history_id" json:"history_id"`
	Snapshot  datatypes.JSON `gorm:"not null;column:snapshot" json:"snapshot"`
	StaffID   uuid.UUID      `gorm:"type:uuid;not null;column:staff_id" json:"staff_id"`
	Staff     *Staff         `gorm:"foreignKey:StaffID;references:ID" json:"-"`
	Reason    string         `gorm:"column:reason" json:"reason"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (PersonalHistory) TableName() string {
	return "personal_history"
}
