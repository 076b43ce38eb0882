package types

import (
	"time"

	"github.com/google/uuid"
)

// Staff assignment values used for notification recipient sets.
const (
	StaffAssignmentProfiling = "PROFILING"
	StaffAssignmentAdmin     = "ADMIN"
	StaffAssignmentBHW       = "BHW"
)

type Staff struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName  string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName   string    `gorm:"not null;column:last_name" json:"last_name"`
	Assignment string    `gorm:"not null;index;column:assignment" json:"assignment"`
	Username   string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Password   string    `gorm:"not null;column:password" json:"-"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Staff) TableName() string {
	return "staff"
}
