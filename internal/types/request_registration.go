package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RequestRegistration stages a pending household/family registration until a
// staff member approves it. Rows expire 30 days after ReqCreatedAt and are
// removed by the background sweeper.
type RequestRegistration struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RpID         string           `gorm:"not null;index;column:rp_id" json:"rp_id"`
	Profile      *ResidentProfile `gorm:"foreignKey:RpID;references:RpID" json:"-"`
	Payload      datatypes.JSON   `gorm:"not null;column:payload" json:"payload"`
	Status       string           `gorm:"not null;column:status" json:"status"`
	ReqCreatedAt time.Time        `gorm:"not null;index;column:req_created_at" json:"req_created_at"`
	CreatedAt    time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null" json:"updated_at"`
}

func (RequestRegistration) TableName() string {
	return "request_registration"
}

type RequestRegistrationComposition struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID uuid.UUID            `gorm:"type:uuid;not null;index;column:request_id" json:"request_id"`
	Request   *RequestRegistration `gorm:"constraint:OnDelete:CASCADE;foreignKey:RequestID;references:ID" json:"-"`
	RpID      string               `gorm:"not null;column:rp_id" json:"rp_id"`
	Role      string               `gorm:"not null;column:role" json:"role"`
	CreatedAt time.Time            `gorm:"not null" json:"created_at"`
}

func (RequestRegistrationComposition) TableName() string {
	return "request_registration_composition"
}
