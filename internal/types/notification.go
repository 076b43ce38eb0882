package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	NotificationTypeProfiling    = "PROFILING"
	NotificationTypeHousehold    = "HOUSEHOLD"
	NotificationTypeFamily       = "FAMILY"
	NotificationTypeBusiness     = "BUSINESS"
	NotificationTypeRegistration = "REGISTRATION"
)

type Notification struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"not null;column:title" json:"title"`
	Message      string         `gorm:"not null;column:message" json:"message"`
	NotifType    string         `gorm:"not null;index;column:notif_type" json:"notif_type"`
	WebRoute     string         `gorm:"column:web_route" json:"web_route"`
	WebParams    datatypes.JSON `gorm:"column:web_params" json:"web_params"`
	MobileRoute  string         `gorm:"column:mobile_route" json:"mobile_route"`
	MobileParams datatypes.JSON `gorm:"column:mobile_params" json:"mobile_params"`
	ActorStaffID *uuid.UUID     `gorm:"type:uuid;column:actor_staff_id" json:"actor_staff_id"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

func (Notification) TableName() string {
	return "notification"
}

// NotificationRecipient fans a notification out to either a resident profile
// or a staff member.
type NotificationRecipient struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	NotificationID uuid.UUID     `gorm:"type:uuid;not null;index;column:notification_id" json:"notification_id"`
	Notification   *Notification `gorm:"constraint:OnDelete:CASCADE;foreignKey:NotificationID;references:ID" json:"-"`
	RpID           *string       `gorm:"index;column:rp_id" json:"rp_id"`
	StaffID        *uuid.UUID    `gorm:"type:uuid;index;column:staff_id" json:"staff_id"`
	ReadAt         *time.Time    `gorm:"column:read_at" json:"read_at"`
	CreatedAt      time.Time     `gorm:"not null" json:"created_at"`
}

func (NotificationRecipient) TableName() string {
	return "notification_recipient"
}
