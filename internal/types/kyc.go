package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	KycOutcomeVerified = "Verified"
	KycOutcomeRejected = "Rejected"
	KycOutcomePending  = "Pending"
)

// KycVerification stores the result of matching an uploaded ID document and
// selfie against the person's entered details.
type KycVerification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PerID          int       `gorm:"not null;index;column:per_id" json:"per_id"`
	Personal       *Personal `gorm:"constraint:OnDelete:CASCADE;foreignKey:PerID;references:PerID" json:"-"`
	DocumentKey    string    `gorm:"not null;column:document_key" json:"document_key"`
	SelfieKey      string    `gorm:"column:selfie_key" json:"selfie_key"`
	OcrText        string    `gorm:"column:ocr_text" json:"ocr_text"`
	NameScore      float64   `gorm:"column:name_score" json:"name_score"`
	BirthdateScore float64   `gorm:"column:birthdate_score" json:"birthdate_score"`
	FaceSimilarity float64   `gorm:"column:face_similarity" json:"face_similarity"`
	Outcome        string    `gorm:"not null;column:outcome" json:"outcome"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (KycVerification) TableName() string {
	return "kyc_verification"
}
