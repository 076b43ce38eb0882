package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/clients/face"
	"github.com/openbims/bims-backend/internal/clients/gcp"
	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

// Verification thresholds. A submission passes when the OCR name tokens
// sufficiently overlap the registered name, the birthdate appears in the
// document text and the selfie matches the document portrait.
const (
	kycNameThreshold = 0.6
	kycFaceThreshold = 0.75
)

type KycSubmission struct {
	Document FileUpload `json:"document"`
	Selfie   FileUpload `json:"selfie"`
}

type KycService interface {
	// Verify runs OCR and face matching on the submission and records the
	// outcome against the person.
	Verify(ctx context.Context, perID int, submission KycSubmission) (*types.KycVerification, error)
	Results(ctx context.Context, perID int) ([]*types.KycVerification, error)
}

type kycService struct {
	db           *gorm.DB
	log          *logger.Logger
	personalRepo repos.PersonalRepo
	kycRepo      repos.KycRepo
	bucket       gcp.Bucket
	vision       gcp.Vision
	faces        face.ModelProvider
}

func NewKycService(
	db *gorm.DB,
	baseLog *logger.Logger,
	personalRepo repos.PersonalRepo,
	kycRepo repos.KycRepo,
	bucket gcp.Bucket,
	vision gcp.Vision,
	faces face.ModelProvider,
) KycService {
	return &kycService{
		db:           db,
		log:          baseLog.With("service", "KycService"),
		personalRepo: personalRepo,
		kycRepo:      kycRepo,
		bucket:       bucket,
		vision:       vision,
		faces:        faces,
	}
}

func (s *kycService) Verify(ctx context.Context, perID int, submission KycSubmission) (*types.KycVerification, error) {
	if len(submission.Document.Data) == 0 {
		return nil, fmt.Errorf("%w: an id document image is required", pkgerrors.ErrInvalidArgument)
	}
	if s.vision == nil || s.bucket == nil {
		return nil, fmt.Errorf("%w: verification is not configured", pkgerrors.ErrInvalidArgument)
	}

	persons, err := s.personalRepo.GetByIDs(ctx, nil, []int{perID})
	if err != nil {
		return nil, err
	}
	if len(persons) == 0 {
		return nil, fmt.Errorf("%w: person %d", pkgerrors.ErrNotFound, perID)
	}
	person := persons[0]

	ocrText, err := s.vision.OCRImageBytes(ctx, submission.Document.Data)
	if err != nil {
		return nil, fmt.Errorf("ocr document: %w", err)
	}

	nameScore := NameMatchScore(ocrText, person.FirstName, person.MiddleName, person.LastName)
	birthdateScore := BirthdateMatchScore(ocrText, person.DateOfBirth)

	faceSimilarity := 0.0
	if s.faces != nil && len(submission.Selfie.Data) > 0 {
		docVec, docErr := s.faces.Embed(ctx, submission.Document.Data)
		selfieVec, selfieErr := s.faces.Embed(ctx, submission.Selfie.Data)
		if docErr != nil || selfieErr != nil {
			s.log.Warn("Face embedding failed", "doc_error", docErr, "selfie_error", selfieErr)
		} else {
			faceSimilarity = face.CosineSimilarity(docVec, selfieVec)
		}
	}

	outcome := types.KycOutcomeRejected
	if nameScore >= kycNameThreshold && birthdateScore > 0 {
		if s.faces == nil || len(submission.Selfie.Data) == 0 {
			outcome = types.KycOutcomePending
		} else if faceSimilarity >= kycFaceThreshold {
			outcome = types.KycOutcomeVerified
		}
	}

	docKey := path.Join("kyc", fmt.Sprintf("%d", perID), "document-"+uuid.New().String()+path.Ext(submission.Document.Name))
	if _, err := s.bucket.Upload(ctx, docKey, submission.Document.ContentType, bytes.NewReader(submission.Document.Data)); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	selfieKey := ""
	if len(submission.Selfie.Data) > 0 {
		selfieKey = path.Join("kyc", fmt.Sprintf("%d", perID), "selfie-"+uuid.New().String()+path.Ext(submission.Selfie.Name))
		if _, err := s.bucket.Upload(ctx, selfieKey, submission.Selfie.ContentType, bytes.NewReader(submission.Selfie.Data)); err != nil {
			return nil, fmt.Errorf("store selfie: %w", err)
		}
	}

	created, err := s.kycRepo.Create(ctx, nil, []*types.KycVerification{{
		ID:             uuid.New(),
		PerID:          perID,
		DocumentKey:    docKey,
		SelfieKey:      selfieKey,
		OcrText:        ocrText,
		NameScore:      nameScore,
		BirthdateScore: birthdateScore,
		FaceSimilarity: faceSimilarity,
		Outcome:        outcome,
	}})
	if err != nil {
		return nil, err
	}
	s.log.Info("Identity verification recorded", "per_id", perID, "outcome", outcome)
	return created[0], nil
}

func (s *kycService) Results(ctx context.Context, perID int) ([]*types.KycVerification, error) {
	return s.kycRepo.GetByPerIDs(ctx, nil, []int{perID})
}

// NameMatchScore is the fraction of registered name tokens that appear in
// the OCR text. Token comparison is case-insensitive.
func NameMatchScore(ocrText string, nameParts ...string) float64 {
	haystack := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(ocrText)) {
		haystack[strings.Trim(token, ".,;:")] = struct{}{}
	}

	var total, matched int
	for _, part := range nameParts {
		for _, token := range strings.Fields(strings.ToLower(part)) {
			total++
			if _, ok := haystack[token]; ok {
				matched++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

// BirthdateMatchScore returns 1 when the date of birth appears in the OCR
// text in any of the common Philippine ID formats, else 0.
func BirthdateMatchScore(ocrText string, dob time.Time) float64 {
	lowered := strings.ToLower(ocrText)
	for _, layout := range []string{"January 2, 2006", "Jan 2, 2006", "2006-01-02", "01/02/2006", "02 January 2006"} {
		if strings.Contains(lowered, strings.ToLower(dob.Format(layout))) {
			return 1
		}
	}
	return 0
}
