package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

const (
	RequestStatusPending = "Pending"

	// Staged requests not acted on within this window are swept.
	RequestTTL = 30 * 24 * time.Hour
)

type StageRegistrationInput struct {
	Registration RegisterResidentInput `json:"registration"`
	// Compositions pre-declares family member roles for the staged
	// registration so reviewers see the intended family shape.
	Compositions []StagedComposition `json:"compositions"`
}

type StagedComposition struct {
	RpID string `json:"rp_id"`
	Role string `json:"role"`
}

type RequestRegistrationService interface {
	// Stage parks a registration submitted from the resident app until a
	// profiling staff member reviews it.
	Stage(ctx context.Context, rpID string, input StageRegistrationInput) (*types.RequestRegistration, error)
	Get(ctx context.Context, requestID uuid.UUID) (*types.RequestRegistration, error)
	// Approve replays the staged payload through the registration pipeline
	// and removes the request.
	Approve(ctx context.Context, staffID uuid.UUID, requestID uuid.UUID) (*RegisterResidentResult, error)
	Reject(ctx context.Context, staffID uuid.UUID, requestID uuid.UUID) error
	// SweepExpired deletes requests older than RequestTTL.
	SweepExpired(ctx context.Context) (int64, error)
}

type requestRegistrationService struct {
	db           *gorm.DB
	log          *logger.Logger
	requestRepo  repos.RequestRegistrationRepo
	profileRepo  repos.ResidentProfileRepo
	registration RegistrationService
	notifier     NotificationService
}

func NewRequestRegistrationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	requestRepo repos.RequestRegistrationRepo,
	profileRepo repos.ResidentProfileRepo,
	registration RegistrationService,
	notifier NotificationService,
) RequestRegistrationService {
	return &requestRegistrationService{
		db:           db,
		log:          baseLog.With("service", "RequestRegistrationService"),
		requestRepo:  requestRepo,
		profileRepo:  profileRepo,
		registration: registration,
		notifier:     notifier,
	}
}

func (s *requestRegistrationService) Stage(ctx context.Context, rpID string, input StageRegistrationInput) (*types.RequestRegistration, error) {
	profiles, err := s.profileRepo.GetByIDs(ctx, nil, []string{rpID})
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: resident %s", pkgerrors.ErrNotFound, rpID)
	}

	raw, err := json.Marshal(input.Registration)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	var request *types.RequestRegistration
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.requestRepo.Create(ctx, tx, []*types.RequestRegistration{{
			ID:           uuid.New(),
			RpID:         rpID,
			Payload:      datatypes.JSON(raw),
			Status:       RequestStatusPending,
			ReqCreatedAt: time.Now(),
		}})
		if err != nil {
			return err
		}
		request = created[0]

		rows := make([]*types.RequestRegistrationComposition, 0, len(input.Compositions))
		for _, comp := range input.Compositions {
			rows = append(rows, &types.RequestRegistrationComposition{
				ID:        uuid.New(),
				RequestID: request.ID,
				RpID:      comp.RpID,
				Role:      comp.Role,
			})
		}
		_, err = s.requestRepo.CreateCompositions(ctx, tx, rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	if staffIDs, recErr := s.notifier.ProfilingStaffRecipients(ctx, uuid.Nil); recErr == nil && len(staffIDs) > 0 {
		s.notifier.Emit(ctx, Notice{
			Title:     "Registration request submitted",
			Message:   fmt.Sprintf("Resident %s submitted a registration for review", rpID),
			NotifType: types.NotificationTypeRegistration,
			WebRoute:  "/requests",
			WebParams: map[string]any{"request_id": request.ID.String()},
			StaffIDs:  staffIDs,
		})
	}
	return request, nil
}

func (s *requestRegistrationService) Get(ctx context.Context, requestID uuid.UUID) (*types.RequestRegistration, error) {
	requests, err := s.requestRepo.GetByIDs(ctx, nil, []uuid.UUID{requestID})
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: registration request %s", pkgerrors.ErrNotFound, requestID)
	}
	return requests[0], nil
}

func (s *requestRegistrationService) Approve(ctx context.Context, staffID uuid.UUID, requestID uuid.UUID) (*RegisterResidentResult, error) {
	request, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var input RegisterResidentInput
	if err := json.Unmarshal(request.Payload, &input); err != nil {
		return nil, fmt.Errorf("decode staged payload: %w", err)
	}

	result, err := s.registration.RegisterResident(ctx, staffID, input)
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{requestID}); err != nil {
		s.log.Warn("Approved request left behind", "request_id", requestID, "error", err)
	}
	return result, nil
}

func (s *requestRegistrationService) Reject(ctx context.Context, staffID uuid.UUID, requestID uuid.UUID) error {
	request, err := s.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.requestRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{requestID}); err != nil {
		return err
	}

	actor := staffID
	s.notifier.Emit(ctx, Notice{
		Title:        "Registration request rejected",
		Message:      "Your registration request was not approved",
		NotifType:    types.NotificationTypeRegistration,
		MobileRoute:  "/requests",
		ActorStaffID: &actor,
		RpIDs:        []string{request.RpID},
	})
	return nil
}

func (s *requestRegistrationService) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-RequestTTL)
	return s.requestRepo.DeleteCreatedBefore(ctx, nil, cutoff)
}
