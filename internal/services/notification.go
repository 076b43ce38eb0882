package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	redisclient "github.com/openbims/bims-backend/internal/clients/redis"
	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

// Notice is a pending notification: title/message, deep-link routes and the
// recipient set it should fan out to.
type Notice struct {
	Title        string
	Message      string
	NotifType    string
	WebRoute     string
	WebParams    map[string]any
	MobileRoute  string
	MobileParams map[string]any
	ActorStaffID *uuid.UUID
	RpIDs        []string
	StaffIDs     []uuid.UUID
}

type NotificationService interface {
	// Emit persists the notice and publishes it on the bus. Failures are
	// logged, never propagated: notification delivery is fire-and-forget.
	Emit(ctx context.Context, notice Notice)
	// EmitAll emits the notices concurrently and waits for completion.
	EmitAll(ctx context.Context, notices []Notice)
	// ProfilingStaffRecipients returns staff with the PROFILING assignment,
	// excluding the acting staff member.
	ProfilingStaffRecipients(ctx context.Context, actorStaffID uuid.UUID) ([]uuid.UUID, error)
	// AdminRecipients returns all barangay admin staff.
	AdminRecipients(ctx context.Context) ([]uuid.UUID, error)
	// FamilyMemberRecipients returns the rp_ids of the family's current
	// composition members.
	FamilyMemberRecipients(ctx context.Context, famID string) ([]string, error)
	ListForResident(ctx context.Context, rpID string, limit, offset int) ([]*types.Notification, error)
	ListForStaff(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]*types.Notification, error)
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
	staffRepo        repos.StaffRepo
	compositionRepo  repos.FamilyCompositionRepo
	bus              redisclient.NotifyBus
}

func NewNotificationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	notificationRepo repos.NotificationRepo,
	staffRepo repos.StaffRepo,
	compositionRepo repos.FamilyCompositionRepo,
	bus redisclient.NotifyBus,
) NotificationService {
	return &notificationService{
		db:               db,
		log:              baseLog.With("service", "NotificationService"),
		notificationRepo: notificationRepo,
		staffRepo:        staffRepo,
		compositionRepo:  compositionRepo,
		bus:              bus,
	}
}

func (s *notificationService) Emit(ctx context.Context, notice Notice) {
	notification := &types.Notification{
		ID:           uuid.New(),
		Title:        notice.Title,
		Message:      notice.Message,
		NotifType:    notice.NotifType,
		WebRoute:     notice.WebRoute,
		MobileRoute:  notice.MobileRoute,
		ActorStaffID: notice.ActorStaffID,
	}
	if notice.WebParams != nil {
		raw, err := json.Marshal(notice.WebParams)
		if err == nil {
			notification.WebParams = datatypes.JSON(raw)
		}
	}
	if notice.MobileParams != nil {
		raw, err := json.Marshal(notice.MobileParams)
		if err == nil {
			notification.MobileParams = datatypes.JSON(raw)
		}
	}

	recipients := make([]*types.NotificationRecipient, 0, len(notice.RpIDs)+len(notice.StaffIDs))
	for _, rpID := range notice.RpIDs {
		id := rpID
		recipients = append(recipients, &types.NotificationRecipient{ID: uuid.New(), RpID: &id})
	}
	for _, staffID := range notice.StaffIDs {
		id := staffID
		recipients = append(recipients, &types.NotificationRecipient{ID: uuid.New(), StaffID: &id})
	}

	if _, err := s.notificationRepo.Create(ctx, nil, notification, recipients); err != nil {
		s.log.Warn("Failed to persist notification", "title", notice.Title, "error", err)
		return
	}

	if s.bus == nil {
		return
	}
	staffIDs := make([]string, 0, len(notice.StaffIDs))
	for _, id := range notice.StaffIDs {
		staffIDs = append(staffIDs, id.String())
	}
	msg := redisclient.NotifyMessage{
		NotificationID: notification.ID.String(),
		Title:          notice.Title,
		Message:        notice.Message,
		NotifType:      notice.NotifType,
		WebRoute:       notice.WebRoute,
		WebParams:      notice.WebParams,
		MobileRoute:    notice.MobileRoute,
		MobileParams:   notice.MobileParams,
		RecipientRpIDs: notice.RpIDs,
		RecipientStaff: staffIDs,
	}
	if err := s.bus.Publish(ctx, msg); err != nil {
		s.log.Warn("Failed to publish notification", "title", notice.Title, "error", err)
	}
}

func (s *notificationService) EmitAll(ctx context.Context, notices []Notice) {
	if len(notices) == 0 {
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, notice := range notices {
		n := notice
		g.Go(func() error {
			s.Emit(gctx, n)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *notificationService) ProfilingStaffRecipients(ctx context.Context, actorStaffID uuid.UUID) ([]uuid.UUID, error) {
	staff, err := s.staffRepo.GetByAssignment(ctx, nil, types.StaffAssignmentProfiling)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(staff))
	for _, member := range staff {
		if member.ID == actorStaffID {
			continue
		}
		ids = append(ids, member.ID)
	}
	return ids, nil
}

func (s *notificationService) AdminRecipients(ctx context.Context) ([]uuid.UUID, error) {
	staff, err := s.staffRepo.GetByAssignment(ctx, nil, types.StaffAssignmentAdmin)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(staff))
	for _, member := range staff {
		ids = append(ids, member.ID)
	}
	return ids, nil
}

func (s *notificationService) FamilyMemberRecipients(ctx context.Context, famID string) ([]string, error) {
	rows, err := s.compositionRepo.GetByFamIDs(ctx, nil, []string{famID})
	if err != nil {
		return nil, err
	}
	// A profile can appear in older compositions of the same family; the
	// recipient set only needs each member once.
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.RpID]; ok {
			continue
		}
		seen[row.RpID] = struct{}{}
		ids = append(ids, row.RpID)
	}
	return ids, nil
}

func (s *notificationService) ListForResident(ctx context.Context, rpID string, limit, offset int) ([]*types.Notification, error) {
	return s.notificationRepo.ListByRpID(ctx, nil, rpID, limit, offset)
}

func (s *notificationService) ListForStaff(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]*types.Notification, error) {
	return s.notificationRepo.ListByStaffID(ctx, nil, staffID, limit, offset)
}
