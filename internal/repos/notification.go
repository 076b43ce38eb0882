package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/types"
)

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notification *types.Notification, recipients []*types.NotificationRecipient) (*types.Notification, error)
	ListByRpID(ctx context.Context, tx *gorm.DB, rpID string, limit, offset int) ([]*types.Notification, error)
	ListByStaffID(ctx context.Context, tx *gorm.DB, staffID uuid.UUID, limit, offset int) ([]*types.Notification, error)
	MarkRead(ctx context.Context, tx *gorm.DB, recipientIDs []uuid.UUID) error
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	repoLog := baseLog.With("repo", "NotificationRepo")
	return &notificationRepo{db: db, log: repoLog}
}

func (r *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notification *types.Notification, recipients []*types.NotificationRecipient) (*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, translateCreate(err)
	}
	for _, recipient := range recipients {
		recipient.NotificationID = notification.ID
	}
	if len(recipients) > 0 {
		if err := transaction.WithContext(ctx).Create(&recipients).Error; err != nil {
			return nil, translateCreate(err)
		}
	}
	return notification, nil
}

func (r *notificationRepo) ListByRpID(ctx context.Context, tx *gorm.DB, rpID string, limit, offset int) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Joins("JOIN notification_recipient ON notification_recipient.notification_id = notification.id").
		Where("notification_recipient.rp_id = ?", rpID).
		Order("notification.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var results []*types.Notification
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *notificationRepo) ListByStaffID(ctx context.Context, tx *gorm.DB, staffID uuid.UUID, limit, offset int) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Joins("JOIN notification_recipient ON notification_recipient.notification_id = notification.id").
		Where("notification_recipient.staff_id = ?", staffID).
		Order("notification.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var results []*types.Notification
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, recipientIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(recipientIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.NotificationRecipient{}).
		Where("id IN ?", recipientIDs).
		Update("read_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
