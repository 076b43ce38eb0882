package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/openbims/bims-backend/internal/logger"
)

// NotifyMessage is the wire shape pushed to web/mobile delivery workers.
type NotifyMessage struct {
	NotificationID string         `json:"notification_id"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	NotifType      string         `json:"notif_type"`
	WebRoute       string         `json:"web_route,omitempty"`
	WebParams      map[string]any `json:"web_params,omitempty"`
	MobileRoute    string         `json:"mobile_route,omitempty"`
	MobileParams   map[string]any `json:"mobile_params,omitempty"`
	RecipientRpIDs []string       `json:"recipient_rp_ids,omitempty"`
	RecipientStaff []string       `json:"recipient_staff,omitempty"`
}

type NotifyBus interface {
	Publish(ctx context.Context, msg NotifyMessage) error
	Close() error
}

type notifyBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewNotifyBus(log *logger.Logger) (NotifyBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_CHANNEL"))
	if ch == "" {
		ch = "notifications"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &notifyBus{
		log:     log.With("client", "RedisNotifyBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *notifyBus) Publish(ctx context.Context, msg NotifyMessage) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("notify bus not initialized")
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *notifyBus) Close() error {
	return b.rdb.Close()
}
