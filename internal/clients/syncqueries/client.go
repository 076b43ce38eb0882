// Package syncqueries mirrors registry writes to the sibling records system.
// Every create/update/delete of address, household, family, personal, sitio
// and business-respondent-account entities is forwarded; a non-2xx response
// on the registration mirror aborts the local transaction.
package syncqueries

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/utils"
)

type Client interface {
	PostQueries(ctx context.Context, entity string, payload any) error
	UpdateQueries(ctx context.Context, entity, id string, payload any) error
	DeleteQueries(ctx context.Context, entity, id string) error
}

type client struct {
	http *resty.Client
	log  *logger.Logger
}

// New reads the sibling system's base URL from the CLIENT env var.
func New(log *logger.Logger) Client {
	baseURL := utils.GetEnv("CLIENT", "http://localhost:8001", log)
	return NewWithBaseURL(log, baseURL)
}

func NewWithBaseURL(log *logger.Logger, baseURL string) Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &client{
		http: httpClient,
		log:  log.With("client", "SyncQueries"),
	}
}

func (c *client) PostQueries(ctx context.Context, entity string, payload any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/" + entity + "/")
	if err != nil {
		return fmt.Errorf("sync post %s: %w", entity, err)
	}
	if resp.IsError() {
		return fmt.Errorf("sync post %s: status %d: %s", entity, resp.StatusCode(), resp.String())
	}
	return nil
}

func (c *client) UpdateQueries(ctx context.Context, entity, id string, payload any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Patch("/api/" + entity + "/" + id + "/")
	if err != nil {
		return fmt.Errorf("sync patch %s/%s: %w", entity, id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("sync patch %s/%s: status %d: %s", entity, id, resp.StatusCode(), resp.String())
	}
	return nil
}

func (c *client) DeleteQueries(ctx context.Context, entity, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/api/" + entity + "/" + id + "/")
	if err != nil {
		return fmt.Errorf("sync delete %s/%s: %w", entity, id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("sync delete %s/%s: status %d: %s", entity, id, resp.StatusCode(), resp.String())
	}
	return nil
}
