// Package notifier posts alert and summary payloads to the configured webhook
// endpoint. Delivery semantics (fan-out to email/WhatsApp, retries) belong to
// the receiving service; this client only hands records over.
package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/config"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

// Client exposes the notification operations used by the scheduler.
type Client interface {
	SendLowStockAlerts(ctx context.Context, outletID string, alerts []models.LowStockAlert) error
	SendDailySummary(ctx context.Context, summary models.DailySummary) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
}

// NewClient builds a webhook notifier using the provided configuration values.
func NewClient(cfg config.NotifierConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.WebhookURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AuthToken))
	}

	return &WebhookClient{httpClient: restyClient}
}

// alertPayload is the low-stock notification body.
type alertPayload struct {
	Kind     string                 `json:"kind"`
	OutletID string                 `json:"outlet_id"`
	Alerts   []models.LowStockAlert `json:"alerts"`
}

// summaryPayload is the daily summary notification body.
type summaryPayload struct {
	Kind    string              `json:"kind"`
	Summary models.DailySummary `json:"summary"`
}

// SendLowStockAlerts delivers the outlet's active alerts. Empty alert lists
// are not sent.
func (c *WebhookClient) SendLowStockAlerts(ctx context.Context, outletID string, alerts []models.LowStockAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	payload := alertPayload{Kind: "low_stock", OutletID: outletID, Alerts: alerts}
	return c.post(ctx, "/alerts", payload)
}

// SendDailySummary delivers a generated daily summary.
func (c *WebhookClient) SendDailySummary(ctx context.Context, summary models.DailySummary) error {
	payload := summaryPayload{Kind: "daily_summary", Summary: summary}
	return c.post(ctx, "/summaries", payload)
}

func (c *WebhookClient) post(ctx context.Context, path string, payload any) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(path)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("notification endpoint returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
