package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/emergency-alert-service/internal/domain"
	"github.com/onurcolak/emergency-alert-service/pkg/logger"
)

// FailurePayload is posted to the operator webhook when a broadcast reached
// nobody.
type FailurePayload struct {
	Alert       string   `json:"alert"`
	BroadcastID string   `json:"broadcastId"`
	Recipients  int      `json:"recipients"`
	Errors      []string `json:"errors"`
	Timestamp   string   `json:"timestamp"`
	Message     string   `json:"message"`
}

// Client notifies operators about broadcasts in which every delivery failed.
type Client struct {
	httpClient *resty.Client
	webhookURL string
}

func NewWebhookClient(url string, timeout time.Duration) *Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		webhookURL: url,
	}
}

func (c *Client) NotifyAllFailed(ctx context.Context, result *domain.BroadcastResult) error {
	errs := make([]string, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		errs = append(errs, o.Recipient+": "+o.Error)
	}

	payload := FailurePayload{
		Alert:       "broadcast_all_failed",
		BroadcastID: result.ID,
		Recipients:  len(result.Outcomes),
		Errors:      errs,
		Timestamp:   time.Now().Format(time.RFC3339),
		Message:     fmt.Sprintf("All %d deliveries of broadcast %s failed", len(result.Outcomes), result.ID),
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("failed to send alert to webhook: %w", err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode())
	}

	logger.Infof("Operator alert sent to %s for broadcast %s", c.webhookURL, result.ID)

	return nil
}

func (c *Client) GetURL() string {
	return c.webhookURL
}
