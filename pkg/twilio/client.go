package twilio

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/emergency-alert-service/environments"
	"github.com/onurcolak/emergency-alert-service/internal/domain"
	"github.com/onurcolak/emergency-alert-service/pkg/logger"
)

const messagesPath = "/2010-04-01/Accounts/{accountSid}/Messages.json"

// APIError is the error body Twilio returns for a rejected message.
type APIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twilio error %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Client sends SMS through the Twilio Messages API. It is safe for
// concurrent use.
type Client struct {
	httpClient *resty.Client
	accountSID string
	from       string
}

func NewClient(cfg environments.TwilioConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		accountSID: cfg.AccountSID,
		from:       cfg.FromNumber,
	}
}

// SendSMS submits one message. A non-2xx reply is returned as *APIError.
func (c *Client) SendSMS(ctx context.Context, to, body string) (*domain.SMSReceipt, error) {
	var result messageResponse
	var apiErr APIError

	startTime := time.Now()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("accountSid", c.accountSID).
		SetFormData(map[string]string{
			"To":   to,
			"From": c.from,
			"Body": body,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post(messagesPath)

	duration := time.Since(startTime)

	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	logger.Debugf("Twilio request for %s completed in %v (status: %d)", to, duration, resp.StatusCode())

	if resp.IsError() {
		if apiErr.Status == 0 {
			apiErr.Status = resp.StatusCode()
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.String()
		}
		return nil, &apiErr
	}

	if result.SID == "" {
		return nil, fmt.Errorf("unexpected response without message sid (status: %d)", resp.StatusCode())
	}

	return &domain.SMSReceipt{SID: result.SID, Status: result.Status}, nil
}

func (c *Client) From() string {
	return c.from
}
