package twilio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/emergency-alert-service/environments"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(environments.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		FromNumber: "+15550009999",
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
	})
}

func TestSendSMS_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "basic auth should be set")
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+15551234567", r.PostForm.Get("To"))
		assert.Equal(t, "+15550009999", r.PostForm.Get("From"))
		assert.Equal(t, "Help\nhttps://www.google.com/maps?q=40,-74", r.PostForm.Get("Body"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM0001","status":"queued"}`))
	})

	receipt, err := client.SendSMS(context.Background(), "+15551234567", "Help\nhttps://www.google.com/maps?q=40,-74")
	require.NoError(t, err)
	assert.Equal(t, "SM0001", receipt.SID)
	assert.Equal(t, "queued", receipt.Status)
}

func TestSendSMS_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"The 'To' number is not a valid phone number.","status":400}`))
	})

	receipt, err := client.SendSMS(context.Background(), "not-a-number", "Help")
	require.Error(t, err)
	assert.Nil(t, receipt)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %T", err)
	assert.Equal(t, 21211, apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "not a valid phone number")
}

func TestSendSMS_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.SendSMS(ctx, "+15551234567", "Help")
	require.Error(t, err)
}
