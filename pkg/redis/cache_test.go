package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"

	"github.com/onurcolak/emergency-alert-service/internal/domain"
)

func newMockedClient(t *testing.T, ttl time.Duration) (*Client, *mock.Client) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mock.NewClient(ctrl)

	return &Client{client: m, ttl: ttl}, m
}

func sampleBroadcast() *domain.BroadcastResult {
	return &domain.BroadcastResult{
		ID: "b-1",
		Outcomes: []domain.DeliveryOutcome{
			{Recipient: "+15551111111", Name: "Alice", Succeeded: true, ProviderReference: "SM1"},
			{Recipient: "+15552222222", Name: "Bob", Error: "invalid number"},
		},
		Sent:      1,
		Failed:    1,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCacheBroadcast_SetsKeyWithExpiry(t *testing.T) {
	client, m := newMockedClient(t, 90*time.Second)
	result := sampleBroadcast()

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	m.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "broadcast:b-1", string(data), "EX", "90")).
		Return(mock.Result(mock.ValkeyString("OK")))

	if err := client.CacheBroadcast(context.Background(), result); err != nil {
		t.Fatalf("CacheBroadcast returned error: %v", err)
	}
}

func TestCacheBroadcast_RoundTrip(t *testing.T) {
	client, m := newMockedClient(t, time.Minute)
	ctx := context.Background()

	var stored string
	m.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd valkey.Completed) valkey.ValkeyResult {
			// SET key value EX seconds
			stored = cmd.Commands()[2]
			return mock.Result(mock.ValkeyString("OK"))
		})

	if err := client.CacheBroadcast(ctx, sampleBroadcast()); err != nil {
		t.Fatalf("CacheBroadcast returned error: %v", err)
	}

	m.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "broadcast:b-1")).
		DoAndReturn(func(context.Context, valkey.Completed) valkey.ValkeyResult {
			return mock.Result(mock.ValkeyString(stored))
		})

	got, err := client.GetBroadcast(ctx, "b-1")
	if err != nil {
		t.Fatalf("GetBroadcast returned error: %v", err)
	}

	want := sampleBroadcast()
	if got.ID != want.ID || got.Sent != 1 || got.Failed != 1 || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("unexpected broadcast %+v", got)
	}
	if len(got.Outcomes) != 2 || got.Outcomes[1] != want.Outcomes[1] {
		t.Errorf("unexpected outcomes %+v", got.Outcomes)
	}
}

func TestGetBroadcast_MissingKeyIsNotFound(t *testing.T) {
	client, m := newMockedClient(t, time.Minute)

	m.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "broadcast:expired")).
		Return(mock.Result(mock.ValkeyNil()))

	_, err := client.GetBroadcast(context.Background(), "expired")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetBroadcast_ConnectionErrorIsNotNotFound(t *testing.T) {
	client, m := newMockedClient(t, time.Minute)

	m.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "broadcast:b-1")).
		Return(mock.ErrorResult(errors.New("connection reset")))

	_, err := client.GetBroadcast(context.Background(), "b-1")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("connection failure must not look like a missing key: %v", err)
	}
}
