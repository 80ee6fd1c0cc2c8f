package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/onurcolak/emergency-alert-service/environments"
	"github.com/onurcolak/emergency-alert-service/internal/domain"
	"github.com/onurcolak/emergency-alert-service/pkg/logger"
)

type recipientSource interface {
	ListAll(ctx context.Context) ([]domain.Contact, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Contact, error)
}

type smsGateway interface {
	SendSMS(ctx context.Context, to, body string) (*domain.SMSReceipt, error)
}

// BroadcastCache keeps finished broadcasts for later lookup.
type BroadcastCache interface {
	CacheBroadcast(ctx context.Context, result *domain.BroadcastResult) error
	GetBroadcast(ctx context.Context, id string) (*domain.BroadcastResult, error)
}

// FailureNotifier is told when every delivery of a broadcast failed.
type FailureNotifier interface {
	NotifyAllFailed(ctx context.Context, result *domain.BroadcastResult) error
}

// AlertService fans one alert out to every resolved recipient and reports a
// per-recipient outcome. A failed send is recorded, never retried, and never
// stops the other sends.
type AlertService struct {
	contacts recipientSource
	gateway  smsGateway
	cache    BroadcastCache
	notifier FailureNotifier
	config   environments.AlertConfig
	limiter  *rate.Limiter

	now   func() time.Time
	newID func() string
}

// NewAlertService wires the dispatcher. cache and notifier may be nil
// interfaces; callers must not pass a typed nil pointer.
func NewAlertService(
	contacts recipientSource,
	gateway smsGateway,
	cache BroadcastCache,
	notifier FailureNotifier,
	config environments.AlertConfig,
) *AlertService {
	if config.MapLinkTemplate == "" {
		config.MapLinkTemplate = environments.DefaultMapLinkTemplate
	}

	s := &AlertService{
		contacts: contacts,
		gateway:  gateway,
		cache:    cache,
		notifier: notifier,
		config:   config,
		now:      time.Now,
		newID:    uuid.NewString,
	}

	if config.RatePerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(config.RatePerSecond), config.RatePerSecond)
	}

	return s
}

// ComposeBody builds the text every recipient of req receives.
func (s *AlertService) ComposeBody(req domain.BroadcastRequest) string {
	return req.Message + "\n" + req.Coordinate.MapLink(s.config.MapLinkTemplate)
}

// Broadcast validates req, resolves recipients once and sends to all of them
// concurrently. It only returns an error when nothing could be attempted:
// a ValidationError for bad input or a DependencyError when the recipient
// list could not be read.
func (s *AlertService) Broadcast(ctx context.Context, req domain.BroadcastRequest) (*domain.BroadcastResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, domain.NewValidationError("message", "Message is required")
	}
	if err := req.Coordinate.Validate(); err != nil {
		return nil, err
	}

	recipients, err := s.resolveRecipients(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	result := &domain.BroadcastResult{
		ID:        s.newID(),
		Outcomes:  make([]domain.DeliveryOutcome, len(recipients)),
		CreatedAt: s.now().UTC(),
	}

	if len(recipients) == 0 {
		logger.Warnf("Broadcast %s has no recipients", result.ID)
		return result, nil
	}

	body := s.ComposeBody(req)

	// Once dispatched, sends outlive the caller's request.
	dispatchCtx := context.WithoutCancel(ctx)

	start := time.Now()
	logger.Infof("Broadcast %s: dispatching to %d recipients", result.ID, len(recipients))

	var g errgroup.Group
	if s.config.MaxInFlight > 0 {
		g.SetLimit(s.config.MaxInFlight)
	}

	for i, contact := range recipients {
		g.Go(func() error {
			// each task owns exactly one slot
			result.Outcomes[i] = s.deliver(dispatchCtx, contact, body)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range result.Outcomes {
		if o.Succeeded {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	if result.Failed > 0 {
		logger.Warnf("Broadcast %s finished with failures: %d sent, %d failed in %v",
			result.ID, result.Sent, result.Failed, time.Since(start))
	} else {
		logger.Infof("Broadcast %s finished: %d sent in %v", result.ID, result.Sent, time.Since(start))
	}

	s.afterBroadcast(dispatchCtx, result)

	return result, nil
}

func (s *AlertService) resolveRecipients(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	var (
		contacts []domain.Contact
		err      error
	)

	if ownerID != "" {
		contacts, err = s.contacts.ListByOwner(ctx, ownerID)
	} else {
		contacts, err = s.contacts.ListAll(ctx)
	}
	if err != nil {
		var depErr *domain.DependencyError
		if errors.As(err, &depErr) {
			return nil, err
		}
		return nil, &domain.DependencyError{Component: "contact store", Err: err}
	}

	// one send per address
	seen := make(map[string]struct{}, len(contacts))
	recipients := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.PhoneNumber == "" {
			continue
		}
		if _, dup := seen[c.PhoneNumber]; dup {
			continue
		}
		seen[c.PhoneNumber] = struct{}{}
		recipients = append(recipients, c)
	}

	return recipients, nil
}

func (s *AlertService) deliver(ctx context.Context, contact domain.Contact, body string) domain.DeliveryOutcome {
	outcome := domain.DeliveryOutcome{
		Recipient: contact.PhoneNumber,
		Name:      contact.Name,
	}

	if s.config.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.SendTimeout)
		defer cancel()
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			outcome.Error = fmt.Sprintf("send not attempted: %v", err)
			logger.Errorf("Rate limiter rejected send to %s: %v", contact.PhoneNumber, err)
			return outcome
		}
	}

	receipt, err := s.sendSafely(ctx, contact.PhoneNumber, body)
	if err != nil {
		outcome.Error = err.Error()
		logger.Errorf("Failed to send alert to %s: %v", contact.PhoneNumber, err)
		return outcome
	}

	outcome.Succeeded = true
	outcome.ProviderReference = receipt.SID

	logger.Debugf("Sent alert to %s (sid: %s)", contact.PhoneNumber, receipt.SID)

	return outcome
}

// sendSafely turns a gateway panic into a DeliveryError for that recipient.
func (s *AlertService) sendSafely(ctx context.Context, to, body string) (receipt *domain.SMSReceipt, err error) {
	defer func() {
		if r := recover(); r != nil {
			receipt = nil
			err = fmt.Errorf("gateway panic: %v", r)
		}
	}()

	receipt, err = s.gateway.SendSMS(ctx, to, body)
	if err == nil && receipt == nil {
		err = errors.New("gateway returned no receipt")
	}

	return receipt, err
}

func (s *AlertService) afterBroadcast(ctx context.Context, result *domain.BroadcastResult) {
	if s.cache != nil {
		if err := s.cache.CacheBroadcast(ctx, result); err != nil {
			logger.Warnf("Failed to cache broadcast %s: %v", result.ID, err)
		}
	}

	if s.notifier != nil && result.AllFailed() {
		snapshot := *result
		snapshot.Outcomes = append([]domain.DeliveryOutcome(nil), result.Outcomes...)

		go func() {
			notifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := s.notifier.NotifyAllFailed(notifyCtx, &snapshot); err != nil {
				logger.Errorf("Failed to notify operators about broadcast %s: %v", snapshot.ID, err)
			}
		}()
	}
}

// GetBroadcast looks up a recently finished broadcast.
func (s *AlertService) GetBroadcast(ctx context.Context, id string) (*domain.BroadcastResult, error) {
	if s.cache == nil {
		return nil, &domain.DependencyError{Component: "broadcast cache", Err: errors.New("redis client not configured")}
	}

	result, err := s.cache.GetBroadcast(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.DependencyError{Component: "broadcast cache", Err: err}
	}

	return result, nil
}
