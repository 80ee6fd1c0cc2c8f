package service

import (
	"context"
	"strings"

	"github.com/onurcolak/emergency-alert-service/internal/domain"
	"github.com/onurcolak/emergency-alert-service/pkg/logger"
)

// Small internal interface so we can test without touching a real database.
type contactRepository interface {
	Create(ctx context.Context, name, phoneNumber, userID string) (*domain.Contact, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

type ContactService struct {
	repo contactRepository
}

func NewContactService(repo contactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) AddContact(ctx context.Context, name, phoneNumber, userID string) (*domain.Contact, error) {
	name = strings.TrimSpace(name)
	phoneNumber = strings.TrimSpace(phoneNumber)
	userID = strings.TrimSpace(userID)

	if name == "" || phoneNumber == "" || userID == "" {
		return nil, domain.NewValidationError("contact", "Name, phone number, and user ID are required")
	}

	contact, err := s.repo.Create(ctx, name, phoneNumber, userID)
	if err != nil {
		return nil, err
	}

	logger.Infof("Added contact %s for user %s", contact.ID, userID)

	return contact, nil
}

func (s *ContactService) ListContacts(ctx context.Context, userID string) ([]domain.Contact, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.NewValidationError("userId", "User ID is required")
	}

	return s.repo.ListByOwner(ctx, userID)
}

func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewValidationError("id", "Contact ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Infof("Deleted contact %s", id)

	return nil
}
