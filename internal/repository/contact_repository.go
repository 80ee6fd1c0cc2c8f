package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/emergency-alert-service/internal/domain"
)

const contactStore = "contact store"

// ContactRepository handles database operations for contacts.
type ContactRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *ContactRepository) Create(ctx context.Context, name, phoneNumber, userID string) (*domain.Contact, error) {
	contact := domain.Contact{
		ID:          uuid.NewString(),
		Name:        name,
		PhoneNumber: phoneNumber,
		UserID:      userID,
		CreatedAt:   r.now(),
	}

	query := `
		INSERT INTO contacts (id, name, phone_number, user_id, created_at)
		VALUES (:id, :name, :phone_number, :user_id, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return nil, storeError(fmt.Errorf("failed to create contact: %w", err))
	}

	return &contact, nil
}

func (r *ContactRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Contact, error) {
	query := `
		SELECT id, name, phone_number, user_id, created_at
		FROM contacts
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`

	contacts := []domain.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, r.db.Rebind(query), userID); err != nil {
		return nil, storeError(fmt.Errorf("failed to list contacts: %w", err))
	}

	return contacts, nil
}

func (r *ContactRepository) ListAll(ctx context.Context) ([]domain.Contact, error) {
	query := `
		SELECT id, name, phone_number, user_id, created_at
		FROM contacts
		ORDER BY created_at ASC, id ASC
	`

	contacts := []domain.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, storeError(fmt.Errorf("failed to list all contacts: %w", err))
	}

	return contacts, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	query := `
		SELECT id, name, phone_number, user_id, created_at
		FROM contacts
		WHERE id = ?
	`

	var contact domain.Contact
	if err := r.db.GetContext(ctx, &contact, r.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeError(fmt.Errorf("failed to get contact: %w", err))
	}

	return &contact, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM contacts WHERE id = ?"), id)
	if err != nil {
		return storeError(fmt.Errorf("failed to delete contact: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeError(fmt.Errorf("failed to get affected rows: %w", err))
	}

	if rows == 0 {
		return fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func storeError(err error) error {
	return &domain.DependencyError{Component: contactStore, Err: err}
}
