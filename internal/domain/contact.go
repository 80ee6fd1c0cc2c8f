package domain

import "time"

// Contact is an emergency contact registered by a user.
type Contact struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	PhoneNumber string    `db:"phone_number" json:"phoneNumber"`
	UserID      string    `db:"user_id" json:"userId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
