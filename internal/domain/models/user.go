package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Email           string    `db:"email" json:"email"`
	ProfileImageURL string    `db:"profile_image_url" json:"profile_image_url"`
	Password        []byte    `db:"password" json:"-"`
	PhoneNumber     string    `db:"phone_number" json:"phone_number,omitempty"`
	CreatedAt       time.Time `db:"created_at,omitempty" json:"created_at,omitempty"`
}
