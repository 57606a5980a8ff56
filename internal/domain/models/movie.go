package models

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	Studio      string    `db:"studio" json:"studio"`
	RunningTime int       `db:"running_time" json:"running_time"`
	Genre       []string  `db:"genre" json:"genre,omitempty"`
	Director    string    `db:"director" json:"director"`
	Year        int       `db:"year" json:"year"`
	CreatedAt   time.Time `db:"created_at,omitempty" json:"created_at,omitempty"`
}
