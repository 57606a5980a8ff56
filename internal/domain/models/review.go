package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	MovieID   uuid.UUID `db:"movie_id" json:"movie_id"`
	Rating    int       `db:"rating" json:"rating"`
	Review    string    `db:"review" json:"review"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ReviewWithRefs is a review joined with the author name and movie title,
// returned by the listing endpoint.
type ReviewWithRefs struct {
	Review
	AuthorName string `db:"author_name" json:"author_name"`
	MovieTitle string `db:"movie_title" json:"movie_title"`
}
