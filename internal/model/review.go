package model

import (
	"time"

	"github.com/google/uuid"
)

// Review ties a 1-5 rating and free text to exactly one media record.
// MovieID and TVShowID are mutually exclusive.
type Review struct {
	ID        int64
	UserID    uuid.UUID
	MovieID   *int64
	TVShowID  *int64
	Rating    int
	Text      string
	CreatedAt time.Time

	// AuthorEmail comes from the reviews_with_user view on reads.
	AuthorEmail string
}

func (r Review) MediaKind() MediaKind {
	if r.TVShowID != nil {
		return KindTVShow
	}
	return KindMovie
}

func (r Review) MediaID() int64 {
	if r.TVShowID != nil {
		return *r.TVShowID
	}
	if r.MovieID != nil {
		return *r.MovieID
	}
	return 0
}
