package model

import (
	"time"

	"github.com/google/uuid"
)

// WatchlistEntry references exactly one of a movie or a TV show.
type WatchlistEntry struct {
	ID        int64
	UserID    uuid.UUID
	MovieID   *int64
	TVShowID  *int64
	CreatedAt time.Time

	// Media is the joined catalog record, populated on listing reads.
	Media *Media
}
