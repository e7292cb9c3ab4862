package model

import "errors"

type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindTVShow MediaKind = "tv_show"
)

var ErrUnknownMediaKind = errors.New("unknown media kind")

func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(s) {
	case KindMovie, KindTVShow:
		return MediaKind(s), nil
	}
	return "", ErrUnknownMediaKind
}

// Media is a catalog record. Records are owned by the data store and are
// read-only to the service.
type Media struct {
	ID          int64
	Kind        MediaKind
	Title       string
	Image       string
	Genre       string
	ReleaseYear int
	Rating      *float64
	Description *string
}

// RatingOrZero treats an unrated record as 0 for filtering and ordering.
func (m Media) RatingOrZero() float64 {
	if m.Rating == nil {
		return 0
	}
	return *m.Rating
}
