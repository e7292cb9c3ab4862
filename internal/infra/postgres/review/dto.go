package infra_postgres_review

import (
	"database/sql"
	"time"

	"github.com/filmnest/core/internal/model"
	"github.com/google/uuid"
)

type ReviewDB struct {
	ID          int64          `db:"id"`
	UserID      uuid.UUID      `db:"user_id"`
	MovieID     sql.NullInt64  `db:"movie_id"`
	TVShowID    sql.NullInt64  `db:"tv_show_id"`
	Rating      int            `db:"rating"`
	ReviewText  string         `db:"review_text"`
	CreatedAt   time.Time      `db:"created_at"`
	AuthorEmail sql.NullString `db:"author_email"`
}

func (r *ReviewDB) ToDomain() model.Review {
	out := model.Review{
		ID:        r.ID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Text:      r.ReviewText,
		CreatedAt: r.CreatedAt,
	}
	if r.MovieID.Valid {
		id := r.MovieID.Int64
		out.MovieID = &id
	}
	if r.TVShowID.Valid {
		id := r.TVShowID.Int64
		out.TVShowID = &id
	}
	if r.AuthorEmail.Valid {
		out.AuthorEmail = r.AuthorEmail.String
	}
	return out
}

func FromDomain(r model.Review) ReviewDB {
	out := ReviewDB{
		ID:         r.ID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		ReviewText: r.Text,
	}
	if r.MovieID != nil {
		out.MovieID = sql.NullInt64{Int64: *r.MovieID, Valid: true}
	}
	if r.TVShowID != nil {
		out.TVShowID = sql.NullInt64{Int64: *r.TVShowID, Valid: true}
	}
	return out
}
