package infra_postgres_media

import (
	"database/sql"

	"github.com/filmnest/core/internal/model"
)

type MediaDB struct {
	ID          int64           `db:"id"`
	Title       string          `db:"title"`
	Image       string          `db:"image"`
	Genre       string          `db:"genre"`
	ReleaseYear int             `db:"release_year"`
	Rating      sql.NullFloat64 `db:"rating"`
	Description sql.NullString  `db:"description"`
}

func (m *MediaDB) ToDomain(kind model.MediaKind) model.Media {
	out := model.Media{
		ID:          m.ID,
		Kind:        kind,
		Title:       m.Title,
		Image:       m.Image,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
	}
	if m.Rating.Valid {
		r := m.Rating.Float64
		out.Rating = &r
	}
	if m.Description.Valid {
		d := m.Description.String
		out.Description = &d
	}
	return out
}
