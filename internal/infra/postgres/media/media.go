package infra_postgres_media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filmnest/core/internal/model"
	usecase_media "github.com/filmnest/core/internal/usecase/media"
	"github.com/jmoiron/sqlx"
)

// Repository reads the movies and tv_shows tables. Both tables share one
// shape, so queries differ only in the table name. The catalog is read-only
// to the service.
type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func tableFor(kind model.MediaKind) (string, error) {
	switch kind {
	case model.KindMovie:
		return "movies", nil
	case model.KindTVShow:
		return "tv_shows", nil
	}
	return "", model.ErrUnknownMediaKind
}

func (r *Repository) Load(ctx context.Context, kind model.MediaKind, q usecase_media.ListQuery) ([]*model.Media, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, title, image, genre, release_year, rating, description
		FROM %s
		WHERE 1=1`, table)
	args := []any{}

	if q.Genre != "" {
		args = append(args, q.Genre)
		query += fmt.Sprintf(" AND genre = $%d", len(args))
	}
	if q.DecadeStart > 0 {
		args = append(args, q.DecadeStart)
		query += fmt.Sprintf(" AND release_year >= $%d", len(args))
		args = append(args, q.DecadeStart+9)
		query += fmt.Sprintf(" AND release_year <= $%d", len(args))
	}
	if q.RatingMin != nil {
		args = append(args, *q.RatingMin)
		query += fmt.Sprintf(" AND rating >= $%d", len(args))
	}
	if q.RatingMax != nil {
		args = append(args, *q.RatingMax)
		query += fmt.Sprintf(" AND rating <= $%d", len(args))
	}

	query += " ORDER BY id"
	args = append(args, q.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	var rows []MediaDB
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	media := make([]*model.Media, len(rows))
	for i, row := range rows {
		m := row.ToDomain(kind)
		media[i] = &m
	}

	return media, nil
}

func (r *Repository) LoadByID(ctx context.Context, kind model.MediaKind, id int64) (model.Media, error) {
	table, err := tableFor(kind)
	if err != nil {
		return model.Media{}, err
	}

	query := fmt.Sprintf(`
		SELECT id, title, image, genre, release_year, rating, description
		FROM %s
		WHERE id = $1`, table)

	var row MediaDB
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Media{}, usecase_media.ErrMediaNotFound
		}
		return model.Media{}, fmt.Errorf("failed to load %s by id: %w", table, err)
	}

	return row.ToDomain(kind), nil
}
