package infra_postgres_watchlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/filmnest/core/internal/model"
	usecase_watchlist "github.com/filmnest/core/internal/usecase/watchlist"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func fkColumn(kind model.MediaKind) string {
	if kind == model.KindTVShow {
		return "tv_show_id"
	}
	return "movie_id"
}

func (r *Repository) Exists(ctx context.Context, userID uuid.UUID, kind model.MediaKind, mediaID int64) (bool, error) {
	query := fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM watchlist WHERE user_id = $1 AND %s = $2)`,
		fkColumn(kind),
	)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, mediaID); err != nil {
		return false, fmt.Errorf("failed to check watchlist: %w", err)
	}

	return exists, nil
}

func (r *Repository) Insert(ctx context.Context, entry model.WatchlistEntry) (int64, error) {
	var movieID, tvShowID sql.NullInt64
	if entry.MovieID != nil {
		movieID = sql.NullInt64{Int64: *entry.MovieID, Valid: true}
	}
	if entry.TVShowID != nil {
		tvShowID = sql.NullInt64{Int64: *entry.TVShowID, Valid: true}
	}

	query := `
		INSERT INTO watchlist (user_id, movie_id, tv_show_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, entry.UserID, movieID, tvShowID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert watchlist entry: %w", err)
	}

	return id, nil
}

func (r *Repository) DeleteByID(ctx context.Context, entryID int64, userID uuid.UUID) error {
	query := `DELETE FROM watchlist WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return usecase_watchlist.ErrEntryNotFound
	}

	return nil
}

type entryDB struct {
	ID        int64         `db:"id"`
	UserID    uuid.UUID     `db:"user_id"`
	MovieID   sql.NullInt64 `db:"movie_id"`
	TVShowID  sql.NullInt64 `db:"tv_show_id"`
	CreatedAt time.Time     `db:"created_at"`

	MediaID     sql.NullInt64   `db:"media_id"`
	Title       sql.NullString  `db:"title"`
	Image       sql.NullString  `db:"image"`
	Genre       sql.NullString  `db:"genre"`
	ReleaseYear sql.NullInt64   `db:"release_year"`
	Rating      sql.NullFloat64 `db:"rating"`
}

// LoadForUser joins each entry with its movie or tv_show row. Entries whose
// media record has gone missing come back with a nil Media.
func (r *Repository) LoadForUser(ctx context.Context, userID uuid.UUID) ([]*model.WatchlistEntry, error) {
	query := `
		SELECT w.id, w.user_id, w.movie_id, w.tv_show_id, w.created_at,
			COALESCE(m.id, t.id) AS media_id,
			COALESCE(m.title, t.title) AS title,
			COALESCE(m.image, t.image) AS image,
			COALESCE(m.genre, t.genre) AS genre,
			COALESCE(m.release_year, t.release_year) AS release_year,
			COALESCE(m.rating, t.rating) AS rating
		FROM watchlist w
		LEFT JOIN movies m ON w.movie_id = m.id
		LEFT JOIN tv_shows t ON w.tv_show_id = t.id
		WHERE w.user_id = $1
		ORDER BY w.id DESC
	`

	var rows []entryDB
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}

	entries := make([]*model.WatchlistEntry, len(rows))
	for i, row := range rows {
		entry := model.WatchlistEntry{
			ID:        row.ID,
			UserID:    row.UserID,
			CreatedAt: row.CreatedAt,
		}
		if row.MovieID.Valid {
			id := row.MovieID.Int64
			entry.MovieID = &id
		}
		if row.TVShowID.Valid {
			id := row.TVShowID.Int64
			entry.TVShowID = &id
		}
		if row.MediaID.Valid {
			kind := model.KindMovie
			if row.TVShowID.Valid {
				kind = model.KindTVShow
			}
			media := model.Media{
				ID:          row.MediaID.Int64,
				Kind:        kind,
				Title:       row.Title.String,
				Image:       row.Image.String,
				Genre:       row.Genre.String,
				ReleaseYear: int(row.ReleaseYear.Int64),
			}
			if row.Rating.Valid {
				rating := row.Rating.Float64
				media.Rating = &rating
			}
			entry.Media = &media
		}
		entries[i] = &entry
	}

	return entries, nil
}

func (r *Repository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM watchlist WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete watchlist for user: %w", err)
	}

	return nil
}
