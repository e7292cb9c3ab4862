package infra_postgres_review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filmnest/core/internal/model"
	usecase_review "github.com/filmnest/core/internal/usecase/review"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, review model.Review) (int64, error) {
	reviewDB := FromDomain(review)

	query := `
		INSERT INTO reviews (user_id, movie_id, tv_show_id, rating, review_text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		reviewDB.UserID, reviewDB.MovieID, reviewDB.TVShowID, reviewDB.Rating, reviewDB.ReviewText,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert review: %w", err)
	}

	return id, nil
}

// Update filters by both id and user_id. A user can only rewrite their own
// review; anything else reports not-found.
func (r *Repository) Update(ctx context.Context, reviewID int64, userID uuid.UUID, rating int, text string) error {
	query := `
		UPDATE reviews
		SET rating = $3, review_text = $4
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, reviewID, userID, rating, text)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return usecase_review.ErrReviewNotFound
	}

	return nil
}

func (r *Repository) DeleteByID(ctx context.Context, reviewID int64, userID uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, reviewID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return usecase_review.ErrReviewNotFound
	}

	return nil
}

func (r *Repository) LoadByID(ctx context.Context, reviewID int64) (model.Review, error) {
	query := `
		SELECT id, user_id, movie_id, tv_show_id, rating, review_text, created_at
		FROM reviews
		WHERE id = $1
	`

	var reviewDB ReviewDB
	if err := r.db.GetContext(ctx, &reviewDB, query, reviewID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Review{}, usecase_review.ErrReviewNotFound
		}
		return model.Review{}, fmt.Errorf("failed to load review by id: %w", err)
	}

	return reviewDB.ToDomain(), nil
}

// LoadForMedia reads from the reviews_with_user view so each review carries
// its author's email, newest first.
func (r *Repository) LoadForMedia(ctx context.Context, kind model.MediaKind, mediaID int64) ([]*model.Review, error) {
	column := "movie_id"
	if kind == model.KindTVShow {
		column = "tv_show_id"
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, movie_id, tv_show_id, rating, review_text, created_at, author_email
		FROM reviews_with_user
		WHERE %s = $1
		ORDER BY created_at DESC
	`, column)

	var rows []ReviewDB
	if err := r.db.SelectContext(ctx, &rows, query, mediaID); err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	reviews := make([]*model.Review, len(rows))
	for i, row := range rows {
		review := row.ToDomain()
		reviews[i] = &review
	}

	return reviews, nil
}

func (r *Repository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM reviews WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete reviews for user: %w", err)
	}

	return nil
}
