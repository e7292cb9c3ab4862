package usecase_review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/filmnest/core/internal/model"
	"github.com/google/uuid"
)

var (
	ErrNoUser         = errors.New("user not signed in")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrEmptyReview    = errors.New("review text cannot be empty")
	ErrInvalidInput   = errors.New("invalid input")
	ErrReviewNotFound = errors.New("review not found")
	ErrInternal       = errors.New("internal error")
)

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

type Repository interface {
	Insert(ctx context.Context, r model.Review) (int64, error)
	Update(ctx context.Context, reviewID int64, userID uuid.UUID, rating int, text string) error
	DeleteByID(ctx context.Context, reviewID int64, userID uuid.UUID) error
	LoadByID(ctx context.Context, reviewID int64) (model.Review, error)
	LoadForMedia(ctx context.Context, kind model.MediaKind, mediaID int64) ([]*model.Review, error)
}

// Notifier pushes review change events to subscribers of a media record.
// Subscribers re-fetch the full list on any event; duplicate refreshes are
// harmless since the fetch replaces the list each time.
type Notifier interface {
	NotifyReviewChange(kind model.MediaKind, mediaID int64, change ChangeType, reviewID int64)
}

type Usecase struct {
	repository Repository
	notifier   Notifier
}

func New(repository Repository, notifier Notifier) *Usecase {
	return &Usecase{
		repository: repository,
		notifier:   notifier,
	}
}

func validate(rating int, text string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyReview
	}
	return nil
}

// Submit validates locally before touching the store: an out-of-range rating
// or blank text never issues an insert.
func (u *Usecase) Submit(ctx context.Context, userID uuid.UUID, kind model.MediaKind, mediaID int64, rating int, text string) (int64, error) {
	if userID == uuid.Nil {
		return 0, ErrNoUser
	}
	if _, err := model.ParseMediaKind(string(kind)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := validate(rating, text); err != nil {
		return 0, err
	}

	review := model.Review{
		UserID: userID,
		Rating: rating,
		Text:   text,
	}
	if kind == model.KindMovie {
		review.MovieID = &mediaID
	} else {
		review.TVShowID = &mediaID
	}

	id, err := u.repository.Insert(ctx, review)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	u.notifier.NotifyReviewChange(kind, mediaID, ChangeInsert, id)

	return id, nil
}

// Update rewrites a review in place. Ownership is enforced in one place: the
// repository predicate filters by both review id and user id, and zero rows
// affected surfaces as not-found.
func (u *Usecase) Update(ctx context.Context, userID uuid.UUID, reviewID int64, rating int, text string) error {
	if userID == uuid.Nil {
		return ErrNoUser
	}
	if err := validate(rating, text); err != nil {
		return err
	}

	existing, err := u.repository.LoadByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := u.repository.Update(ctx, reviewID, userID, rating, text); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	u.notifier.NotifyReviewChange(existing.MediaKind(), existing.MediaID(), ChangeUpdate, reviewID)

	return nil
}

func (u *Usecase) Delete(ctx context.Context, userID uuid.UUID, reviewID int64) error {
	if userID == uuid.Nil {
		return ErrNoUser
	}

	existing, err := u.repository.LoadByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := u.repository.DeleteByID(ctx, reviewID, userID); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	u.notifier.NotifyReviewChange(existing.MediaKind(), existing.MediaID(), ChangeDelete, reviewID)

	return nil
}

// ListForMedia returns the full review list for one media record, newest
// first.
func (u *Usecase) ListForMedia(ctx context.Context, kind model.MediaKind, mediaID int64) ([]*model.Review, error) {
	if _, err := model.ParseMediaKind(string(kind)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	reviews, err := u.repository.LoadForMedia(ctx, kind, mediaID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return reviews, nil
}
