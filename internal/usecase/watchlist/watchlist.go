package usecase_watchlist

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/filmnest/core/internal/model"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrNoUser             = errors.New("user not signed in")
	ErrAlreadyInWatchlist = errors.New("already in watchlist")
	ErrEntryNotFound      = errors.New("watchlist entry not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

type SortBy string

const (
	SortByTitle       SortBy = "title"
	SortByReleaseYear SortBy = "release_year"
)

type Repository interface {
	Exists(ctx context.Context, userID uuid.UUID, kind model.MediaKind, mediaID int64) (bool, error)
	Insert(ctx context.Context, entry model.WatchlistEntry) (int64, error)
	DeleteByID(ctx context.Context, entryID int64, userID uuid.UUID) error
	LoadForUser(ctx context.Context, userID uuid.UUID) ([]*model.WatchlistEntry, error)
}

type Usecase struct {
	repository Repository
}

func New(repository Repository) *Usecase {
	return &Usecase{repository: repository}
}

// Add inserts a watchlist entry unless one already exists for the same
// (user, media) pair. The existence check and the insert are two separate
// statements, so two concurrent adds can both pass the check and produce
// duplicate rows. Sequential adds stay idempotent, which is the guarantee
// the watchlist pages rely on.
func (u *Usecase) Add(ctx context.Context, userID uuid.UUID, kind model.MediaKind, mediaID int64) (int64, error) {
	if userID == uuid.Nil {
		return 0, ErrNoUser
	}
	if _, err := model.ParseMediaKind(string(kind)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if mediaID <= 0 {
		return 0, fmt.Errorf("%w: media id must be positive", ErrInvalidInput)
	}

	exists, err := u.repository.Exists(ctx, userID, kind, mediaID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if exists {
		return 0, ErrAlreadyInWatchlist
	}

	entry := model.WatchlistEntry{UserID: userID}
	if kind == model.KindMovie {
		entry.MovieID = &mediaID
	} else {
		entry.TVShowID = &mediaID
	}

	id, err := u.repository.Insert(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return id, nil
}

func (u *Usecase) Remove(ctx context.Context, entryID int64, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNoUser
	}

	if err := u.repository.DeleteByID(ctx, entryID, userID); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return nil
}

// ListForUser returns the user's entries joined with their catalog records,
// ordered by title ascending or release year descending.
func (u *Usecase) ListForUser(ctx context.Context, userID uuid.UUID, sortBy SortBy) ([]*model.WatchlistEntry, error) {
	if userID == uuid.Nil {
		return nil, ErrNoUser
	}

	entries, err := u.repository.LoadForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	c := collate.New(language.Und)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Media, entries[j].Media
		if a == nil || b == nil {
			return false
		}
		if sortBy == SortByReleaseYear {
			return a.ReleaseYear > b.ReleaseYear
		}
		return c.CompareString(a.Title, b.Title) < 0
	})

	return entries, nil
}
