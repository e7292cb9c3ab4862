package usecase_media

import (
	"context"
	"errors"
	"fmt"

	"github.com/filmnest/core/internal/model"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMediaNotFound     = errors.New("media not found")
	ErrFailedToLoadMedia = errors.New("failed to load media")
)

// DefaultLimit matches the listing bound of the catalog pages.
const DefaultLimit = 10

// ListQuery holds the predicates pushed down to the store: genre equality,
// release-year decade range and an inclusive rating range.
type ListQuery struct {
	Genre       string
	DecadeStart int
	RatingMin   *float64
	RatingMax   *float64
	Limit       int
}

type Repository interface {
	Load(ctx context.Context, kind model.MediaKind, q ListQuery) ([]*model.Media, error)
	LoadByID(ctx context.Context, kind model.MediaKind, id int64) (model.Media, error)
}

type Usecase struct {
	repository Repository
}

func New(repository Repository) *Usecase {
	return &Usecase{repository: repository}
}

func (u *Usecase) List(ctx context.Context, kind model.MediaKind, q ListQuery) ([]*model.Media, error) {
	if _, err := model.ParseMediaKind(string(kind)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}

	media, err := u.repository.Load(ctx, kind, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadMedia, err)
	}

	return media, nil
}

func (u *Usecase) GetByID(ctx context.Context, kind model.MediaKind, id int64) (model.Media, error) {
	if _, err := model.ParseMediaKind(string(kind)); err != nil {
		return model.Media{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	m, err := u.repository.LoadByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, ErrMediaNotFound) {
			return model.Media{}, err
		}
		return model.Media{}, fmt.Errorf("%w: %w", ErrFailedToLoadMedia, err)
	}

	return m, nil
}
