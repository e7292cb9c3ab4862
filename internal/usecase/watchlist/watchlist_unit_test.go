//go:build !integration
// +build !integration

package usecase_watchlist

import (
	"context"
	"errors"
	"testing"

	"github.com/filmnest/core/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type UsecaseWatchlistUnitSuite struct {
	suite.Suite
}

type repositoryMock struct {
	mock.Mock
}

func (m *repositoryMock) Exists(ctx context.Context, userID uuid.UUID, kind model.MediaKind, mediaID int64) (bool, error) {
	args := m.Called(ctx, userID, kind, mediaID)
	return args.Bool(0), args.Error(1)
}

func (m *repositoryMock) Insert(ctx context.Context, entry model.WatchlistEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repositoryMock) DeleteByID(ctx context.Context, entryID int64, userID uuid.UUID) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

func (m *repositoryMock) LoadForUser(ctx context.Context, userID uuid.UUID) ([]*model.WatchlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WatchlistEntry), args.Error(1)
}

type resources struct {
	usecase    *Usecase
	repository *repositoryMock
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	repository := &repositoryMock{}
	return &resources{
		usecase:    New(repository),
		repository: repository,
		ctx:        context.Background(),
	}
}

func entryWithMedia(title string, year int) *model.WatchlistEntry {
	return &model.WatchlistEntry{
		Media: &model.Media{Title: title, ReleaseYear: year},
	}
}

func (suite *UsecaseWatchlistUnitSuite) TestAdd(t provider.T) {
	t.Parallel()

	userID := uuid.New()
	mediaID := int64(42)

	testCases := []struct {
		name        string
		setupMocks  func(r *resources)
		userID      uuid.UUID
		kind        model.MediaKind
		mediaID     int64
		expectError bool
		expectedErr error
		expectedID  int64
	}{
		{
			name: "Should insert a movie entry when none exists",
			setupMocks: func(r *resources) {
				r.repository.On("Exists", r.ctx, userID, model.KindMovie, mediaID).
					Return(false, nil).Once()
				r.repository.On("Insert", r.ctx, model.WatchlistEntry{UserID: userID, MovieID: &mediaID}).
					Return(int64(7), nil).Once()
			},
			userID:      userID,
			kind:        model.KindMovie,
			mediaID:     mediaID,
			expectError: false,
			expectedID:  7,
		},
		{
			name: "Should insert a tv show entry under the tv_show column",
			setupMocks: func(r *resources) {
				r.repository.On("Exists", r.ctx, userID, model.KindTVShow, mediaID).
					Return(false, nil).Once()
				r.repository.On("Insert", r.ctx, model.WatchlistEntry{UserID: userID, TVShowID: &mediaID}).
					Return(int64(8), nil).Once()
			},
			userID:      userID,
			kind:        model.KindTVShow,
			mediaID:     mediaID,
			expectError: false,
			expectedID:  8,
		},
		{
			name: "Should return ErrAlreadyInWatchlist without inserting",
			setupMocks: func(r *resources) {
				r.repository.On("Exists", r.ctx, userID, model.KindMovie, mediaID).
					Return(true, nil).Once()
			},
			userID:      userID,
			kind:        model.KindMovie,
			mediaID:     mediaID,
			expectError: true,
			expectedErr: ErrAlreadyInWatchlist,
		},
		{
			name:        "Should return ErrNoUser for the nil user id",
			setupMocks:  func(r *resources) {},
			userID:      uuid.Nil,
			kind:        model.KindMovie,
			mediaID:     mediaID,
			expectError: true,
			expectedErr: ErrNoUser,
		},
		{
			name:        "Should reject an unknown media kind",
			setupMocks:  func(r *resources) {},
			userID:      userID,
			kind:        model.MediaKind("book"),
			mediaID:     mediaID,
			expectError: true,
			expectedErr: ErrInvalidInput,
		},
		{
			name:        "Should reject a non-positive media id",
			setupMocks:  func(r *resources) {},
			userID:      userID,
			kind:        model.KindMovie,
			mediaID:     0,
			expectError: true,
			expectedErr: ErrInvalidInput,
		},
		{
			name: "Should wrap existence check failures",
			setupMocks: func(r *resources) {
				r.repository.On("Exists", r.ctx, userID, model.KindMovie, mediaID).
					Return(false, errors.New("connection refused")).Once()
			},
			userID:      userID,
			kind:        model.KindMovie,
			mediaID:     mediaID,
			expectError: true,
			expectedErr: ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			id, err := r.usecase.Add(r.ctx, tc.userID, tc.kind, tc.mediaID)

			if tc.expectError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Zero(t, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedID, id)
			}
			r.repository.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseWatchlistUnitSuite) TestRemove(t provider.T) {
	t.Parallel()

	userID := uuid.New()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources)
		userID      uuid.UUID
		entryID     int64
		expectError bool
		expectedErr error
	}{
		{
			name: "Should remove an owned entry",
			setupMocks: func(r *resources) {
				r.repository.On("DeleteByID", r.ctx, int64(5), userID).Return(nil).Once()
			},
			userID:      userID,
			entryID:     5,
			expectError: false,
		},
		{
			name: "Should surface ErrEntryNotFound for foreign or missing entries",
			setupMocks: func(r *resources) {
				r.repository.On("DeleteByID", r.ctx, int64(5), userID).
					Return(ErrEntryNotFound).Once()
			},
			userID:      userID,
			entryID:     5,
			expectError: true,
			expectedErr: ErrEntryNotFound,
		},
		{
			name:        "Should return ErrNoUser for the nil user id",
			setupMocks:  func(r *resources) {},
			userID:      uuid.Nil,
			entryID:     5,
			expectError: true,
			expectedErr: ErrNoUser,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			err := r.usecase.Remove(r.ctx, tc.entryID, tc.userID)

			if tc.expectError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			r.repository.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseWatchlistUnitSuite) TestListForUser(t provider.T) {
	t.Parallel()

	userID := uuid.New()

	testCases := []struct {
		name           string
		setupMocks     func(r *resources)
		sortBy         SortBy
		expectedTitles []string
	}{
		{
			name: "Should sort by title ascending",
			setupMocks: func(r *resources) {
				entries := []*model.WatchlistEntry{
					entryWithMedia("Zodiac", 2007),
					entryWithMedia("Arrival", 2016),
					entryWithMedia("Moon", 2009),
				}
				r.repository.On("LoadForUser", r.ctx, userID).Return(entries, nil).Once()
			},
			sortBy:         SortByTitle,
			expectedTitles: []string{"Arrival", "Moon", "Zodiac"},
		},
		{
			name: "Should sort by release year descending",
			setupMocks: func(r *resources) {
				entries := []*model.WatchlistEntry{
					entryWithMedia("Moon", 2009),
					entryWithMedia("Arrival", 2016),
					entryWithMedia("Zodiac", 2007),
				}
				r.repository.On("LoadForUser", r.ctx, userID).Return(entries, nil).Once()
			},
			sortBy:         SortByReleaseYear,
			expectedTitles: []string{"Arrival", "Moon", "Zodiac"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			entries, err := r.usecase.ListForUser(r.ctx, userID, tc.sortBy)

			assert.NoError(t, err)
			titles := make([]string, len(entries))
			for i, e := range entries {
				titles[i] = e.Media.Title
			}
			assert.Equal(t, tc.expectedTitles, titles)
			r.repository.AssertExpectations(t)
		})
	}

	t.Run("Should return ErrNoUser for the nil user id", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		entries, err := r.usecase.ListForUser(r.ctx, uuid.Nil, SortByTitle)

		assert.ErrorIs(t, err, ErrNoUser)
		assert.Nil(t, entries)
	})

	t.Run("Should wrap repository failures", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.repository.On("LoadForUser", r.ctx, userID).
			Return(nil, errors.New("query error")).Once()

		entries, err := r.usecase.ListForUser(r.ctx, userID, SortByTitle)

		assert.ErrorIs(t, err, ErrInternal)
		assert.Nil(t, entries)
		r.repository.AssertExpectations(t)
	})
}

func TestWatchlistUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseWatchlistUnitSuite))
}
