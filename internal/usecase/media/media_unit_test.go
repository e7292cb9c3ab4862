//go:build !integration
// +build !integration

package usecase_media

import (
	"context"
	"errors"
	"testing"

	"github.com/filmnest/core/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type UsecaseMediaUnitSuite struct {
	suite.Suite
}

type repositoryMock struct {
	mock.Mock
}

func (m *repositoryMock) Load(ctx context.Context, kind model.MediaKind, q ListQuery) ([]*model.Media, error) {
	args := m.Called(ctx, kind, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Media), args.Error(1)
}

func (m *repositoryMock) LoadByID(ctx context.Context, kind model.MediaKind, id int64) (model.Media, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(model.Media), args.Error(1)
}

type mediaResources struct {
	usecase    *Usecase
	repository *repositoryMock
	ctx        context.Context
}

func initMediaResources(t provider.T) *mediaResources {
	repository := &repositoryMock{}
	return &mediaResources{
		usecase:    New(repository),
		repository: repository,
		ctx:        context.Background(),
	}
}

func (suite *UsecaseMediaUnitSuite) TestList(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *mediaResources)
		kind          model.MediaKind
		query         ListQuery
		expectError   bool
		expectedErr   error
		expectedCount int
	}{
		{
			name: "Should list movies with the query passed through",
			setupMocks: func(r *mediaResources) {
				media := []*model.Media{
					NewMediaBuilder().WithID(1).Build(),
					NewMediaBuilder().WithID(2).Build(),
				}
				r.repository.On("Load", r.ctx, model.KindMovie, ListQuery{Genre: "Sci-Fi", Limit: 20}).
					Return(media, nil).Once()
			},
			kind:          model.KindMovie,
			query:         ListQuery{Genre: "Sci-Fi", Limit: 20},
			expectError:   false,
			expectedCount: 2,
		},
		{
			name: "Should fall back to the default limit when none is given",
			setupMocks: func(r *mediaResources) {
				r.repository.On("Load", r.ctx, model.KindTVShow, ListQuery{Limit: DefaultLimit}).
					Return([]*model.Media{}, nil).Once()
			},
			kind:          model.KindTVShow,
			query:         ListQuery{},
			expectError:   false,
			expectedCount: 0,
		},
		{
			name:        "Should reject an unknown media kind without touching the store",
			setupMocks:  func(r *mediaResources) {},
			kind:        model.MediaKind("book"),
			query:       ListQuery{},
			expectError: true,
			expectedErr: ErrInvalidInput,
		},
		{
			name: "Should wrap repository failures",
			setupMocks: func(r *mediaResources) {
				r.repository.On("Load", r.ctx, model.KindMovie, ListQuery{Limit: DefaultLimit}).
					Return(nil, errors.New("query error")).Once()
			},
			kind:        model.KindMovie,
			query:       ListQuery{},
			expectError: true,
			expectedErr: ErrFailedToLoadMedia,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initMediaResources(t)
			tc.setupMocks(r)

			media, err := r.usecase.List(r.ctx, tc.kind, tc.query)

			if tc.expectError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, media)
			} else {
				assert.NoError(t, err)
				assert.Len(t, media, tc.expectedCount)
			}
			r.repository.AssertExpectations(t)
		})
	}
}

func (suite *UsecaseMediaUnitSuite) TestGetByID(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *mediaResources)
		kind        model.MediaKind
		mediaID     int64
		expectError bool
		expectedErr error
	}{
		{
			name: "Should load one record by id",
			setupMocks: func(r *mediaResources) {
				r.repository.On("LoadByID", r.ctx, model.KindMovie, int64(42)).
					Return(*NewMediaBuilder().WithID(42).Build(), nil).Once()
			},
			kind:        model.KindMovie,
			mediaID:     42,
			expectError: false,
		},
		{
			name: "Should pass ErrMediaNotFound through untouched",
			setupMocks: func(r *mediaResources) {
				r.repository.On("LoadByID", r.ctx, model.KindTVShow, int64(7)).
					Return(model.Media{}, ErrMediaNotFound).Once()
			},
			kind:        model.KindTVShow,
			mediaID:     7,
			expectError: true,
			expectedErr: ErrMediaNotFound,
		},
		{
			name:        "Should reject an unknown media kind",
			setupMocks:  func(r *mediaResources) {},
			kind:        model.MediaKind(""),
			mediaID:     1,
			expectError: true,
			expectedErr: ErrInvalidInput,
		},
		{
			name: "Should wrap repository failures",
			setupMocks: func(r *mediaResources) {
				r.repository.On("LoadByID", r.ctx, model.KindMovie, int64(1)).
					Return(model.Media{}, errors.New("connection refused")).Once()
			},
			kind:        model.KindMovie,
			mediaID:     1,
			expectError: true,
			expectedErr: ErrFailedToLoadMedia,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initMediaResources(t)
			tc.setupMocks(r)

			m, err := r.usecase.GetByID(r.ctx, tc.kind, tc.mediaID)

			if tc.expectError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, model.Media{}, m)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.mediaID, m.ID)
			}
			r.repository.AssertExpectations(t)
		})
	}
}

func TestMediaUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseMediaUnitSuite))
}
