//go:build !integration
// +build !integration

package infra_postgres_media

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/filmnest/core/internal/model"
	usecase_media "github.com/filmnest/core/internal/usecase/media"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type MediaInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db         *sqlx.DB
	mock       sqlmock.Sqlmock
	repository *Repository
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repository := New(sqlxDB)

	return &resources{
		db:         sqlxDB,
		mock:       mock,
		repository: repository,
		ctx:        context.Background(),
	}
}

func mediaColumns() []string {
	return []string{"id", "title", "image", "genre", "release_year", "rating", "description"}
}

func (suite *MediaInfraUnitSuite) TestLoad(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		kind          model.MediaKind
		query         usecase_media.ListQuery
		expectError   bool
		errorType     error
		expectedCount int
	}{
		{
			name: "Should load movies with the limit applied",
			setupMocks: func(r *resources) {
				rows := sqlmock.NewRows(mediaColumns()).
					AddRow(1, "Arrival", "arrival.jpg", "Sci-Fi", 2016, 7.9, "First contact.").
					AddRow(2, "Looper", "looper.jpg", "Sci-Fi", 2012, 7.4, nil)
				r.mock.ExpectQuery("FROM movies").
					WithArgs(10).
					WillReturnRows(rows)
			},
			kind:          model.KindMovie,
			query:         usecase_media.ListQuery{Limit: 10},
			expectError:   false,
			expectedCount: 2,
		},
		{
			name: "Should push genre and decade predicates into the query",
			setupMocks: func(r *resources) {
				rows := sqlmock.NewRows(mediaColumns()).
					AddRow(2, "Looper", "looper.jpg", "Sci-Fi", 2012, 7.4, nil)
				r.mock.ExpectQuery("FROM tv_shows").
					WithArgs("Sci-Fi", 2010, 2019, 10).
					WillReturnRows(rows)
			},
			kind:          model.KindTVShow,
			query:         usecase_media.ListQuery{Genre: "Sci-Fi", DecadeStart: 2010, Limit: 10},
			expectError:   false,
			expectedCount: 1,
		},
		{
			name:        "Should reject an unknown media kind without querying",
			setupMocks:  func(r *resources) {},
			kind:        model.MediaKind("book"),
			query:       usecase_media.ListQuery{Limit: 10},
			expectError: true,
			errorType:   model.ErrUnknownMediaKind,
		},
		{
			name: "Should return error when the query fails",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("FROM movies").
					WithArgs(10).
					WillReturnError(errors.New("query error"))
			},
			kind:        model.KindMovie,
			query:       usecase_media.ListQuery{Limit: 10},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			media, err := r.repository.Load(r.ctx, tc.kind, tc.query)

			if tc.expectError {
				assert.Error(t, err)
				if tc.errorType != nil {
					assert.ErrorIs(t, err, tc.errorType)
				}
				assert.Nil(t, media)
			} else {
				assert.NoError(t, err)
				assert.Len(t, media, tc.expectedCount)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *MediaInfraUnitSuite) TestLoadByID(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources)
		kind        model.MediaKind
		mediaID     int64
		expectError bool
		errorType   error
	}{
		{
			name: "Should load one movie by id",
			setupMocks: func(r *resources) {
				rows := sqlmock.NewRows(mediaColumns()).
					AddRow(42, "Arrival", "arrival.jpg", "Sci-Fi", 2016, 7.9, "First contact.")
				r.mock.ExpectQuery("FROM movies").
					WithArgs(int64(42)).
					WillReturnRows(rows)
			},
			kind:        model.KindMovie,
			mediaID:     42,
			expectError: false,
		},
		{
			name: "Should map no rows to ErrMediaNotFound",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("FROM tv_shows").
					WithArgs(int64(7)).
					WillReturnError(sql.ErrNoRows)
			},
			kind:        model.KindTVShow,
			mediaID:     7,
			expectError: true,
			errorType:   usecase_media.ErrMediaNotFound,
		},
		{
			name: "Should return error when the query fails",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("FROM movies").
					WithArgs(int64(1)).
					WillReturnError(errors.New("query error"))
			},
			kind:        model.KindMovie,
			mediaID:     1,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			m, err := r.repository.LoadByID(r.ctx, tc.kind, tc.mediaID)

			if tc.expectError {
				assert.Error(t, err)
				if tc.errorType != nil {
					assert.ErrorIs(t, err, tc.errorType)
				}
				assert.Equal(t, model.Media{}, m)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.mediaID, m.ID)
				assert.Equal(t, tc.kind, m.Kind)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func TestMediaInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MediaInfraUnitSuite))
}
