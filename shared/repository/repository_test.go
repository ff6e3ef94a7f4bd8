package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inn/infras/otel/mocks"
	"inn/infras/postgres"
	"inn/shared/dto"
	"inn/shared/repository"
)

type widget struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func newWidgetRepository(t *testing.T) (sqlmock.Sqlmock, repository.Repository[widget]) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return mock, repository.NewRepository[widget]("widget", "widgets", "id", conn, mocks.NewOtel())
}

func TestGetAll(t *testing.T) {
	t.Run("orders by a known column", func(t *testing.T) {
		mock, repo := newWidgetRepository(t)

		mock.ExpectPrepare(`SELECT id, name FROM widgets ORDER BY name DESC LIMIT \? OFFSET \?`).
			ExpectQuery().
			WithArgs(int64(10), int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow(int64(1), "alpha").
				AddRow(int64(2), "beta"))

		params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "name", SortDir: dto.SortDirDesc}

		widgets, err := repo.GetAll(context.Background(), params, dto.FilterGroup{})

		require.NoError(t, err)
		require.Len(t, widgets, 2)
		assert.Equal(t, "alpha", widgets[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("drops ordering when the sort column is not on the entity", func(t *testing.T) {
		mock, repo := newWidgetRepository(t)

		// The anchored expectation leaves no room for an ORDER BY clause,
		// so a sort key not on the column list must not reach the query.
		mock.ExpectPrepare(`^SELECT id, name FROM widgets LIMIT \? OFFSET \?$`).
			ExpectQuery().
			WithArgs(int64(10), int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow(int64(1), "alpha"))

		params := dto.QueryParams{
			Page:    1,
			Limit:   10,
			SortBy:  "name; DROP TABLE widgets",
			SortDir: dto.SortDirDesc,
		}

		widgets, err := repo.GetAll(context.Background(), params, dto.FilterGroup{})

		require.NoError(t, err)
		require.Len(t, widgets, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCount(t *testing.T) {
	mock, repo := newWidgetRepository(t)

	mock.ExpectPrepare(`^SELECT COUNT\(id\) FROM widgets$`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
