package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inn/infras/otel/mocks"
	"inn/infras/postgres"
	"inn/internal/domains/booking/repository"
)

func newBookingRepository(t *testing.T) (sqlmock.Sqlmock, repository.Booking) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return mock, repository.New(conn, mocks.NewOtel())
}

func TestBookRooms(t *testing.T) {
	t.Run("claims each room and records one booking per room", func(t *testing.T) {
		mock, repo := newBookingRepository(t)

		bookedAt := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

		mock.ExpectBegin()
		for _, id := range []int64{1, 2} {
			mock.ExpectExec(`UPDATE rooms SET is_booked = TRUE WHERE id = \$1 AND is_booked = FALSE`).
				WithArgs(id).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectQuery(`INSERT INTO bookings \(room_id\) VALUES \(\$1\) RETURNING id, room_id, booking_time, username`).
				WithArgs(id).
				WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "booking_time", "username"}).
					AddRow(id+10, id, bookedAt, nil))
		}
		mock.ExpectCommit()

		bookings, err := repo.BookRooms(context.Background(), []int64{1, 2})

		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, int64(11), bookings[0].ID)
		assert.Equal(t, int64(1), bookings[0].RoomID)
		assert.Equal(t, int64(2), bookings[1].RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a room was booked concurrently", func(t *testing.T) {
		mock, repo := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE rooms SET is_booked = TRUE WHERE id = \$1 AND is_booked = FALSE`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO bookings \(room_id\) VALUES \(\$1\)`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "booking_time", "username"}).
				AddRow(int64(11), int64(1), time.Now(), nil))
		mock.ExpectExec(`UPDATE rooms SET is_booked = TRUE WHERE id = \$1 AND is_booked = FALSE`).
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		bookings, err := repo.BookRooms(context.Background(), []int64{1, 2})

		assert.Nil(t, bookings)
		assert.True(t, errors.Is(err, repository.ErrRoomUnavailable))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does not touch the database for an empty id list", func(t *testing.T) {
		mock, repo := newBookingRepository(t)

		bookings, err := repo.BookRooms(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, bookings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResetAll(t *testing.T) {
	t.Run("reports the total room count, booked or not", func(t *testing.T) {
		mock, repo := newBookingRepository(t)

		// 25 rooms of which only 3 were booked. The release update has no
		// WHERE clause, so every room counts toward roomsReset.
		mock.ExpectBegin()
		mock.ExpectExec(`^UPDATE rooms SET is_booked = FALSE$`).
			WillReturnResult(sqlmock.NewResult(0, 25))
		mock.ExpectExec(`^DELETE FROM bookings$`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		roomsReset, bookingsDeleted, err := repo.ResetAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(25), roomsReset)
		assert.Equal(t, int64(3), bookingsDeleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when deleting bookings fails", func(t *testing.T) {
		mock, repo := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(`^UPDATE rooms SET is_booked = FALSE$`).
			WillReturnResult(sqlmock.NewResult(0, 25))
		mock.ExpectExec(`^DELETE FROM bookings$`).
			WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		_, _, err := repo.ResetAll(context.Background())

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
