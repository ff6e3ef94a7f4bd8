package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/internal/domains/booking/model"
	roomModel "inn/internal/domains/room/model"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/logger"
	gRepo "inn/shared/repository"

	"github.com/pkg/errors"
)

// ErrRoomUnavailable reports that a room targeted by BookRooms was already
// booked when the transaction reached it. The whole booking is rolled back.
var ErrRoomUnavailable = errors.New("room is no longer available")

const (
	queryClaimRoom = "UPDATE " + roomModel.TableName + " SET " + roomModel.FieldIsBooked + " = TRUE WHERE " + roomModel.FieldID + " = $1 AND " + roomModel.FieldIsBooked + " = FALSE"

	queryInsertBooking = "INSERT INTO " + model.TableName + " (" + model.FieldRoomID + ") VALUES ($1) RETURNING " + model.FieldID + ", " + model.FieldRoomID + ", " + model.FieldBookingTime + ", " + model.FieldUsername

	queryReleaseRooms = "UPDATE " + roomModel.TableName + " SET " + roomModel.FieldIsBooked + " = FALSE"

	queryDeleteBookings = "DELETE FROM " + model.TableName
)

type Booking interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	BookRooms(ctx context.Context, roomIDs []int64) ([]model.Booking, error)
	ResetAll(ctx context.Context) (roomsReset int64, bookingsDeleted int64, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// BookRooms claims every room in roomIDs and records one booking per room,
// atomically. A room that turns out to be already booked rolls the whole
// transaction back with ErrRoomUnavailable, so concurrent bookings of
// overlapping blocks never partially succeed.
func (repo *repositoryImpl) BookRooms(ctx context.Context, roomIDs []int64) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.BookRooms")
	defer scope.End()

	if len(roomIDs) == 0 {
		return []model.Booking{}, nil
	}

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	bookings := make([]model.Booking, 0, len(roomIDs))

	for _, roomID := range roomIDs {
		result, err := tx.ExecContext(ctx, queryClaimRoom, roomID)
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return nil, fmt.Errorf("failed to claim room %d: %w", roomID, err)
		}

		claimed, err := result.RowsAffected()
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return nil, fmt.Errorf("failed to claim room %d: %w", roomID, err)
		}

		if claimed == 0 {
			err = errors.Wrapf(ErrRoomUnavailable, "room %d", roomID)
			scope.TraceError(err)

			return nil, err
		}

		var booking model.Booking
		if err := tx.GetContext(ctx, &booking, queryInsertBooking, roomID); err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return nil, fmt.Errorf("failed to record booking for room %d: %w", roomID, err)
		}

		bookings = append(bookings, booking)
	}

	if err := tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	return bookings, nil
}

// ResetAll releases every room and deletes every booking in one transaction.
// The release update is unconditional, so roomsReset reports the total room
// count, not just the rooms that were booked.
func (repo *repositoryImpl) ResetAll(ctx context.Context) (int64, int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ResetAll")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, 0, fmt.Errorf("failed to begin reset transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	released, err := tx.ExecContext(ctx, queryReleaseRooms)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, 0, fmt.Errorf("failed to release rooms: %w", err)
	}

	roomsReset, err := released.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, 0, fmt.Errorf("failed to release rooms: %w", err)
	}

	deleted, err := tx.ExecContext(ctx, queryDeleteBookings)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, 0, fmt.Errorf("failed to delete bookings: %w", err)
	}

	bookingsDeleted, err := deleted.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, 0, fmt.Errorf("failed to delete bookings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, 0, fmt.Errorf("failed to commit reset transaction: %w", err)
	}

	return roomsReset, bookingsDeleted, nil
}
