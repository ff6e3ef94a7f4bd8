package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/internal/domains/room/model"
	"inn/shared/constant"
	"inn/shared/logger"
)

// Ordering by (floor, room_number) is load-bearing: the allocation engine
// scans contiguous windows of exactly this sequence.
const (
	queryGetAll = "SELECT id, room_number, floor, is_booked, isavailable FROM rooms ORDER BY floor, room_number"

	queryGetAvailable = "SELECT id, room_number, floor, is_booked, isavailable FROM rooms WHERE is_booked = FALSE ORDER BY floor, room_number"
)

type Room interface {
	GetAll(ctx context.Context) ([]model.Room, error)
	GetAvailable(ctx context.Context) ([]model.Room, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// GetAll returns every room ordered by floor, then room number.
func (repo *repositoryImpl) GetAll(ctx context.Context) ([]model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetAll")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryGetAll)

	var rooms []model.Room

	if err := repo.db.Read.SelectContext(ctx, &rooms, queryGetAll); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	return rooms, nil
}

// GetAvailable returns every unbooked room ordered by floor, then room number.
func (repo *repositoryImpl) GetAvailable(ctx context.Context) ([]model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetAvailable")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryGetAvailable)

	var rooms []model.Room

	if err := repo.db.Read.SelectContext(ctx, &rooms, queryGetAvailable); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get available rooms: %w", err)
	}

	return rooms, nil
}
