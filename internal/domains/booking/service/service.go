package service

import (
	"context"
	"fmt"
	"inn/config"
	"inn/infras/kafka"
	"inn/infras/otel"
	"inn/internal/domains/booking/allocation"
	"inn/internal/domains/booking/model/dto"
	"inn/internal/domains/booking/repository"
	roomRepository "inn/internal/domains/room/repository"
	roomService "inn/internal/domains/room/service"
	"inn/shared"
	"inn/shared/cache"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/failure"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	minRoomsPerBooking = 1
	maxRoomsPerBooking = 5

	eventBookingCreated    = "booking.created"
	eventBookingReset      = "booking.reset"
	eventBookingRandomized = "booking.randomized"
)

type Booking interface {
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	FindAndBookOptimalRooms(ctx context.Context, req dto.BookRoomsRequest) (dto.BookOptimalRoomsResponse, error)
	ResetAllBookings(ctx context.Context) (dto.ResetBookingsResponse, error)
	CreateRandomBookings(ctx context.Context) (dto.RandomBookingsResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepository.Room,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafkaClient,
		otel:     otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if params.SortBy == "" {
		params.SortBy = constant.DefaultValueSortBy
	}

	if params.SortDir == "" {
		params.SortDir = gDto.SortDirDesc
	}

	filter := gDto.FilterGroup{}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// FindAndBookOptimalRooms books the contiguous block of available rooms with
// the lowest walking time for the requested group size. The request is
// rejected before any store access when the size is out of range, and no
// write happens when too few rooms are free.
func (s *serviceImpl) FindAndBookOptimalRooms(ctx context.Context, req dto.BookRoomsRequest) (res dto.BookOptimalRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindAndBookOptimalRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.NumberOfRooms < minRoomsPerBooking || req.NumberOfRooms > maxRoomsPerBooking {
		return res, failure.BadRequestFromString(fmt.Sprintf("number of rooms must be between %d and %d", minRoomsPerBooking, maxRoomsPerBooking))
	}

	available, err := s.roomRepo.GetAvailable(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get available rooms")

		return res, fmt.Errorf("failed to get available rooms: %w", err)
	}

	if len(available) < req.NumberOfRooms {
		return res, failure.InsufficientCapacity(len(available))
	}

	selected, err := allocation.SelectRooms(available, req.NumberOfRooms)
	if err != nil {
		log.Error().Err(err).Msg("failed to select rooms")

		return res, fmt.Errorf("failed to select rooms: %w", err)
	}

	roomIDs := make([]int64, len(selected))
	for i, room := range selected {
		roomIDs[i] = room.ID
	}

	if _, err = s.repo.BookRooms(ctx, roomIDs); err != nil {
		if errors.Is(err, repository.ErrRoomUnavailable) {
			return res, failure.Conflict(err.Error())
		}

		log.Error().Err(err).Msg("failed to book rooms")

		return res, fmt.Errorf("failed to book rooms: %w", err)
	}

	travelTime, err := allocation.TravelTime(selected)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute travel time")

		return res, fmt.Errorf("failed to compute travel time: %w", err)
	}

	res.FromModels(selected, travelTime)

	s.afterMutation(ctx, eventBookingCreated, res)

	return res, nil
}

// ResetAllBookings releases every room and deletes every booking.
func (s *serviceImpl) ResetAllBookings(ctx context.Context) (res dto.ResetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetAllBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomsReset, bookingsDeleted, err := s.repo.ResetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to reset bookings")

		return res, fmt.Errorf("failed to reset bookings: %w", err)
	}

	res.RoomsReset = roomsReset
	res.BookingsDeleted = bookingsDeleted

	s.afterMutation(ctx, eventBookingReset, res)

	return res, nil
}

// CreateRandomBookings wipes the current state and books a uniformly random
// subset of rooms. The draw is over [0, n-1], so a fully booked hotel never
// comes out of it.
func (s *serviceImpl) CreateRandomBookings(ctx context.Context) (res dto.RandomBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRandomBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, _, err = s.repo.ResetAll(ctx); err != nil {
		log.Error().Err(err).Msg("failed to reset bookings")

		return res, fmt.Errorf("failed to reset bookings: %w", err)
	}

	rooms, err := s.roomRepo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	if len(rooms) == 0 {
		return res, nil
	}

	count := rand.IntN(len(rooms))

	rand.Shuffle(len(rooms), func(i, j int) {
		rooms[i], rooms[j] = rooms[j], rooms[i]
	})

	roomIDs := make([]int64, count)
	for i := 0; i < count; i++ {
		roomIDs[i] = rooms[i].ID
	}

	if _, err = s.repo.BookRooms(ctx, roomIDs); err != nil {
		log.Error().Err(err).Msg("failed to book random rooms")

		return res, fmt.Errorf("failed to book random rooms: %w", err)
	}

	res.BookedRooms = count

	s.afterMutation(ctx, eventBookingRandomized, res)

	return res, nil
}

// afterMutation invalidates the booking and room caches and publishes the
// domain event, off the request path.
func (s *serviceImpl) afterMutation(ctx context.Context, event string, payload any) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, roomService.CacheKeyRooms)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic, kafka.Message{Key: event, Value: payload}); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}
