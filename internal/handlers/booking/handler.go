package booking

import (
	"inn/infras/otel"
	"inn/internal/domains/booking/model/dto"
	"inn/internal/domains/booking/service"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/validator"
	"inn/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Post("/", handler.BookRooms)
		routerGroup.Post("/reset", handler.ResetBookings)
		routerGroup.Post("/randomize", handler.RandomizeBookings)
	})
}

// GetBookings retrieves bookings with pagination, newest first by default.
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// BookRooms books the optimal contiguous block of rooms for the requested
// group size.
func (handler *Handler) BookRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookRooms")
	defer scope.End()

	var req dto.BookRoomsRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	booked, err := handler.service.FindAndBookOptimalRooms(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms booked successfully")

	response.WithJSON(w, http.StatusCreated, booked)
}

// ResetBookings releases every room and deletes every booking.
func (handler *Handler) ResetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetBookings")
	defer scope.End()

	res, err := handler.service.ResetAllBookings(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reset bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings reset successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// RandomizeBookings wipes the current bookings and books a random subset of
// rooms, for demo and test setups.
func (handler *Handler) RandomizeBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RandomizeBookings")
	defer scope.End()

	res, err := handler.service.CreateRandomBookings(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to randomize bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings randomized successfully")

	response.WithJSON(w, http.StatusCreated, res)
}
