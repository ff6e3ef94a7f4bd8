package dto

import (
	"inn/internal/domains/booking/model"
	roomModel "inn/internal/domains/room/model"
	roomDto "inn/internal/domains/room/model/dto"
	"inn/shared"
	"inn/shared/constant"
	"inn/shared/timezone"
)

type BookRoomsRequest struct {
	NumberOfRooms int `json:"number_of_rooms" validate:"required,min=1,max=5"`
}

type BookingResponse struct {
	ID          int64   `json:"id"`
	RoomID      int64   `json:"room_id"`
	BookingTime string  `json:"booking_time"`
	Username    *string `json:"username,omitempty"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.BookingTime = timezone.Format(model.BookingTime, constant.DateFormat)
	r.Username = model.Username
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BookOptimalRoomsResponse struct {
	Rooms           []roomDto.RoomResponse `json:"rooms"`
	TotalTravelTime int                    `json:"total_travel_time"`
}

func (r *BookOptimalRoomsResponse) FromModels(models []roomModel.Room, totalTravelTime int) {
	r.TotalTravelTime = totalTravelTime

	r.Rooms = make([]roomDto.RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type ResetBookingsResponse struct {
	RoomsReset      int64 `json:"rooms_reset"`
	BookingsDeleted int64 `json:"bookings_deleted"`
}

type RandomBookingsResponse struct {
	BookedRooms int `json:"booked_rooms"`
}
