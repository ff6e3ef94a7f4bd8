package dto

import (
	"inn/internal/domains/room/model"
)

type RoomResponse struct {
	ID          int64  `json:"id"`
	RoomNumber  string `json:"room_number"`
	Floor       int    `json:"floor"`
	IsBooked    bool   `json:"is_booked"`
	IsAvailable bool   `json:"is_available"`
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Floor = model.Floor
	r.IsBooked = model.IsBooked
	r.IsAvailable = model.IsAvailable
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.TotalData = len(models)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
