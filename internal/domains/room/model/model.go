package model

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldFloor       = "floor"
	FieldIsBooked    = "is_booked"
	FieldIsAvailable = "isavailable"
)

type Room struct {
	ID          int64  `db:"id"`
	RoomNumber  string `db:"room_number"`
	Floor       int    `db:"floor"`
	IsBooked    bool   `db:"is_booked"`
	IsAvailable bool   `db:"isavailable"`
}
