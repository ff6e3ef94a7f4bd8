package model

import (
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldBookingTime = "booking_time"
	FieldUsername    = "username"
)

type Booking struct {
	ID          int64     `db:"id"`
	RoomID      int64     `db:"room_id"`
	BookingTime time.Time `db:"booking_time"`
	Username    *string   `db:"username"`
}
