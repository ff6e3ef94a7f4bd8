// Package allocation holds the pure room-selection logic: picking a
// contiguous block of available rooms for a group and costing the walk
// between them. It never touches the store; callers pass in the candidate
// rooms sorted ascending by (floor, room number) and that ordering is what
// makes the window scan correct.
package allocation

import (
	"fmt"
	roomModel "inn/internal/domains/room/model"
	"math"
	"strconv"
)

const (
	// minutes of walking per room of horizontal distance
	horizontalMinutesPerRoom = 1
	// minutes of walking (stairs/lift) per floor of vertical distance
	verticalMinutesPerFloor = 2

	positionSuffixLength = 2
)

// Position extracts a room's horizontal position on its floor from the
// trailing two characters of its room number: "101" -> 1, "1203" -> 3.
// Room numbers too short to carry a position suffix are rejected instead of
// guessed at.
func Position(roomNumber string) (int, error) {
	if len(roomNumber) < positionSuffixLength {
		return 0, fmt.Errorf("room number %q is too short to carry a position suffix", roomNumber)
	}

	position, err := strconv.Atoi(roomNumber[len(roomNumber)-positionSuffixLength:])
	if err != nil {
		return 0, fmt.Errorf("room number %q has a non-numeric position suffix: %w", roomNumber, err)
	}

	return position, nil
}

// TravelTime is the walking time in minutes between the first and the last
// room of the sequence. Interior rooms are free: guests meet at the two
// endpoints. On a single floor the cost is the horizontal distance. Across
// floors each endpoint walks back to the stairwell column, so the two
// horizontal offsets add instead of cancelling.
func TravelTime(rooms []roomModel.Room) (int, error) {
	if len(rooms) <= 1 {
		return 0, nil
	}

	first := rooms[0]
	last := rooms[len(rooms)-1]

	firstPosition, err := Position(first.RoomNumber)
	if err != nil {
		return 0, err
	}

	lastPosition, err := Position(last.RoomNumber)
	if err != nil {
		return 0, err
	}

	if first.Floor == last.Floor {
		return abs(lastPosition-firstPosition) * horizontalMinutesPerRoom, nil
	}

	vertical := abs(last.Floor-first.Floor) * verticalMinutesPerFloor

	return vertical + firstPosition + lastPosition, nil
}

// SelectRooms picks count rooms out of the available sequence, which must be
// sorted ascending by (floor, room number). Only contiguous windows of the
// sequence are considered. The first window that sits entirely on one floor
// wins, even when a cheaper single-floor window exists further right;
// without any single-floor window the minimum-travel-time window wins, with
// ties broken by the earliest start index. Returns an empty sequence when
// fewer rooms are available than requested; callers are expected to have
// rejected that case already.
func SelectRooms(available []roomModel.Room, count int) ([]roomModel.Room, error) {
	if len(available) < count {
		return nil, nil
	}

	for start := 0; start+count <= len(available); start++ {
		candidate := available[start : start+count]
		if sameFloor(candidate) {
			return candidate, nil
		}
	}

	var best []roomModel.Room

	minTravelTime := math.MaxInt

	for start := 0; start+count <= len(available); start++ {
		candidate := available[start : start+count]

		travelTime, err := TravelTime(candidate)
		if err != nil {
			return nil, err
		}

		if travelTime < minTravelTime {
			minTravelTime = travelTime
			best = candidate
		}
	}

	return best, nil
}

func sameFloor(rooms []roomModel.Room) bool {
	for _, room := range rooms {
		if room.Floor != rooms[0].Floor {
			return false
		}
	}

	return true
}

func abs(value int) int {
	if value < 0 {
		return -value
	}

	return value
}
