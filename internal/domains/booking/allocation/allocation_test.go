package allocation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inn/internal/domains/booking/allocation"
	roomModel "inn/internal/domains/room/model"
)

func room(id int64, number string, floor int) roomModel.Room {
	return roomModel.Room{
		ID:          id,
		RoomNumber:  number,
		Floor:       floor,
		IsAvailable: true,
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name       string
		roomNumber string
		want       int
		wantErr    bool
	}{
		{name: "three digit number", roomNumber: "101", want: 1},
		{name: "four digit number", roomNumber: "1203", want: 3},
		{name: "two digit number", roomNumber: "07", want: 7},
		{name: "double digit position", roomNumber: "110", want: 10},
		{name: "too short", roomNumber: "7", wantErr: true},
		{name: "empty", roomNumber: "", wantErr: true},
		{name: "non-numeric suffix", roomNumber: "1A", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := allocation.Position(tt.roomNumber)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTravelTime(t *testing.T) {
	tests := []struct {
		name  string
		rooms []roomModel.Room
		want  int
	}{
		{
			name:  "empty sequence",
			rooms: nil,
			want:  0,
		},
		{
			name:  "single room",
			rooms: []roomModel.Room{room(1, "101", 1)},
			want:  0,
		},
		{
			name: "same floor two apart",
			rooms: []roomModel.Room{
				room(1, "101", 1),
				room(2, "103", 1),
			},
			want: 2,
		},
		{
			name: "same floor interior rooms are free",
			rooms: []roomModel.Room{
				room(1, "101", 1),
				room(2, "102", 1),
				room(3, "105", 1),
			},
			want: 4,
		},
		{
			name: "adjacent floors same position",
			rooms: []roomModel.Room{
				room(1, "101", 1),
				room(2, "201", 2),
			},
			want: 4,
		},
		{
			name: "different floors sums both offsets",
			rooms: []roomModel.Room{
				room(1, "103", 1),
				room(2, "205", 2),
			},
			want: 10,
		},
		{
			name: "two floors apart",
			rooms: []roomModel.Room{
				room(1, "101", 1),
				room(2, "301", 3),
			},
			want: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := allocation.TravelTime(tt.rooms)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTravelTimeBadRoomNumber(t *testing.T) {
	rooms := []roomModel.Room{
		room(1, "1", 1),
		room(2, "102", 1),
	}

	_, err := allocation.TravelTime(rooms)

	assert.Error(t, err)
}

func TestSelectRooms(t *testing.T) {
	// Sorted by (floor, room number), the order the store returns.
	mixedFloors := []roomModel.Room{
		room(1, "101", 1),
		room(2, "102", 1),
		room(3, "103", 1),
		room(4, "201", 2),
		room(5, "202", 2),
	}

	tests := []struct {
		name      string
		available []roomModel.Room
		count     int
		wantIDs   []int64
	}{
		{
			name:      "first same-floor window wins",
			available: mixedFloors,
			count:     2,
			wantIDs:   []int64{1, 2},
		},
		{
			name:      "same-floor triple",
			available: mixedFloors,
			count:     3,
			wantIDs:   []int64{1, 2, 3},
		},
		{
			name:      "no same-floor window falls back to cheapest",
			available: mixedFloors,
			count:     4,
			wantIDs:   []int64{1, 2, 3, 4},
		},
		{
			name:      "whole sequence",
			available: mixedFloors,
			count:     5,
			wantIDs:   []int64{1, 2, 3, 4, 5},
		},
		{
			name:      "not enough rooms yields empty",
			available: mixedFloors,
			count:     6,
			wantIDs:   nil,
		},
		{
			name:      "no rooms at all",
			available: nil,
			count:     1,
			wantIDs:   nil,
		},
		{
			name: "earliest same-floor window beats cheaper one further right",
			available: []roomModel.Room{
				room(1, "105", 1),
				room(2, "110", 1),
				room(3, "201", 2),
				room(4, "202", 2),
			},
			count:   2,
			wantIDs: []int64{1, 2},
		},
		{
			name: "cost tie broken by earliest start",
			available: []roomModel.Room{
				room(1, "101", 1),
				room(2, "201", 2),
				room(3, "301", 3),
			},
			count:   2,
			wantIDs: []int64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := allocation.SelectRooms(tt.available, tt.count)

			require.NoError(t, err)

			gotIDs := make([]int64, 0, len(got))
			for _, r := range got {
				gotIDs = append(gotIDs, r.ID)
			}

			if tt.wantIDs == nil {
				assert.Empty(t, got)

				return
			}

			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestSelectRoomsReturnsContiguousWindow(t *testing.T) {
	available := []roomModel.Room{
		room(1, "101", 1),
		room(2, "103", 1),
		room(3, "201", 2),
		room(4, "203", 2),
		room(5, "301", 3),
		room(6, "305", 3),
	}

	for count := 1; count <= len(available); count++ {
		got, err := allocation.SelectRooms(available, count)

		require.NoError(t, err)
		require.Len(t, got, count)

		start := -1
		for i, r := range available {
			if r.ID == got[0].ID {
				start = i

				break
			}
		}

		require.GreaterOrEqual(t, start, 0)

		for i, r := range got {
			assert.Equal(t, available[start+i].ID, r.ID)
		}
	}
}

func TestSelectRoomsCrossFloorCostUsesOffsetSum(t *testing.T) {
	// Window {103, 201}: 2*1 + 3 + 1 = 6. Window {201, 210}: same floor,
	// considered first and wins outright.
	available := []roomModel.Room{
		room(1, "103", 1),
		room(2, "201", 2),
		room(3, "210", 2),
	}

	got, err := allocation.SelectRooms(available, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{2, 3}, []int64{got[0].ID, got[1].ID})
}
