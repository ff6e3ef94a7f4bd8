package shared_test

import (
	"inn/shared"
	"inn/shared/dto"
	"strings"
	"testing"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "exact division",
			total:    20,
			limit:    10,
			expected: 2,
		},
		{
			name:     "rounds up",
			total:    21,
			limit:    10,
			expected: 3,
		},
		{
			name:     "zero total",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit",
			total:    20,
			limit:    0,
			expected: 1,
		},
		{
			name:     "fewer than one page",
			total:    3,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	got := shared.BuildCacheKey("booking", "gets", "all")

	if got != "booking:gets:all" {
		t.Errorf("expected 'booking:gets:all', got %s", got)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{
		Page:    2,
		Limit:   10,
		SortBy:  "booking_time",
		SortDir: "DESC",
	}

	got := shared.BuildCacheKeyWithQuery("booking:gets", params, dto.FilterGroup{})

	if !strings.HasPrefix(got, "booking:gets:") {
		t.Errorf("expected key to start with prefix, got %s", got)
	}

	if !strings.Contains(got, "p2") || !strings.Contains(got, "l10") {
		t.Errorf("expected key to encode pagination, got %s", got)
	}

	other := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 1, Limit: 10}, dto.FilterGroup{})
	if got == other {
		t.Error("expected distinct queries to produce distinct keys")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID(42, "id", "bookings")

	if len(group.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(group.Filters))
	}

	filter, ok := group.Filters[0].(dto.Filter)
	if !ok {
		t.Fatalf("expected dto.Filter, got %T", group.Filters[0])
	}

	if filter.Field != "id" || filter.Table != "bookings" {
		t.Errorf("unexpected filter %+v", filter)
	}

	if filter.Value != int64(42) {
		t.Errorf("expected value 42, got %v", filter.Value)
	}
}
