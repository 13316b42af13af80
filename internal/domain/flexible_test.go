package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFlexibleRequest() FlexibleSearchRequest {
	return FlexibleSearchRequest{
		Origin:         "YVR",
		Month:          "2026-11",
		TripLengthDays: 7,
		Destinations:   []string{"NRT", "LHR"},
		Cabins:         []CabinClass{CabinBusiness},
		Adults:         1,
		Currency:       "CAD",
	}
}

func TestFlexibleSearchRequest_Validate(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		modify  func(r *FlexibleSearchRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			modify: func(r *FlexibleSearchRequest) {},
		},
		{
			name:    "bad month format",
			modify:  func(r *FlexibleSearchRequest) { r.Month = "November" },
			wantErr: "YYYY-MM",
		},
		{
			name:    "month entirely in the past",
			modify:  func(r *FlexibleSearchRequest) { r.Month = "2026-01" },
			wantErr: "no remaining departure dates",
		},
		{
			name:    "trip too short",
			modify:  func(r *FlexibleSearchRequest) { r.TripLengthDays = 0 },
			wantErr: "trip_length_days",
		},
		{
			name:    "trip too long",
			modify:  func(r *FlexibleSearchRequest) { r.TripLengthDays = 31 },
			wantErr: "trip_length_days",
		},
		{
			name:    "no destinations",
			modify:  func(r *FlexibleSearchRequest) { r.Destinations = nil },
			wantErr: "at least one destination",
		},
		{
			name: "too many destinations",
			modify: func(r *FlexibleSearchRequest) {
				r.Destinations = []string{"NRT", "LHR", "CDG", "AMS", "FRA", "SIN", "HKG", "ICN", "BKK", "SYD", "AKL"}
			},
			wantErr: "at most 10",
		},
		{
			name:    "bad destination code",
			modify:  func(r *FlexibleSearchRequest) { r.Destinations = []string{"tokyo"} },
			wantErr: "IATA code",
		},
		{
			name:    "no cabins",
			modify:  func(r *FlexibleSearchRequest) { r.Cabins = nil },
			wantErr: "cabin class",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validFlexibleRequest()
			tt.modify(&req)

			err := req.Validate(now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFlexibleSearchRequest_SampleDates(t *testing.T) {
	t.Run("future month yields all four samples", func(t *testing.T) {
		req := FlexibleSearchRequest{Month: "2026-11"}
		now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		dates := req.SampleDates(now)
		assert.Equal(t, []string{"2026-11-01", "2026-11-08", "2026-11-15", "2026-11-22"}, dates)
	})

	t.Run("current month drops past samples", func(t *testing.T) {
		req := FlexibleSearchRequest{Month: "2026-09"}
		now := time.Date(2026, 9, 10, 18, 30, 0, 0, time.UTC)

		dates := req.SampleDates(now)
		assert.Equal(t, []string{"2026-09-15", "2026-09-22"}, dates)
	})

	t.Run("past month yields nothing", func(t *testing.T) {
		req := FlexibleSearchRequest{Month: "2026-01"}
		now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		assert.Empty(t, req.SampleDates(now))
	})
}
