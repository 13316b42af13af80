package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDurationInfo(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
	}{
		{"hours and minutes", 150, "2h 30m"},
		{"whole hours", 120, "2h"},
		{"minutes only", 45, "45m"},
		{"zero", 0, "0m"},
		{"long haul", 825, "13h 45m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDurationInfo(tt.minutes)
			assert.Equal(t, tt.minutes, d.TotalMinutes)
			assert.Equal(t, tt.want, d.Formatted)
		})
	}
}

func TestFlightOffer_OneWay(t *testing.T) {
	oneWay := FlightOffer{Destination: "NRT"}
	assert.True(t, oneWay.OneWay())

	roundTrip := FlightOffer{
		Destination: "NRT",
		ReturnTime:  time.Date(2026, 10, 22, 11, 0, 0, 0, time.UTC),
	}
	assert.False(t, roundTrip.OneWay())
}

func TestCabinResults_Destinations(t *testing.T) {
	results := CabinResults{
		CabinEconomy: {
			{Destination: "NRT"},
			{Destination: "LHR"},
		},
		CabinBusiness: {
			{Destination: "LHR"},
			{Destination: "SIN"},
		},
	}

	assert.Equal(t, []string{"NRT", "LHR", "SIN"}, results.Destinations())
}

func TestCabinResults_CarrierCodes(t *testing.T) {
	results := CabinResults{
		CabinEconomy: {
			{Destination: "NRT", Carriers: []string{"AC", "NH"}},
		},
		CabinBusiness: {
			{Destination: "NRT", Carriers: []string{"NH", "JL"}},
		},
	}

	assert.Equal(t, []string{"AC", "NH", "JL"}, results.CarrierCodes())
}
