package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestPriceMetrics_Label(t *testing.T) {
	metrics := &PriceMetrics{
		FirstQuartile: floatPtr(500),
		Median:        floatPtr(800),
		ThirdQuartile: floatPtr(1200),
	}

	tests := []struct {
		name  string
		price float64
		want  DealLabel
	}{
		{"well under first quartile", 300, DealGreat},
		{"exactly first quartile", 500, DealGreat},
		{"between Q1 and median", 700, DealGood},
		{"exactly median", 800, DealGood},
		{"between median and Q3", 1000, DealAverage},
		{"exactly third quartile", 1200, DealAverage},
		{"above third quartile", 1500, DealAboveAverage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metrics.Label(tt.price))
		})
	}
}

func TestPriceMetrics_Label_NoData(t *testing.T) {
	t.Run("nil receiver", func(t *testing.T) {
		var metrics *PriceMetrics
		assert.Equal(t, DealUnknown, metrics.Label(800))
	})

	t.Run("empty thresholds", func(t *testing.T) {
		assert.Equal(t, DealUnknown, (&PriceMetrics{}).Label(800))
	})

	t.Run("partial thresholds", func(t *testing.T) {
		metrics := &PriceMetrics{Median: floatPtr(800)}

		assert.Equal(t, DealGood, metrics.Label(700))
		// Above median with no third quartile: no basis to call it above average.
		assert.Equal(t, DealUnknown, metrics.Label(900))
	})
}
