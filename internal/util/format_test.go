package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHM(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{name: "zero", seconds: 0, expected: ""},
		{name: "under a minute", seconds: 59, expected: ""},
		{name: "minutes only", seconds: 20 * 60, expected: "20 minutes"},
		{name: "hours only", seconds: 2 * 3600, expected: "2 hours"},
		{name: "hours and minutes", seconds: 3*3600 + 20*60, expected: "3 hours 20 minutes"},
		{name: "minute boundary", seconds: 7*3600 + 5*60, expected: "7 hours 5 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatHM(tt.seconds))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0.00", FormatHours(0))
	assert.Equal(t, "1.00", FormatHours(3600))
	assert.Equal(t, "1.50", FormatHours(5400))
	assert.Equal(t, "0.25", FormatHours(900))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		expected string
	}{
		{name: "zero", amount: 0, currency: "Eur", expected: "0 Eur"},
		{name: "hundreds", amount: 170, currency: "Eur", expected: "170 Eur"},
		{name: "thousands", amount: 1360, currency: "Eur", expected: "1,360 Eur"},
		{name: "millions rounded", amount: 1234567.6, currency: "Eur", expected: "1,234,568 Eur"},
		{name: "negative", amount: -2500, currency: "Eur", expected: "-2,500 Eur"},
		{name: "no currency", amount: 42000, currency: "", expected: "42,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(tt.amount, tt.currency))
		})
	}
}
