package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "₹0"},
		{150, "₹150"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{12500, "₹12,500"},
		{150000, "₹1,50,000"},
		{1234567, "₹12,34,567"},
		{10000000, "₹1,00,00,000"},
		{-2500, "-₹2,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatINR(tt.amount), "amount %d", tt.amount)
	}
}
