package strategy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"5000", "5,000.00"},
		{"15500", "15,500.00"},
		{"999.9", "999.90"},
		{"1234567.891", "1,234,567.89"},
		{"-48000", "-48,000.00"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, formatAmount(d), "input %s", tt.in)
	}
}

func TestSignedFixed(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8.9", "+8.9"},
		{"-16.4", "-16.4"},
		{"0", "+0.0"},
		{"-22.04", "-22.0"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, signedFixed(d, 1), "input %s", tt.in)
	}
}
