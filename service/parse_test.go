package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"1000000", 1_000_000},
		{" 150000 ", 150_000},
		{"10,00,000", 1_000_000},
		{"1_500", 1500},
		{"12.5", 12.5},
		{"abc", 0},
		{"-500", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e400", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAmount(tt.in), "input %q", tt.in)
	}
}

func TestParseAmountOr(t *testing.T) {
	assert.Equal(t, 25.0, ParseAmountOr("", 25))
	assert.Equal(t, 30.0, ParseAmountOr("30", 25))
	assert.Equal(t, 0.0, ParseAmountOr("warm", 25))
}
