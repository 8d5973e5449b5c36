package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 500, want: 500},
		{in: 1.234, want: 1.23},
		{in: 1.235, want: 1.24},
		{in: -1.235, want: -1.24},
		{in: 333.3333333, want: 333.33},
		{in: 0, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp25,000,000.00", Rupiah(25_000_000))
	assert.Equal(t, "Rp0.00", Rupiah(0))
	assert.Equal(t, "Rp1,234.57", Rupiah(1234.567))
	assert.Equal(t, "-Rp9,000,000.00", Rupiah(-9_000_000))
}

func TestPercentAndUnits(t *testing.T) {
	assert.Equal(t, "40.0%", Percent(40))
	assert.Equal(t, "500.00", Units(500))
	assert.Equal(t, "12,500.50", Units(12500.5))
}
