package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToInt32Clamped(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int32
	}{
		{"pool size", 10, 10},
		{"zero", 0, 0},
		{"overflow", math.MaxInt32 + 1000, math.MaxInt32},
		{"underflow", math.MinInt32 - 1000, math.MinInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntToInt32Clamped(tt.in))
		})
	}
}

func TestIntToUint32Clamped(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want uint32
	}{
		{"breaker threshold", 5, 5},
		{"negative", -3, 0},
		{"overflow", math.MaxInt, math.MaxUint32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntToUint32Clamped(tt.in))
		})
	}
}
