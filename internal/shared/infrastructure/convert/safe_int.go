// Package convert narrows integers for libraries that want fixed-width types.
package convert

import "math"

// IntToInt32Clamped converts v to int32, clamping out-of-range values to the
// int32 bounds. Used for pool sizes read from configuration.
func IntToInt32Clamped(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// IntToUint32Clamped converts v to uint32. Negative values become 0 and
// values above the uint32 range become math.MaxUint32.
func IntToUint32Clamped(v int) uint32 {
	if v < 0 {
		return 0
	}
	if uint64(v) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
