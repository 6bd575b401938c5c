package dataprocessing

import "math"

// MinMaxScale rescales values to [0,1] with the column's own minimum and maximum.
//
// A degenerate column (no spread, a single value, or no finite values) scales
// to 0 everywhere. Non-finite inputs are ignored when finding the bounds and
// scale to 0.
func MinMaxScale(values []float64) []float64 {
	result := make([]float64, len(values))

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := hi - lo
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) || span == 0 || math.IsInf(span, 0) {
		return result
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		scaled := (v - lo) / span
		// guard against rounding just outside the unit interval
		result[i] = math.Max(0, math.Min(1, scaled))
	}
	return result
}
