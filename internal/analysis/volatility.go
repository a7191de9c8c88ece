package analysis

import (
	"fmt"
	"math"
)

// VolatilityThreshold is the intraday range, relative to the low, above which
// a day counts as volatile.
const VolatilityThreshold = 0.02

// IsVolatile reports whether (high-low)/low exceeds VolatilityThreshold.
// A ratio exactly equal to the threshold is regular.
func IsVolatile(high, low float64) (bool, error) {
	if !finite(high) || !finite(low) {
		return false, fmt.Errorf("%w: high=%v low=%v", ErrDegenerateQuote, high, low)
	}
	if low <= 0 {
		return false, fmt.Errorf("%w: low=%v", ErrDegenerateQuote, low)
	}
	return (high-low)/low > VolatilityThreshold, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
