// percent implements a simple and straightforward type for percentage values,
// as used by CSS font descriptors such as size-adjust.
package percent

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Percent is a percentage value. 100% is Percent(100).
//
// Percentages may exceed 100 and may be negative; CSS metric overrides
// routinely do both.
type Percent float64

// FromRatio converts a ratio (1.0 = 100%) into a percentage.
func FromRatio(r float64) Percent {
	return Percent(r * 100)
}

// FromFloat creates a percentage from a percentage value. NaN and
// infinite values are clamped to 0.
func FromFloat(f float64) Percent {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Percent(0)
	}
	return Percent(f)
}

// FromString parses values such as "86.70%" or "12".
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Percent(0), fmt.Errorf("not a percentage: %q", s)
	}
	return FromFloat(f), nil
}

// Ratio returns p as a ratio (100% = 1.0).
func (p Percent) Ratio() float64 {
	return float64(p) / 100
}

// Abs returns the absolute value of p.
func (p Percent) Abs() Percent {
	return Percent(math.Abs(float64(p)))
}

// Fixed formats p with a fixed number of decimals, e.g. "86.70%".
func (p Percent) Fixed(decimals int) string {
	s := strconv.FormatFloat(float64(p), 'f', decimals, 64)
	if strings.Trim(s, "-0.") == "" { // no "-0.00%"
		s = strings.TrimPrefix(s, "-")
	}
	return s + "%"
}

// String formats p with two decimals, as CSS descriptors are written.
func (p Percent) String() string {
	return p.Fixed(2)
}
