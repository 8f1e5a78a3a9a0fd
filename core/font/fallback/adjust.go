package fallback

import (
	"fmt"
	"math"

	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/fontfallback/core/font/opentype"
)

// TargetMetrics are the measured metrics of a webfont which a fallback should
// approximate. All values are in the webfont's design units; Descent is
// negative for descenders below the baseline.
type TargetMetrics struct {
	Ascent     float64 `json:"ascent"`
	Descent    float64 `json:"descent"`
	LineGap    float64 `json:"line_gap"`
	UnitsPerEm float64 `json:"units_per_em"`
	AzAvgWidth float64 `json:"az_avg_width"` // 0 if unknown
}

// TargetFromInfo converts measured font metrics into target metrics.
// A font without an average width yields AzAvgWidth = 0, which disables
// width scaling.
func TargetFromInfo(info opentype.FontMetricsInfo) TargetMetrics {
	t := TargetMetrics{
		Ascent:     float64(info.Ascent),
		Descent:    float64(info.Descent),
		LineGap:    float64(info.LineGap),
		UnitsPerEm: float64(info.UnitsPerEm),
	}
	if info.HasAvgWidth {
		t.AzAvgWidth = info.AvgWidth
	}
	return t
}

// Validate checks the preconditions of Adjust: units per em must be positive,
// the average width must not be negative, and all values must be finite.
func (t TargetMetrics) Validate() error {
	for _, v := range [...]float64{t.Ascent, t.Descent, t.LineGap, t.UnitsPerEm, t.AzAvgWidth} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.Error(core.EINVALID, "font metrics contain non-finite values: %+v", t)
		}
	}
	if t.UnitsPerEm <= 0 {
		return core.Error(core.EINVALID, "font metrics have units-per-em of %g", t.UnitsPerEm)
	}
	if t.AzAvgWidth < 0 {
		return core.Error(core.EINVALID, "font metrics have negative average width %g", t.AzAvgWidth)
	}
	return nil
}

// FontAdjustment is an adjustment to be made to a fallback font to
// approximate the geometry of a webfont.
//
// SizeAdjust is a scale factor (1.0 = 100%). Ascent, Descent and LineGap are
// percentages of the adjusted em box, ready to be used as
// `ascent-override: <Ascent>%`. No rounding is applied.
//
// FontAdjustments are comparable and may be used as map keys, as long as
// they contain no NaN. Adjust never produces NaN from metrics which pass
// TargetMetrics.Validate. Clients which cannot guarantee this should use
// Key instead.
type FontAdjustment struct {
	Ascent     float64 `json:"ascent"`
	Descent    float64 `json:"descent"`
	LineGap    float64 `json:"line_gap"`
	SizeAdjust float64 `json:"size_adjust"`
}

// Equal compares two adjustments field by field with ordinary float equality.
func (a FontAdjustment) Equal(other FontAdjustment) bool {
	return a == other
}

// AdjustmentKey is a total-order identity for FontAdjustments: two
// adjustments have equal keys if and only if their fields are bit-identical.
type AdjustmentKey [4]uint64

// Key returns the bit patterns of a's fields, to be used for caching and
// de-duplication. Unlike Equal, it treats NaN as equal to itself and
// distinguishes +0 from -0.
func (a FontAdjustment) Key() AdjustmentKey {
	return AdjustmentKey{
		math.Float64bits(a.Ascent),
		math.Float64bits(a.Descent),
		math.Float64bits(a.LineGap),
		math.Float64bits(a.SizeAdjust),
	}
}

func (a FontAdjustment) String() string {
	return fmt.Sprintf("adjust{size=%.4f, ascent=%.4f%%, descent=%.4f%%, line-gap=%.4f%%}",
		a.SizeAdjust, a.Ascent, a.Descent, a.LineGap)
}

// Adjust computes the adjustment of fallback font fb which makes it match
// the metrics of a webfont.
//
// First the fallback is scaled such that its average character width, relative
// to its em box, equals the webfont's. Then the webfont's vertical metrics are
// expressed as percentages of the scaled em box of the fallback.
// If either average width is zero, no width scaling takes place.
//
// Adjust is a total function for target metrics which pass Validate.
func Adjust(target TargetMetrics, fb DefaultFallbackFont) FontAdjustment {
	sizeAdjust := 1.0
	if target.UnitsPerEm > 0 && fb.UnitsPerEm > 0 {
		targetRatio := target.AzAvgWidth / target.UnitsPerEm
		fallbackRatio := fb.AzAvgWidth / float64(fb.UnitsPerEm)
		if targetRatio > 0 && fallbackRatio > 0 {
			if r := targetRatio / fallbackRatio; !math.IsInf(r, 0) && !math.IsNaN(r) && r > 0 {
				sizeAdjust = r
			}
		}
	}
	adjustedEm := float64(fb.UnitsPerEm) * sizeAdjust
	tracer().Debugf("fallback %s: size-adjust=%.6f, adjusted em=%.4f", fb.Name, sizeAdjust, adjustedEm)
	return FontAdjustment{
		Ascent:     target.Ascent / adjustedEm * 100,
		Descent:    target.Descent / adjustedEm * 100,
		LineGap:    target.LineGap / adjustedEm * 100,
		SizeAdjust: sizeAdjust,
	}
}
