package otquery

import (
	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/fontfallback/core/font/opentype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// AvgWidthSample is the text over which the average character width of a font
// is measured. Letters are weighted roughly by their frequency in English text,
// and spaces are included, as they contribute to the width of running text.
const AvgWidthSample = "aaabcdeeeefghiijklmnnoopqrrssttuvwxyz      "

// --- Font Information -------------------------------------------------

// FontMetrics retrieves selected metrics of a font, in design units.
//
// Vertical metrics are taken from the font's hhea table. The average width
// is measured over AvgWidthSample; if the font lacks a glyph for one of the
// sample's characters, the average width is flagged as unavailable, but the
// other metrics are still returned.
func FontMetrics(otf *sfnt.Font) (opentype.FontMetricsInfo, error) {
	metrics := opentype.FontMetricsInfo{}
	if otf == nil {
		return metrics, core.Error(core.EINVALID, "cannot measure metrics of null font")
	}
	var b sfnt.Buffer
	metrics.UnitsPerEm = otf.UnitsPerEm()
	ppem := designUnits(otf)
	m, err := otf.Metrics(&b, ppem, xfont.HintingNone)
	if err != nil {
		return metrics, core.WrapError(err, core.EINVALID, "cannot read vertical metrics of font")
	}
	metrics.Ascent = sfnt.Units(m.Ascent)
	metrics.Descent = -sfnt.Units(m.Descent) // x/image reports descent as a positive distance
	metrics.LineGap = sfnt.Units(m.Height - m.Ascent - m.Descent)
	if metrics.LineGap < 0 {
		metrics.LineGap = 0
	}
	tracer().Debugf("vertical metrics: ascent=%d, descent=%d, line-gap=%d",
		metrics.Ascent, metrics.Descent, metrics.LineGap)
	avg, maxAdvance, ok := averageWidth(otf, &b, AvgWidthSample)
	metrics.AvgWidth, metrics.MaxAdvance, metrics.HasAvgWidth = avg, maxAdvance, ok
	if !ok {
		tracer().Infof("font lacks glyphs for width sample, average width unavailable")
	}
	return metrics, nil
}

// AverageWidth returns the average advance width over the characters of
// sample, in design units. If a character of sample has no glyph in the
// font, ok is false.
func AverageWidth(otf *sfnt.Font, sample string) (avg float64, ok bool) {
	var b sfnt.Buffer
	avg, _, ok = averageWidth(otf, &b, sample)
	return
}

func averageWidth(otf *sfnt.Font, b *sfnt.Buffer, sample string) (float64, sfnt.Units, bool) {
	ppem := designUnits(otf)
	var total, maxAdvance sfnt.Units
	count := 0
	for _, r := range sample {
		gid, err := otf.GlyphIndex(b, r)
		if err != nil || gid == 0 { // glyph 0 is '.notdef'
			tracer().Debugf("no glyph for %q", r)
			return 0, 0, false
		}
		adv, err := otf.GlyphAdvance(b, gid, ppem, xfont.HintingNone)
		if err != nil {
			return 0, 0, false
		}
		a := sfnt.Units(adv)
		total += a
		if a > maxAdvance {
			maxAdvance = a
		}
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	return float64(total) / float64(count), maxAdvance, true
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *sfnt.Font, codepoint rune) sfnt.GlyphIndex {
	var b sfnt.Buffer
	gid, err := otf.GlyphIndex(&b, codepoint)
	if err != nil {
		return 0
	}
	return gid
}

// GlyphMetrics retrieves metrics for a given glyph, in design units.
// The bounding box uses a Y axis pointing up.
func GlyphMetrics(otf *sfnt.Font, gid sfnt.GlyphIndex) (opentype.GlyphMetricsInfo, error) {
	metrics := opentype.GlyphMetricsInfo{}
	var b sfnt.Buffer
	bounds, adv, err := otf.GlyphBounds(&b, gid, designUnits(otf), xfont.HintingNone)
	if err != nil {
		return metrics, core.WrapError(err, core.EMISSING, "no metrics for glyph %d", gid)
	}
	metrics.Advance = sfnt.Units(adv)
	metrics.BBox = opentype.BoundingBox{
		MinX: sfnt.Units(bounds.Min.X),
		MinY: -sfnt.Units(bounds.Max.Y),
		MaxX: sfnt.Units(bounds.Max.X),
		MaxY: -sfnt.Units(bounds.Min.Y),
	}
	return metrics, nil
}

// designUnits is a ppem value which lets package sfnt return metrics as
// fixed.Int26_6 values numerically equal to design units.
func designUnits(otf *sfnt.Font) fixed.Int26_6 {
	return fixed.Int26_6(otf.UnitsPerEm())
}
