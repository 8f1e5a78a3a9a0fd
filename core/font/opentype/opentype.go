/*
Package opentype holds metric information of OpenType fonts.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package opentype

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// --- Font metrics ----------------------------------------------------------

// FontMetricsInfo contains selected metric information for a font.
// All values are in the font's design units.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender; descent is negative below the baseline
	LineGap         sfnt.Units // typographic line gap
	MaxAdvance      sfnt.Units // maximum advance width of the sample glyphs
	// AvgWidth is the average advance width over a weighted sample of
	// lowercase Latin letters and spaces. It is fractional and only valid
	// if HasAvgWidth is set.
	AvgWidth    float64
	HasAvgWidth bool
}

// Valid is a predicate: may the metrics be used for computations?
func (m FontMetricsInfo) Valid() bool {
	return m.UnitsPerEm > 0 && (!m.HasAvgWidth || m.AvgWidth >= 0)
}

func (m FontMetricsInfo) String() string {
	avg := "n/a"
	if m.HasAvgWidth {
		avg = fmt.Sprintf("%.4f", m.AvgWidth)
	}
	return fmt.Sprintf("metrics{upem=%d, ascent=%d, descent=%d, linegap=%d, avg-width=%s}",
		m.UnitsPerEm, m.Ascent, m.Descent, m.LineGap, avg)
}

// GlyphMetricsInfo contains the horizontal metric information for a glyph.
type GlyphMetricsInfo struct {
	Advance sfnt.Units  // advance width
	BBox    BoundingBox // bounding box
}

// BoundingBox describes the bounding box of a glyph.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// Empty is a predicate: has this box a zero area?
func (bbox BoundingBox) Empty() bool {
	return bbox.MaxX-bbox.MinX == 0 || bbox.MaxY-bbox.MinY == 0
}

// Dx is the horizontal extent of this box.
func (bbox BoundingBox) Dx() sfnt.Units {
	return bbox.MaxX - bbox.MinX
}

// Dy is the vertical extent of this box.
func (bbox BoundingBox) Dy() sfnt.Units {
	return bbox.MaxY - bbox.MinY
}
