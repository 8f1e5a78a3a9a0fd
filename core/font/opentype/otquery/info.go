package otquery

import (
	"encoding/binary"

	"github.com/npillmayer/fontfallback/core/font"
	"golang.org/x/image/font/sfnt"
)

// FontType returns the font type, encoded in the font header, as a string.
func FontType(f *font.ScalableFont) string {
	if f == nil || len(f.Binary) < 4 {
		return "<empty>"
	}
	typ := binary.BigEndian.Uint32(f.Binary[:4])
	switch typ {
	case 0x4f54544f: // OTTO
		return "OpenType (outlines)"
	case 0x00010000: // TrueType
		return "TrueType"
	case 0x74727565: // true
		return "TrueType (Mac legacy)"
	case 0x74746366: // ttcf
		return "TrueType collection"
	}
	return "<unknown>"
}

// NameInfo returns a map with selected fields from OpenType table `name`.
// Will include (if available in the font) "family", "subfamily", "full",
// "version".
func NameInfo(f *font.ScalableFont) map[string]string {
	names := make(map[string]string)
	if f == nil || f.SFNT == nil {
		return names
	}
	var b sfnt.Buffer
	for key, id := range map[string]sfnt.NameID{
		"family":    sfnt.NameIDFamily,
		"subfamily": sfnt.NameIDSubfamily,
		"full":      sfnt.NameIDFull,
		"version":   sfnt.NameIDVersion,
	} {
		if s, err := f.SFNT.Name(&b, id); err == nil && s != "" {
			names[key] = s
		} else {
			tracer().Debugf("no %s name entry in font %s", key, f.Fontname)
		}
	}
	return names
}
