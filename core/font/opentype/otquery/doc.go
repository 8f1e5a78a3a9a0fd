/*
Package otquery queries metrics and other information from OpenType fonts.

Package otquery provides functions to query metric information from a font.
It is the measuring side of fallback generation: webfonts are measured here,
and the resulting metrics are handed to package fallback, which derives
metric overrides for a local system font.

Fonts are parsed with golang.org/x/image/font/sfnt. All metrics are reported
in design units, i.e. relative to the font's units-per-em.

No font collections nor variable fonts are supported yet.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontfallback.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontfallback.fonts")
}
