/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" or "font family" is a family of fonts. An example is "Roboto".
Webfont declarations and CSS font-family lists address families.

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Roboto Bold". Metrics are
measured from scalable fonts.

* A "generic category" is the CSS classification of a family, e.g.
"serif" or "sans-serif". Categories select a default system fallback.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontfallback.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontfallback.fonts")
}
