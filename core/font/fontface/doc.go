/*
Package fontface renders font fallbacks as CSS.

Automatic fallbacks become @font-face rules, which declare a local system font
under the scoped fallback family and carry the metric overrides of the
fallback's adjustment:

	@font-face {
	  font-family: '__Roboto_Fallback_c123b8';
	  src: local("Arial");
	  ascent-override: 86.70%;
	  descent-override: 22.82%;
	  line-gap-override: 0.00%;
	  size-adjust: 107.01%;
	}

Manual and failed fallbacks do not produce rules. All fallbacks contribute to
the font-family list of the webfont's class, see FontFamilyDeclaration.

Rules are built as values of package github.com/aymerick/douceur/css, so
clients may merge them into stylesheets of their own.
*/
package fontface

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontfallback.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontfallback.fonts")
}
