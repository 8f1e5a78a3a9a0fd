/*
Package fallback computes fallback font descriptors for webfonts.

While a webfont is loading, browsers render text with a local fallback font.
When the webfont arrives, text is re-rendered and the page shifts, as the two
fonts differ in glyph widths and vertical metrics. Package fallback selects a
local system font for a generic category ("sans-serif" or "serif") and derives
CSS metric overrides (size-adjust, ascent-override, descent-override,
line-gap-override), such that the fallback occupies the same space as the
webfont will.

The outcome of resolution is a FontFallback, which is one of

▪︎ Automatic: a generated fallback, with an optional FontAdjustment

▪︎ Manual: a list of fallback families supplied by the user, as-is

▪︎ Failed: no fallback could be prepared

Resolution never fails hard. Problems are reported to an optional issue
handler and result in Failed, letting styling proceed without a fallback.

All functions of this package are pure and safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fallback

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontfallback.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontfallback.fonts")
}
