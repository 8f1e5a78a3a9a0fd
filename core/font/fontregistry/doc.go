/*
Package fontregistry manages a registry for webfonts, their measured metrics
and their generic categories.

A Registry serves as the upstream provider for fallback resolution: it
implements fallback.MetricsProvider and fallback.CategoryClassifier. Families
are keyed by their normalized name (see font.NormalizeFontname), thus
"Roboto Mono" and "roboto_mono" denote the same entry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontfallback.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontfallback.fonts")
}
