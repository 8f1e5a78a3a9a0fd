package fallback

import (
	"fmt"
	"strings"
)

// FontFallback is the outcome of fallback resolution. It is one of
// Automatic, Manual or Failed; no other implementations exist.
//
// Clients handle a FontFallback with a type switch:
//
//	switch fb := f.(type) {
//	case fallback.Automatic: …
//	case fallback.Manual:    …
//	case fallback.Failed:    …
//	}
type FontFallback interface {
	String() string
	isFontFallback()
}

// Automatic is a fallback generated from the default fallback font of a
// generic category. Adjustment is nil if no metrics were available for the
// webfont; the local font may still be used, without metric overrides.
type Automatic struct {
	ScopedFontFamily string          // e.g. "__Roboto_Fallback_c123b8"
	LocalFontFamily  string          // used as `src: local("…")`, e.g. "Arial"
	Adjustment       *FontAdjustment // optional
}

// Manual is a list of fallback font families supplied by the user, to be
// used as-is. Order is significant and the list is never empty.
type Manual []string

// Failed signals that no fallback could be prepared. Resolving a font's CSS
// must not fail, so the problem has been reported as an issue and the
// fallback is omitted.
type Failed struct{}

func (Automatic) isFontFallback() {}
func (Manual) isFontFallback()    {}
func (Failed) isFontFallback()    {}

func (a Automatic) String() string {
	if a.Adjustment == nil {
		return fmt.Sprintf("automatic{%s = local(%s)}", a.ScopedFontFamily, a.LocalFontFamily)
	}
	return fmt.Sprintf("automatic{%s = local(%s), %v}", a.ScopedFontFamily, a.LocalFontFamily, *a.Adjustment)
}

func (m Manual) String() string {
	return "manual{" + strings.Join(m, ", ") + "}"
}

func (Failed) String() string {
	return "failed{}"
}

// Equal compares two fallbacks by value. Adjustments are compared with
// FontAdjustment.Equal.
func Equal(a, b FontFallback) bool {
	switch x := a.(type) {
	case Automatic:
		y, ok := b.(Automatic)
		if !ok || x.ScopedFontFamily != y.ScopedFontFamily || x.LocalFontFamily != y.LocalFontFamily {
			return false
		}
		if x.Adjustment == nil || y.Adjustment == nil {
			return x.Adjustment == nil && y.Adjustment == nil
		}
		return x.Adjustment.Equal(*y.Adjustment)
	case Manual:
		y, ok := b.(Manual)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case Failed:
		_, ok := b.(Failed)
		return ok
	}
	return false
}

// --- Sequences of fallbacks ------------------------------------------------

// FontFallbacks is an ordered sequence of fallbacks, e.g. one per weight or
// style of a webfont declaration.
type FontFallbacks []FontFallback

// FontFamilies lists the font families to append to a CSS font-family list,
// in order. Automatic fallbacks contribute their scoped family, manual ones
// each of their families, failed ones nothing. Duplicates are dropped.
func (fbs FontFallbacks) FontFamilies() []string {
	families := make([]string, 0, len(fbs))
	seen := make(map[string]bool)
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			families = append(families, f)
		}
	}
	for _, fb := range fbs {
		switch x := fb.(type) {
		case Automatic:
			add(x.ScopedFontFamily)
		case Manual:
			for _, f := range x {
				add(f)
			}
		}
	}
	return families
}

// Automatic returns the automatic fallbacks of the sequence, in order.
func (fbs FontFallbacks) Automatic() []Automatic {
	var autos []Automatic
	for _, fb := range fbs {
		if a, ok := fb.(Automatic); ok {
			autos = append(autos, a)
		}
	}
	return autos
}

// Failures counts the failed fallbacks of the sequence.
func (fbs FontFallbacks) Failures() int {
	n := 0
	for _, fb := range fbs {
		if _, ok := fb.(Failed); ok {
			n++
		}
	}
	return n
}
