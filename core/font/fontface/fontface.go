package fontface

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/fontfallback/core/font/fallback"
	"github.com/npillmayer/fontfallback/core/percent"
)

// CSS descriptors of @font-face rules.
const (
	FontFamily      = "font-family"
	Src             = "src"
	AscentOverride  = "ascent-override"
	DescentOverride = "descent-override"
	LineGapOverride = "line-gap-override"
	SizeAdjust      = "size-adjust"
)

// Rule creates an @font-face rule for an automatic fallback. Without an
// adjustment, the rule just aliases the local font.
//
// Override values are percentages with two decimals. CSS does not allow
// negative overrides, therefore the descent is written as an absolute value.
func Rule(fb fallback.Automatic) *css.Rule {
	rule := css.NewRule(css.AtRule)
	rule.Name = "@font-face"
	rule.Declarations = append(rule.Declarations,
		declaration(FontFamily, quote(fb.ScopedFontFamily)),
		declaration(Src, fmt.Sprintf("local(%q)", fb.LocalFontFamily)),
	)
	if adj := fb.Adjustment; adj != nil {
		rule.Declarations = append(rule.Declarations,
			declaration(AscentOverride, percent.FromFloat(adj.Ascent).String()),
			declaration(DescentOverride, percent.FromFloat(adj.Descent).Abs().String()),
			declaration(LineGapOverride, percent.FromFloat(adj.LineGap).String()),
			declaration(SizeAdjust, percent.FromRatio(adj.SizeAdjust).String()),
		)
	}
	return rule
}

// Stylesheet creates a stylesheet with an @font-face rule for every automatic
// fallback of fbs, in order. Fallbacks sharing a scoped family produce a
// single rule.
func Stylesheet(fbs fallback.FontFallbacks) *css.Stylesheet {
	sheet := css.NewStylesheet()
	seen := make(map[string]bool)
	for _, auto := range fbs.Automatic() {
		if seen[auto.ScopedFontFamily] {
			tracer().Debugf("skipping duplicate fallback rule for %s", auto.ScopedFontFamily)
			continue
		}
		seen[auto.ScopedFontFamily] = true
		sheet.Rules = append(sheet.Rules, Rule(auto))
	}
	tracer().Debugf("fallback stylesheet has %d rules for %d fallbacks", len(sheet.Rules), len(fbs))
	return sheet
}

// FontFamilyDeclaration creates the font-family declaration for a webfont
// family, followed by the families of its fallbacks.
func FontFamilyDeclaration(primary string, fbs fallback.FontFallbacks) *css.Declaration {
	families := make([]string, 0, len(fbs)+1)
	if primary = strings.TrimSpace(primary); primary != "" {
		families = append(families, QuoteFamily(primary))
	}
	for _, f := range fbs.FontFamilies() {
		if f != primary {
			families = append(families, QuoteFamily(f))
		}
	}
	return declaration(FontFamily, strings.Join(families, ", "))
}

// QuoteFamily quotes a font family name if it would not be valid as a
// sequence of CSS identifiers, e.g. "Times New Roman" or generated names
// starting with "__".
func QuoteFamily(family string) string {
	if needsQuotes(family) {
		return quote(family)
	}
	return family
}

// quote creates a single-quoted CSS string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func needsQuotes(family string) bool {
	if family == "" || strings.HasPrefix(family, "__") || strings.HasPrefix(family, "-") {
		return true
	}
	if family[0] >= '0' && family[0] <= '9' {
		return true
	}
	for _, r := range family {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_':
		default:
			return true
		}
	}
	return false
}

func declaration(property, value string) *css.Declaration {
	return &css.Declaration{Property: property, Value: value}
}
