package font

import (
	"testing"

	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

type sw struct {
	s xfont.Style
	w xfont.Weight
}

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	//
	for k, v := range map[string]sw{
		"fonts/Clarendon-bold.ttf":               {xfont.StyleNormal, xfont.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {xfont.StyleItalic, xfont.WeightBold},
		"Cambria Math.ttf":                       {xfont.StyleNormal, xfont.WeightNormal},
	} {
		style, weight := GuessStyleAndWeight(k)
		t.Logf("style = %d, weight = %d", style, weight)
		if style != v.s || weight != v.w {
			t.Errorf("expected different style or weight for %s", k)
		}
	}
}

func TestNormalizeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	//
	for in, out := range map[string]string{
		"Times New Roman":       "times_new_roman",
		"  times new roman.ttf": "times_new_roman",
		"Roboto":                "roboto",
		"Font Awesome 5.0":      "font_awesome_5.0",
	} {
		if n := NormalizeFontname(in); n != out {
			t.Errorf("expected normalized name of %q to be %q, is %q", in, out, n)
		}
	}
}

func TestCategories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	//
	c, err := ParseCategory("Serif")
	if err != nil || c != Serif {
		t.Errorf("expected 'Serif' to parse as serif, is %v (%v)", c, err)
	}
	c, err = ParseCategory("sans-serif")
	if err != nil || c != SansSerif || c.String() != "sans-serif" {
		t.Errorf("expected 'sans-serif' to parse as sans-serif, is %v (%v)", c, err)
	}
	if _, err = ParseCategory("monospace"); core.Code(err) != core.EUNSUPPORTED {
		t.Errorf("expected monospace to be unsupported, error is %v", err)
	}
	if Category(7).Valid() {
		t.Errorf("expected Category(7) to be invalid")
	}
}

func TestCSSWeightAndStyle(t *testing.T) {
	if w := CSSWeight(xfont.WeightBold); w != 700 {
		t.Errorf("expected bold to be 700, is %d", w)
	}
	if w := CSSWeight(xfont.WeightNormal); w != 400 {
		t.Errorf("expected normal to be 400, is %d", w)
	}
	if s := CSSStyle(xfont.StyleItalic); s != "italic" {
		t.Errorf("expected italic, is %s", s)
	}
}

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("font = %q, family = %q", f.Fontname, f.Family)
	if f.Family != "Go" {
		t.Errorf("expected family of Go Regular to be 'Go', is %q", f.Family)
	}
	if _, err = ParseOpenTypeFont([]byte("no font")); core.Code(err) != core.EINVALID {
		t.Errorf("expected garbage to be rejected as invalid, error is %v", err)
	}
	if _, err = LoadOpenTypeFont("does/not/exist.ttf"); core.Code(err) != core.EMISSING {
		t.Errorf("expected missing file to be reported as missing, error is %v", err)
	}
}
