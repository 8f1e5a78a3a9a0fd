package fontregistry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/fontfallback/core/font"
	"github.com/npillmayer/fontfallback/core/font/fallback"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Test Suite Preparation ------------------------------------------------

type RegistryTestEnviron struct {
	suite.Suite
	gofont *font.ScalableFont
	reg    *Registry
}

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	suite.Run(t, new(RegistryTestEnviron))
}

func (env *RegistryTestEnviron) SetupSuite() {
	f, err := font.ParseOpenTypeFont(goregular.TTF)
	env.Require().NoError(err, "cannot decode test font Go Regular")
	env.gofont = f
}

func (env *RegistryTestEnviron) SetupTest() {
	env.reg = NewRegistry()
}

// --- Tests -----------------------------------------------------------------

func (env *RegistryTestEnviron) TestStoreFont() {
	env.Require().NoError(env.reg.StoreFont(env.gofont))
	f, ok := env.reg.Font("go")
	env.Require().True(ok, "expected to find Go font by normalized family name")
	env.Equal(env.gofont, f)
	//
	m, err := env.reg.Metrics("Go")
	env.Require().NoError(err)
	env.Require().NotNil(m)
	env.Equal(2048.0, m.UnitsPerEm)
	env.Equal(1935.0, m.Ascent)
	env.Equal(-432.0, m.Descent)
	env.Greater(m.AzAvgWidth, 0.0)
	env.Equal([]string{"Go"}, env.reg.Families())
	env.reg.LogFontList()
}

func (env *RegistryTestEnviron) TestStoreFontKeepsFirst() {
	env.Require().NoError(env.reg.StoreFont(env.gofont))
	other, err := font.ParseOpenTypeFont(goregular.TTF)
	env.Require().NoError(err)
	env.Require().NoError(env.reg.StoreFont(other))
	f, _ := env.reg.Font("Go")
	env.True(f == env.gofont, "registry should not override a stored font")
}

func (env *RegistryTestEnviron) TestStoreNullFont() {
	err := env.reg.StoreFont(nil)
	env.Error(err)
	env.Equal(core.EINVALID, core.Code(err))
	env.Empty(env.reg.Families())
}

func (env *RegistryTestEnviron) TestMetricsAreCopied() {
	env.reg.StoreMetrics("Roboto", fallback.TargetMetrics{Ascent: 1900, Descent: -500, UnitsPerEm: 2048, AzAvgWidth: 1000})
	m, err := env.reg.Metrics("roboto")
	env.Require().NoError(err)
	m.Ascent = 0
	m2, _ := env.reg.Metrics("Roboto")
	env.Equal(1900.0, m2.Ascent)
}

func (env *RegistryTestEnviron) TestUnknownFamily() {
	m, err := env.reg.Metrics("Nope")
	env.Nil(m)
	env.Equal(core.EMISSING, core.Code(err))
	_, err = env.reg.Category("Nope")
	env.Equal(core.EMISSING, core.Code(err))
	_, err = env.reg.Request("Nope", "")
	env.Error(err)
	_, ok := env.reg.Font("Nope")
	env.False(ok)
}

func (env *RegistryTestEnviron) TestKnownFamilyWithoutMetrics() {
	env.reg.SetCategory("Lora", "serif")
	m, err := env.reg.Metrics("Lora")
	env.NoError(err)
	env.Nil(m)
	req, err := env.reg.Request("Lora", "k")
	env.Require().NoError(err)
	env.Equal("serif", req.Category)
	env.Nil(req.Metrics)
	env.Equal(fallback.ScopedFamilyName("Lora", "k"), req.ScopedFontFamily)
}

func (env *RegistryTestEnviron) TestClassifier() {
	env.reg.StoreMetrics("Roboto", fallback.TargetMetrics{Ascent: 1900, Descent: -500, UnitsPerEm: 2048, AzAvgWidth: 1000})
	env.reg.SetClassifier(stubClassifier{"Roboto": "sans-serif"})
	c, err := env.reg.Category("Roboto")
	env.NoError(err)
	env.Equal("sans-serif", c)
	env.reg.SetCategory("Roboto", "serif")
	c, _ = env.reg.Category("Roboto")
	env.Equal("serif", c, "explicit category should win over classifier")
}

func (env *RegistryTestEnviron) TestClassifiedFamilyWithoutFont() {
	env.reg.SetClassifier(stubClassifier{"Lora": "serif"})
	var issues []error
	r := fallback.NewResolver(nil, func(err error) { issues = append(issues, err) })
	fb := r.ResolveFamily("Lora", "", env.reg, env.reg)
	env.Equal(fallback.Automatic{
		ScopedFontFamily: fallback.ScopedFamilyName("Lora", ""),
		LocalFontFamily:  "Times New Roman",
	}, fb)
	env.Empty(issues)
	//
	req, err := env.reg.Request("Lora", "")
	env.Require().NoError(err)
	env.Nil(req.Metrics)
	env.NoError(req.MetricsErr)
	env.True(fallback.Equal(fb, r.Resolve(req)))
}

func (env *RegistryTestEnviron) TestRegistryAsProvider() {
	env.Require().NoError(env.reg.StoreFont(env.gofont))
	env.reg.SetCategory("Go", "sans-serif")
	r := fallback.NewResolver(nil, nil)
	fb := r.ResolveFamily("Go", "fonts.js:go", env.reg, env.reg)
	auto, ok := fb.(fallback.Automatic)
	env.Require().True(ok, "have %v", fb)
	env.Equal("Arial", auto.LocalFontFamily)
	env.Require().NotNil(auto.Adjustment)
	//
	req, err := env.reg.Request("Go", "fonts.js:go")
	env.Require().NoError(err)
	env.True(fallback.Equal(fb, r.Resolve(req)))
}

func (env *RegistryTestEnviron) TestConcurrentAccess() {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			family := fmt.Sprintf("Family %d", i%4)
			env.reg.StoreMetrics(family, fallback.TargetMetrics{Ascent: float64(i), UnitsPerEm: 1000})
			env.reg.SetCategory(family, "serif")
			_, _ = env.reg.Metrics(family)
			_, _ = env.reg.Request(family, "")
		}(i)
	}
	wg.Wait()
	env.Len(env.reg.Families(), 4)
}

func TestGlobalRegistry(t *testing.T) {
	if GlobalRegistry() != GlobalRegistry() {
		t.Errorf("expected global registry to be a singleton")
	}
}

// --- Matching --------------------------------------------------------------

func TestClosestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	//
	descs := []font.Descriptor{
		{Family: "Inconsolata", Variants: []string{"regular", "700"}},
		{Family: "Roboto", Variants: []string{"300", "regular", "italic", "700", "700italic"}},
	}
	for _, c := range []struct {
		pattern string
		style   xfont.Style
		weight  xfont.Weight
		family  string
		variant string
	}{
		{"roboto", xfont.StyleNormal, xfont.WeightNormal, "Roboto", "regular"},
		{"Roboto", xfont.StyleItalic, xfont.WeightNormal, "Roboto", "italic"},
		{"Roboto", xfont.StyleItalic, xfont.WeightBold, "Roboto", "700italic"},
		{"Roboto", xfont.StyleNormal, xfont.WeightLight, "Roboto", "300"},
		{"incons", xfont.StyleNormal, xfont.WeightBold, "Inconsolata", "700"},
	} {
		match, variant, confidence := ClosestMatch(descs, c.pattern, c.style, c.weight)
		if match.Family != c.family || variant != c.variant {
			t.Errorf("%s/%v/%v: expected %s %s, have %s %s (confidence %d)", c.pattern, c.style, c.weight,
				c.family, c.variant, match.Family, variant, confidence)
		}
	}
	_, _, confidence := ClosestMatch(descs, "Inconsolata", xfont.StyleItalic, xfont.WeightNormal)
	if confidence != NoConfidence {
		t.Errorf("expected no match for Inconsolata italic, have confidence %d", confidence)
	}
}

func TestMatchWeight(t *testing.T) {
	if MatchWeight("700", xfont.WeightBold) != PerfectConfidence {
		t.Errorf("expected 700 to match bold perfectly")
	}
	if MatchWeight("700italic", xfont.WeightBold) != PerfectConfidence {
		t.Errorf("expected 700italic to match bold perfectly")
	}
	if MatchWeight("100", xfont.WeightBold) != NoConfidence {
		t.Errorf("expected 100 not to match bold")
	}
}

// --- Helpers ----------------------------------------------------------

type stubClassifier map[string]string

func (c stubClassifier) Category(family string) (string, error) {
	if cat, ok := c[family]; ok {
		return cat, nil
	}
	return "", errors.New("unknown family")
}
