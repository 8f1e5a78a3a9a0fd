package otquery

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type MetricsTestEnviron struct {
	suite.Suite
	gofont *sfnt.Font
}

// listen for 'go test' command --> run test methods
func TestMetricsFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	suite.Run(t, new(MetricsTestEnviron))
}

// run once, before test suite methods
func (env *MetricsTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("fontfallback.fonts").SetTraceLevel(tracing.LevelError)
	f, err := sfnt.Parse(goregular.TTF)
	env.Require().NoError(err)
	env.gofont = f
	tracing.Select("fontfallback.fonts").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *MetricsTestEnviron) TestVerticalMetrics() {
	m, err := FontMetrics(env.gofont)
	env.Require().NoError(err)
	env.T().Logf("metrics = %v", m)
	env.Equal(sfnt.Units(2048), m.UnitsPerEm, "expected Go Regular to have 2048 units per em")
	env.Equal(sfnt.Units(1935), m.Ascent)
	env.Equal(sfnt.Units(-432), m.Descent, "expected descent to be negative")
	env.Equal(sfnt.Units(0), m.LineGap)
	env.True(m.Valid())
}

func (env *MetricsTestEnviron) TestAverageWidth() {
	m, err := FontMetrics(env.gofont)
	env.Require().NoError(err)
	env.True(m.HasAvgWidth, "expected Go Regular to cover the width sample")
	env.Greater(m.AvgWidth, 0.0)
	env.GreaterOrEqual(float64(m.MaxAdvance), m.AvgWidth)
	//
	a, ok := AverageWidth(env.gofont, "a")
	env.Require().True(ok)
	gm, err := GlyphMetrics(env.gofont, GlyphIndex(env.gofont, 'a'))
	env.Require().NoError(err)
	env.Equal(float64(gm.Advance), a, "average over a single glyph should be its advance")
	aaa, _ := AverageWidth(env.gofont, "aaa")
	env.Equal(a, aaa)
}

func (env *MetricsTestEnviron) TestMissingGlyph() {
	_, ok := AverageWidth(env.gofont, "abc\U0001F600")
	env.False(ok, "expected emoji to be missing in Go Regular")
	_, ok = AverageWidth(env.gofont, "")
	env.False(ok, "expected empty sample to have no average")
	env.Equal(sfnt.GlyphIndex(0), GlyphIndex(env.gofont, '\U0001F600'))
}

func (env *MetricsTestEnviron) TestGlyphMetrics() {
	gid := GlyphIndex(env.gofont, 'x')
	env.NotZero(gid)
	m, err := GlyphMetrics(env.gofont, gid)
	env.Require().NoError(err)
	env.T().Logf("metrics of 'x' = %v", m)
	env.False(m.BBox.Empty())
	env.Greater(int(m.BBox.MaxY), 0, "expected 'x' to extend above the baseline")
	env.Greater(int(m.Advance), 0)
	_, err = GlyphMetrics(env.gofont, sfnt.GlyphIndex(60000))
	env.Error(err)
}

func (env *MetricsTestEnviron) TestNullFont() {
	_, err := FontMetrics(nil)
	env.Error(err)
}
