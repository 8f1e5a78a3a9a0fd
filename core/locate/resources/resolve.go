package resources

import (
	"context"
	"fmt"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/fontfallback/core/font"
	"github.com/npillmayer/fontfallback/core/font/fallback"
	"github.com/npillmayer/fontfallback/core/font/fontregistry"
	"github.com/npillmayer/fontfallback/core/font/opentype/otquery"
	xfont "golang.org/x/image/font"
)

// NotFound returns an application error for a missing font.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

// --- Fonts -----------------------------------------------------------------

type fontPlusErr struct {
	font *font.ScalableFont
	err  error
}

// FontPromise is returned by ResolveFont. Calling one of its methods blocks
// until the font has been loaded.
type FontPromise interface {
	Font() (*font.ScalableFont, error)
	FontContext(ctx context.Context) (*font.ScalableFont, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.ScalableFont, error)
}

func (loader fontLoader) Font() (*font.ScalableFont, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) FontContext(ctx context.Context) (*font.ScalableFont, error) {
	return loader.await(ctx)
}

// ResolveFont resolves a font by family name or by file name. The font is
// searched for
//
// ▪︎ in the global font registry,
//
// ▪︎ as a font file (name is a path) or system font,
//
// ▪︎ in the Google Fonts directory, downloading it to the cache.
//
// Resolved fonts are stored in the global font registry. Fonts from Google
// carry their category, which is recorded in the registry as well.
func ResolveFont(name string, style xfont.Style, weight xfont.Weight) FontPromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		defer close(ch)
		f, err := loadFont(name, style, weight)
		ch <- fontPlusErr{font: f, err: err}
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.ScalableFont, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func loadFont(name string, style xfont.Style, weight xfont.Weight) (*font.ScalableFont, error) {
	registry := fontregistry.GlobalRegistry()
	if f, ok := registry.Font(name); ok {
		tracer().Debugf("font %s found in registry", name)
		return f, nil
	}
	var f *font.ScalableFont
	var err error
	if fpath, ferr := findfont.Find(name); ferr == nil && fpath != "" {
		tracer().Debugf("%s is a font file or system font: %s", name, fpath)
		f, err = font.LoadOpenTypeFont(fpath)
	}
	if f == nil && GoogleAPIKey() != "" {
		var fi GoogleFontInfo
		var variant, fpath string
		if fi, variant, err = FindGoogleFont(name, style, weight); err == nil {
			if fpath, err = CacheGoogleFont(fi, variant); err == nil {
				if f, err = font.LoadOpenTypeFont(fpath); err == nil && fi.Category != "" {
					registry.SetCategory(f.Family, fi.Category)
				}
			}
		}
	}
	if f == nil {
		if err == nil {
			err = NotFound(name)
		}
		tracer().Infof("cannot resolve font %s: %v", name, err)
		return nil, err
	}
	if err = registry.StoreFont(f); err != nil {
		return nil, err
	}
	return f, nil
}

// --- Metrics ---------------------------------------------------------------

type metricsPlusErr struct {
	metrics *fallback.TargetMetrics
	err     error
}

// MetricsPromise is returned by ResolveMetrics. Calling one of its methods
// blocks until the metrics are available.
type MetricsPromise interface {
	Metrics() (*fallback.TargetMetrics, error)
	MetricsContext(ctx context.Context) (*fallback.TargetMetrics, error)
}

type metricsLoader struct {
	await func(ctx context.Context) (*fallback.TargetMetrics, error)
}

func (loader metricsLoader) Metrics() (*fallback.TargetMetrics, error) {
	return loader.await(context.Background())
}

func (loader metricsLoader) MetricsContext(ctx context.Context) (*fallback.TargetMetrics, error) {
	return loader.await(ctx)
}

// ResolveMetrics resolves the regular variant of a font (see ResolveFont) and
// measures its metrics.
func ResolveMetrics(name string) MetricsPromise {
	ch := make(chan metricsPlusErr, 1)
	go func(ch chan<- metricsPlusErr) {
		defer close(ch)
		f, err := loadFont(name, xfont.StyleNormal, xfont.WeightNormal)
		if err != nil {
			ch <- metricsPlusErr{err: err}
			return
		}
		m, err := MeasureFont(f)
		ch <- metricsPlusErr{metrics: m, err: err}
	}(ch)
	return metricsLoader{
		await: func(ctx context.Context) (*fallback.TargetMetrics, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.metrics, r.err
			}
		},
	}
}

// MeasureFont measures the metrics of a font for fallback adjustment.
func MeasureFont(f *font.ScalableFont) (*fallback.TargetMetrics, error) {
	if f == nil {
		return nil, core.Error(core.EINVALID, "cannot measure null font")
	}
	info, err := otquery.FontMetrics(f.SFNT)
	if err != nil {
		return nil, err
	}
	if !info.HasAvgWidth {
		tracer().Infof("font %s lacks glyphs for average width, will not scale fallback", f.Fontname)
	}
	m := fallback.TargetFromInfo(info)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
