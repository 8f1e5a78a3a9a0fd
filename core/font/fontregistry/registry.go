package fontregistry

import (
	"sort"
	"sync"

	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/fontfallback/core/font"
	"github.com/npillmayer/fontfallback/core/font/fallback"
	"github.com/npillmayer/fontfallback/core/font/opentype/otquery"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding information about webfonts for which
// fallbacks are to be generated.
type Registry struct {
	sync.Mutex
	families   map[string]*entry
	classifier fallback.CategoryClassifier
}

type entry struct {
	family   string
	category string                  // generic category, may be empty
	font     *font.ScalableFont      // may be nil
	metrics  *fallback.TargetMetrics // may be nil
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

func NewRegistry() *Registry {
	fr := &Registry{
		families: make(map[string]*entry),
	}
	return fr
}

// SetClassifier sets a classifier to consult for families without a
// category of their own, e.g. a directory of a webfont service.
func (fr *Registry) SetClassifier(c fallback.CategoryClassifier) {
	fr.Lock()
	defer fr.Unlock()
	fr.classifier = c
}

// StoreFont pushes a font into the registry and measures its metrics.
//
// The font will be stored using its normalized family name as a key. If this
// key is already associated with a font, that font will not be overridden.
// If measuring fails, the font is not stored.
func (fr *Registry) StoreFont(f *font.ScalableFont) error {
	if f == nil || f.SFNT == nil {
		tracer().Errorf("registry cannot store null font")
		return core.Error(core.EINVALID, "registry cannot store null font")
	}
	family := f.Family
	if family == "" {
		family = f.Fontname
	}
	info, err := otquery.FontMetrics(f.SFNT)
	if err != nil {
		return err
	}
	metrics := fallback.TargetFromInfo(info)
	if err := metrics.Validate(); err != nil {
		return err
	}
	fr.Lock()
	defer fr.Unlock()
	e := fr.lookup(family, true)
	if e.font != nil {
		tracer().Debugf("registry already contains a font for family %s", family)
		return nil
	}
	tracer().Debugf("registry stores font %s as %s", f.Fontname, font.NormalizeFontname(family))
	e.font = f
	e.metrics = &metrics
	return nil
}

// StoreMetrics sets the metrics of a family, replacing measured ones.
func (fr *Registry) StoreMetrics(family string, metrics fallback.TargetMetrics) {
	fr.Lock()
	defer fr.Unlock()
	fr.lookup(family, true).metrics = &metrics
}

// SetCategory sets the generic category of a family, e.g. "serif".
// Categories are not checked; unsupported ones will make fallback
// resolution for the family fail.
func (fr *Registry) SetCategory(family, category string) {
	fr.Lock()
	defer fr.Unlock()
	fr.lookup(family, true).category = category
}

// Font returns the font stored for a family, if any.
func (fr *Registry) Font(family string) (*font.ScalableFont, bool) {
	fr.Lock()
	defer fr.Unlock()
	if e := fr.lookup(family, false); e != nil && e.font != nil {
		return e.font, true
	}
	return nil, false
}

// Metrics returns the metrics of a family. Families which are known, but
// have no metrics, result in (nil, nil). Unknown families result in an
// EMISSING error.
func (fr *Registry) Metrics(family string) (*fallback.TargetMetrics, error) {
	fr.Lock()
	defer fr.Unlock()
	e := fr.lookup(family, false)
	if e == nil {
		return nil, core.Error(core.EMISSING, "font family %q not found in registry", family)
	}
	if e.metrics == nil {
		return nil, nil
	}
	m := *e.metrics
	return &m, nil
}

// Category returns the generic category of a family. If no category has been
// set for the family, the registry's classifier is asked.
func (fr *Registry) Category(family string) (string, error) {
	fr.Lock()
	e := fr.lookup(family, false)
	classifier := fr.classifier
	fr.Unlock()
	if e != nil && e.category != "" {
		return e.category, nil
	}
	if classifier != nil {
		return classifier.Category(family)
	}
	return "", core.Error(core.EMISSING, "no category known for font family %q", family)
}

// Request builds a fallback request for a family from the registry's data.
// key identifies the font declaration, see fallback.ScopedFamilyName.
func (fr *Registry) Request(family, key string) (fallback.Request, error) {
	req := fallback.Request{ScopedFontFamily: fallback.ScopedFamilyName(family, key)}
	var err error
	if req.Category, err = fr.Category(family); err != nil {
		return req, err
	}
	// classified but not measured: no adjustment
	if req.Metrics, err = fr.Metrics(family); core.Code(err) != core.EMISSING {
		req.MetricsErr = err
	}
	return req, nil
}

// Families returns the family names in the registry, sorted.
func (fr *Registry) Families() []string {
	fr.Lock()
	defer fr.Unlock()
	families := make([]string, 0, len(fr.families))
	for _, e := range fr.families {
		families = append(families, e.family)
	}
	sort.Strings(families)
	return families
}

// LogFontList is a helper function to dump the list of known families
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	fr.Lock()
	defer fr.Unlock()
	tracer().Infof("--- registered fonts ---")
	for k, e := range fr.families {
		name := "-"
		if e.font != nil {
			name = e.font.Fontname
		}
		tracer().Infof("font [%s] = %s, category=%q, font=%s", k, e.family, e.category, name)
	}
	tracer().Infof("------------------------")
}

// lookup must be called with the registry locked.
func (fr *Registry) lookup(family string, create bool) *entry {
	key := font.NormalizeFontname(family)
	e, ok := fr.families[key]
	if !ok && create {
		e = &entry{family: family}
		fr.families[key] = e
	}
	return e
}
