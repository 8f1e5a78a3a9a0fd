package fallback

import (
	"errors"
	"strings"

	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/fontfallback/core/font"
	"github.com/npillmayer/schuko"
)

// Configuration keys read by NewResolver.
const (
	ConfigAdjust = "font-fallback.adjust" // bool, default true
	ConfigPrefix = "font-fallback.prefix" // string, default DefaultScopePrefix
)

// Request is the input of fallback resolution.
//
// If ManualNames is non-nil, the request asks for a manual fallback and all
// other fields are ignored. Otherwise the request asks for an automatic
// fallback for a generic Category. Metrics may be nil if no metrics are
// available for the webfont, which results in a fallback without adjustment.
// A non-nil MetricsErr signals that measuring the webfont failed upstream.
type Request struct {
	Category         string         // generic category, "sans-serif" or "serif"
	Metrics          *TargetMetrics // measured webfont metrics, optional
	MetricsErr       error          // metrics extraction failed upstream
	ScopedFontFamily string         // required for automatic fallbacks
	LocalFontFamily  string         // defaults to the category's default font
	ManualNames      []string       // user supplied fallback families
}

// IssueHandler receives a diagnostic for every failed resolution. Errors
// are of type core.AppError.
type IssueHandler func(err error)

// Resolver resolves requests into fallbacks. A Resolver holds configuration
// only and is safe for concurrent use.
type Resolver struct {
	adjust bool
	prefix string
	issues IssueHandler
}

// NewResolver creates a resolver. conf and issues may be nil.
//
// Configuration key "font-fallback.adjust" set to false disables metric
// adjustments, "font-fallback.prefix" sets the prefix of generated family names.
func NewResolver(conf schuko.Configuration, issues IssueHandler) *Resolver {
	r := &Resolver{adjust: true, prefix: DefaultScopePrefix, issues: issues}
	if conf != nil {
		if conf.IsSet(ConfigAdjust) && !conf.GetBool(ConfigAdjust) {
			tracer().Infof("font fallback adjustment switched off by configuration")
			r.adjust = false
		}
		if p := conf.GetString(ConfigPrefix); p != "" {
			r.prefix = p
		}
	}
	return r
}

// Resolve produces the fallback for a request. It never fails: malformed
// requests, unsupported categories and upstream metrics failures are reported
// to the issue handler and yield Failed.
//
// Resolve is a pure function of the request and the resolver's configuration;
// equal requests yield equal fallbacks.
func (r *Resolver) Resolve(req Request) FontFallback {
	if req.ManualNames != nil {
		names := cleanNames(req.ManualNames)
		if len(names) == 0 {
			return r.fail(core.Error(core.EINVALID, "manual font fallback list is empty"))
		}
		tracer().Debugf("manual fallback %v", names)
		return Manual(names)
	}
	if req.MetricsErr != nil {
		return r.fail(core.WrapError(req.MetricsErr, codeOr(req.MetricsErr, core.EINVALID),
			"cannot generate fallback for %q: font metrics unavailable", req.ScopedFontFamily))
	}
	category, err := font.ParseCategory(req.Category)
	if err != nil {
		return r.fail(err)
	}
	scoped := strings.TrimSpace(req.ScopedFontFamily)
	if scoped == "" {
		return r.fail(core.Error(core.EINVALID, "automatic font fallback requires a scoped font family"))
	}
	fb := Lookup(category)
	auto := Automatic{
		ScopedFontFamily: scoped,
		LocalFontFamily:  strings.TrimSpace(req.LocalFontFamily),
	}
	if auto.LocalFontFamily == "" {
		auto.LocalFontFamily = fb.Name
	}
	if req.Metrics == nil || !r.adjust {
		tracer().Infof("fallback %s without adjustment", scoped)
		return auto
	}
	if err := req.Metrics.Validate(); err != nil {
		return r.fail(err)
	}
	adjustment := Adjust(*req.Metrics, fb)
	auto.Adjustment = &adjustment
	tracer().Infof("fallback %s: %v", scoped, adjustment)
	return auto
}

// ResolveAll resolves a sequence of requests, preserving their order.
func (r *Resolver) ResolveAll(reqs []Request) FontFallbacks {
	fbs := make(FontFallbacks, len(reqs))
	for i, req := range reqs {
		fbs[i] = r.Resolve(req)
	}
	return fbs
}

// ScopedFamilyName creates a fallback family name using the resolver's
// configured prefix. See package-level ScopedFamilyName.
func (r *Resolver) ScopedFamilyName(family, key string) string {
	return scopedFamilyName(r.prefix, family, key)
}

func (r *Resolver) fail(err error) FontFallback {
	tracer().Errorf("font fallback: %v", err)
	if r.issues != nil {
		r.issues(err)
	}
	return Failed{}
}

// codeOr returns the error code of an application error, or code for
// other errors.
func codeOr(err error, code int) int {
	if e := core.AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return code
}

// cleanNames trims names and drops empty ones, preserving order. The result
// does not share memory with names.
func cleanNames(names []string) []string {
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	return clean
}

// --- Providers -------------------------------------------------------------

// MetricsProvider supplies measured metrics of webfonts. A nil result without
// an error means that no metrics are available for a family.
type MetricsProvider interface {
	Metrics(family string) (*TargetMetrics, error)
}

// CategoryClassifier supplies the generic category of a font family, e.g.
// "serif". Unknown families result in an error.
type CategoryClassifier interface {
	Category(family string) (string, error)
}

// ResolveFamily resolves an automatic fallback for a webfont family, taking
// metrics and category from providers. key identifies the font declaration
// and is used to derive the scoped family name.
//
// A metrics provider reporting EMISSING for a classified family results in a
// fallback without adjustment. Other metrics errors result in Failed.
func (r *Resolver) ResolveFamily(family, key string, metrics MetricsProvider,
	classifier CategoryClassifier) FontFallback {
	//
	req := Request{ScopedFontFamily: r.ScopedFamilyName(family, key)}
	category, err := classifier.Category(family)
	if err != nil {
		return r.fail(core.WrapError(err, codeOr(err, core.EUNSUPPORTED), "cannot classify font family %q", family))
	}
	req.Category = category
	req.Metrics, req.MetricsErr = metrics.Metrics(family)
	if core.Code(req.MetricsErr) == core.EMISSING {
		tracer().Infof("no metrics for font family %q: %v", family, req.MetricsErr)
		req.Metrics, req.MetricsErr = nil, nil
	}
	return r.Resolve(req)
}
