package resources

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"sort"
	"sync"

	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/fontfallback/core/font"
	"github.com/npillmayer/fontfallback/core/font/fontregistry"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
)

// GoogleFontInfo describes a font family of the Google Fonts service.
// Category is the family's generic category, e.g. "sans-serif" or "display".
type GoogleFontInfo struct {
	Family   string            `json:"family"`
	Category string            `json:"category"`
	Version  string            `json:"version"`
	Variants []string          `json:"variants"`
	Subsets  []string          `json:"subsets"`
	Files    map[string]string `json:"files"`
}

// GoogleFontsDirectory is the list of font families available from the
// Google Fonts service.
type GoogleFontsDirectory struct {
	Items []GoogleFontInfo `json:"items"`
}

// DecodeGoogleFontsDirectory reads a directory in the JSON format of the
// Google Fonts developer API.
func DecodeGoogleFontsDirectory(r io.Reader) (*GoogleFontsDirectory, error) {
	dir := &GoogleFontsDirectory{}
	if err := json.NewDecoder(r).Decode(dir); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "could not decode fonts-list from Google font service")
	}
	return dir, nil
}

var loadGoogleFontsDir sync.Once
var googleFontsDirectory *GoogleFontsDirectory
var googleFontsLoadError error
var googleFontsAPI string = `https://www.googleapis.com/webfonts/v1/webfonts?`

// GoogleAPIKey returns the API key for the Google Fonts service, taken from
// the global configuration or from the environment.
func GoogleAPIKey() string {
	apikey := gconf.GetString("google-api-key")
	if apikey == "" {
		apikey = os.Getenv("GOOGLE_API_KEY")
	}
	return apikey
}

// SetupGoogleFontsDirectory loads the directory of the Google Fonts service,
// once per application run.
func SetupGoogleFontsDirectory() (*GoogleFontsDirectory, error) {
	loadGoogleFontsDir.Do(func() {
		apikey := GoogleAPIKey()
		if apikey == "" {
			err := errors.New("Google API key not set")
			tracer().Errorf("%s", err.Error())
			googleFontsLoadError = core.WrapError(err, core.EMISSING,
				`Google Fonts API-key must be set in global configuration or as GOOGLE_API_KEY in environment;
      please refer to https://developers.google.com/fonts/docs/developer_api`)
			return
		}
		values := url.Values{
			"sort": []string{"alpha"},
			"key":  []string{apikey},
		}
		resp, err := http.Get(googleFontsAPI + values.Encode())
		if err != nil {
			tracer().Errorf("Google Fonts API request not OK: %s", err.Error())
			googleFontsLoadError = core.WrapError(err, core.ECONNECTION,
				"could not get fonts-directory from Google font service")
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			tracer().Errorf("Google Fonts API request not OK: %v", resp.Status)
			googleFontsLoadError = core.Error(core.ECONNECTION,
				"could not get fonts-directory from Google font service: %v", resp.Status)
			return
		}
		googleFontsDirectory, googleFontsLoadError = DecodeGoogleFontsDirectory(resp.Body)
		if googleFontsLoadError == nil {
			tracer().Infof("loaded directory of %d Google fonts", len(googleFontsDirectory.Items))
		}
	})
	return googleFontsDirectory, googleFontsLoadError
}

// Lookup finds a family in the directory. Family names are compared in
// normalized form.
func (dir *GoogleFontsDirectory) Lookup(family string) (GoogleFontInfo, bool) {
	key := font.NormalizeFontname(family)
	for _, fi := range dir.Items {
		if font.NormalizeFontname(fi.Family) == key {
			return fi, true
		}
	}
	return GoogleFontInfo{}, false
}

// Category returns the generic category of a Google font family, as listed
// in the directory.
func (dir *GoogleFontsDirectory) Category(family string) (string, error) {
	fi, ok := dir.Lookup(family)
	if !ok {
		return "", NotFound(family)
	}
	if fi.Category == "" {
		return "", core.Error(core.EMISSING, "Google font %s has no category", fi.Family)
	}
	return fi.Category, nil
}

// FindFont searches the directory for a variant of a family matching pattern,
// which is a regular expression, with a given style and weight. It returns the
// font information of the best match together with the variant key.
func (dir *GoogleFontsDirectory) FindFont(pattern string, style xfont.Style, weight xfont.Weight) (
	GoogleFontInfo, string, error) {
	//
	descs := make([]font.Descriptor, len(dir.Items))
	for i, fi := range dir.Items {
		descs[i] = font.Descriptor{Family: fi.Family, Variants: fi.Variants}
	}
	match, variant, confidence := fontregistry.ClosestMatch(descs, pattern, style, weight)
	if confidence == fontregistry.NoConfidence {
		return GoogleFontInfo{}, "", NotFound(pattern)
	}
	tracer().Debugf("closest Google font for %s is %s %s (%d)", pattern, match.Family, variant, confidence)
	fi, _ := dir.Lookup(match.Family)
	return fi, variant, nil
}

// FindGoogleFont searches the Google Fonts service for a font variant. See
// GoogleFontsDirectory.FindFont.
//
// If not already done, the list of fonts will be downloaded from Google.
func FindGoogleFont(pattern string, style xfont.Style, weight xfont.Weight) (GoogleFontInfo, string, error) {
	dir, err := SetupGoogleFontsDirectory()
	if err != nil {
		return GoogleFontInfo{}, "", err
	}
	return dir.FindFont(pattern, style, weight)
}

// GoogleFontsClassifier classifies font families by the categories listed in
// the Google Fonts directory, which is loaded on first use.
type GoogleFontsClassifier struct{}

func (GoogleFontsClassifier) Category(family string) (string, error) {
	dir, err := SetupGoogleFontsDirectory()
	if err != nil {
		return "", err
	}
	return dir.Category(family)
}

// ---------------------------------------------------------------------------

// ListGoogleFonts produces a listing of available fonts from the Google webfont
// service, with font-family names matching a given pattern.
//
// If not aleady done, the list of fonts will be downloaded from Google.
func ListGoogleFonts(pattern string) {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	dir, err := SetupGoogleFontsDirectory()
	if err != nil {
		tracer().Errorf("%s", core.UserMessage(err))
		return
	}
	listGoogleFonts(dir, pattern)
}

func listGoogleFonts(dir *GoogleFontsDirectory, pattern string) int {
	r, err := regexp.Compile(pattern)
	if err != nil {
		tracer().Errorf("cannot list Google fonts: invalid pattern: %v", err)
		return 0
	}
	tracer().Infof("%d fonts in list", len(dir.Items))
	tracer().Infof("======================================")
	n := 0
	for i, finfo := range dir.Items {
		if r.MatchString(finfo.Family) {
			n++
			tracer().Infof("[%4d] %-20s: %s (%s)", i, finfo.Family, finfo.Version, finfo.Category)
			tracer().Infof("       subsets: %v", finfo.Subsets)
			variants := make([]string, 0, len(finfo.Files))
			for k := range finfo.Files {
				variants = append(variants, k)
			}
			sort.Strings(variants)
			for _, k := range variants {
				v := finfo.Files[k]
				tracer().Infof("       - %-18s: %s", k, v[max(0, len(v)-4):])
			}
		}
	}
	return n
}
