package fallback

import (
	"fmt"
	"sync"

	"github.com/npillmayer/fontfallback/core/font"
)

// DefaultFallbackFont is a system font used as the base of automatic
// fallbacks for a generic category.
type DefaultFallbackFont struct {
	Name string // CSS family name of the local font, e.g. "Arial"
	// AzAvgWidth is the average advance width, in design units, over the
	// width sample of package otquery (lowercase Latin letters and spaces).
	AzAvgWidth float64
	UnitsPerEm int
}

func (f DefaultFallbackFont) String() string {
	return fmt.Sprintf("%s (avg width %.4f / %d)", f.Name, f.AzAvgWidth, f.UnitsPerEm)
}

// Lookup returns the default fallback font for a generic category.
//
// Categories form a closed set and clients are expected to create them
// with font.ParseCategory. Lookup panics for a Category value outside of
// this set.
func Lookup(category font.Category) DefaultFallbackFont {
	catalogCreation.Do(createCatalog)
	f, ok := catalog[category]
	if !ok {
		panic(fmt.Sprintf("no default fallback font for category %d", int(category)))
	}
	return f
}

var catalogCreation sync.Once

// catalog is read-only after creation.
var catalog map[font.Category]DefaultFallbackFont

// Widths have been measured from the system fonts and must not be rounded.
func createCatalog() {
	catalog = map[font.Category]DefaultFallbackFont{
		font.SansSerif: {
			Name:       "Arial",
			AzAvgWidth: 934.5116279069767,
			UnitsPerEm: 2048,
		},
		font.Serif: {
			Name:       "Times New Roman",
			AzAvgWidth: 854.3953488372093,
			UnitsPerEm: 2048,
		},
	}
	tracer().Debugf("default fallback catalog created with %d entries", len(catalog))
}
