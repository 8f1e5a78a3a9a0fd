package font

import (
	"os"
	"path"
	"strings"

	"github.com/npillmayer/fontfallback/core"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/cases"
)

// ScalableFont is a parsed font file.
type ScalableFont struct {
	Fontname string     // full font name, e.g. "Roboto Bold"
	Family   string     // font family name, e.g. "Roboto"
	Filepath string     // file path, if loaded from a file
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont loads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses TrueType and OpenType font data.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font data")
	}
	var b sfnt.Buffer
	f.Fontname, _ = f.SFNT.Name(&b, sfnt.NameIDFull)
	if f.Family, err = f.SFNT.Name(&b, sfnt.NameIDTypographicFamily); err != nil || f.Family == "" {
		f.Family, _ = f.SFNT.Name(&b, sfnt.NameIDFamily)
	}
	tracer().Debugf("parsed font %q of family %q", f.Fontname, f.Family)
	return f, nil
}

// --- Generic categories ----------------------------------------------------

// Category is a generic CSS font category for which a default system fallback
// font exists. The set of categories is closed.
type Category int

// Supported generic categories.
const (
	SansSerif Category = iota
	Serif
)

func (c Category) String() string {
	switch c {
	case SansSerif:
		return "sans-serif"
	case Serif:
		return "serif"
	}
	return "unknown"
}

// Valid is a predicate: is c one of the supported categories?
func (c Category) Valid() bool {
	return c == SansSerif || c == Serif
}

// ParseCategory maps a CSS generic category name to a Category.
// Names outside of the supported set result in an EUNSUPPORTED error;
// this includes valid CSS categories like "monospace", for which no default
// fallback font is known.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sans-serif":
		return SansSerif, nil
	case "serif":
		return Serif, nil
	}
	return SansSerif, core.Error(core.EUNSUPPORTED, "generic font category %q not supported", s)
}

// Descriptor describes a font family available from a font source, together
// with the names of its variants, e.g. "regular", "italic" or "700".
type Descriptor struct {
	Family   string
	Variants []string
}

// --- Names -----------------------------------------------------------------

var fontFileExtensions = map[string]bool{
	".ttf": true, ".otf": true, ".ttc": true, ".woff": true, ".woff2": true,
}

// NormalizeFontname returns a normalized key for a font or family name.
// Font file extensions are stripped, white space is replaced by '_' and
// case is folded, i.e. "Times New Roman" and "times new roman.ttf" share a key.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	if ext := path.Ext(fname); fontFileExtensions[strings.ToLower(ext)] {
		fname = fname[:len(fname)-len(ext)]
	}
	fname = strings.Join(strings.Fields(fname), "_")
	return cases.Fold().String(fname)
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// CSSWeight returns the numeric CSS font-weight for weight, e.g. 700 for bold.
func CSSWeight(weight xfont.Weight) int {
	return (int(weight) + 4) * 100
}

// CSSStyle returns the CSS font-style keyword for style.
func CSSStyle(style xfont.Style) string {
	switch style {
	case xfont.StyleItalic:
		return "italic"
	case xfont.StyleOblique:
		return "oblique"
	}
	return "normal"
}
