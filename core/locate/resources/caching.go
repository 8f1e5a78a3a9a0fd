package resources

import (
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/fontfallback/core/font"
	"github.com/npillmayer/schuko/gconf"
)

// DefaultAppKey names the cache folder if configuration key `app-key` is unset.
const DefaultAppKey = "fontfallback"

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory). Partially downloaded files are removed.
func DownloadCachedFile(filepath string, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return core.WrapError(err, core.ECONNECTION, "cannot download %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return core.Error(core.ECONNECTION, "cannot download %s: %s", url, resp.Status)
	}
	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filepath)
		return core.WrapError(err, core.ECONNECTION, "download of %s incomplete", url)
	}
	return nil
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the global configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(subfolders ...string) (string, error) {
	appkey := gconf.GetString("app-key")
	tracer().Debugf("config[%s] = %s", "app-key", appkey)
	if appkey == "" {
		appkey = DefaultAppKey
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appkey, subs)
	tracer().Infof("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", err
		}
	}
	return cachedir, nil
}

// CacheGoogleFont downloads a variant of a Google font into the cache
// directory, if it is not cached yet, and returns the path of the font file.
func CacheGoogleFont(fi GoogleFontInfo, variant string) (string, error) {
	fileurl, ok := fi.Files[variant]
	if !ok {
		return "", core.Error(core.EMISSING, "Google font %s has no variant %q", fi.Family, variant)
	}
	cachedir, err := CacheDirPath("fonts")
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot create font cache")
	}
	ext := strings.ToLower(path.Ext(fileurl))
	if ext == "" || len(ext) > 6 {
		ext = ".ttf"
	}
	fname := font.NormalizeFontname(fi.Family) + "-" + variant + ext
	fpath := filepath.Join(cachedir, fname)
	if _, err := os.Stat(fpath); err == nil {
		tracer().Debugf("Google font %s found in cache", fname)
		return fpath, nil
	}
	tracer().Infof("downloading Google font %s %s", fi.Family, variant)
	if err := DownloadCachedFile(fpath, fileurl); err != nil {
		return "", err
	}
	return fpath, nil
}
