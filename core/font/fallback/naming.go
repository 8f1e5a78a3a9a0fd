package fallback

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DefaultScopePrefix is prepended to generated fallback families.
const DefaultScopePrefix = "__"

// ScopedFamilyName creates a fallback family name for a webfont family,
// e.g. "__Roboto_Mono_Fallback_c123b8". The suffix is derived from key, which
// should identify the font declaration (e.g. its source path and options);
// if key is empty, the family itself is used. Names are deterministic.
func ScopedFamilyName(family, key string) string {
	return scopedFamilyName(DefaultScopePrefix, family, key)
}

func scopedFamilyName(prefix, family, key string) string {
	family = strings.Join(strings.Fields(family), "_")
	if key == "" {
		key = family
	}
	hash := xxhash.Sum64String(key)
	return fmt.Sprintf("%s%s_Fallback_%06x", prefix, family, hash&0xffffff)
}
