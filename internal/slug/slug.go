// Package slug derives stable filename components from post URLs and recipe
// titles, so regenerated pages and benchmark files overwrite their previous
// versions instead of accumulating.
package slug

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"regexp"
	"strings"
)

var (
	idClean     = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	titleStrip  = regexp.MustCompile(`[^\w\s-]`)
	titleDashes = regexp.MustCompile(`[-\s]+`)
)

// PostID returns the shortcode of a /p/, /reel/ or /reels/ URL, falling
// back to a hash of the whole URL for anything else.
func PostID(postURL string) string {
	if u, err := url.Parse(postURL); err == nil {
		parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
		if len(parts) >= 2 && (parts[0] == "p" || parts[0] == "reel" || parts[0] == "reels") {
			return idClean.ReplaceAllString(parts[1], "")
		}
	}
	h := fnv.New32a()
	h.Write([]byte(postURL))
	return fmt.Sprintf("%d", h.Sum32())
}

var umlauts = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"é", "e", "è", "e", "ê", "e", "à", "a", "ç", "c",
)

// Title makes a recipe title safe for filenames.
func Title(title string) string {
	title = umlauts.Replace(title)
	title = strings.TrimSpace(titleStrip.ReplaceAllString(title, ""))
	title = titleDashes.ReplaceAllString(title, "-")
	return strings.ToLower(strings.Trim(title, "-"))
}
