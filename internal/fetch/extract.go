package fetch

import (
	"html"
	"regexp"
	"strings"
)

var (
	ogDescriptionPattern = regexp.MustCompile(`<meta property="og:description" content="([^"]*)"`)
	ogImagePattern       = regexp.MustCompile(`<meta property="og:image" content="([^"]*)"`)
	likesSplitPattern    = regexp.MustCompile(`\s-\sLikes,`)
	commentsSplitPattern = regexp.MustCompile(`\s-\sKommentare,`)
)

// captionFromHTML extracts the caption from a post page. Instagram mirrors
// the caption into the og:description meta tag wrapped in an
// `<author> on Instagram: "<caption>"` envelope, prefixed with a likes and
// comments counter in the viewer's locale.
func captionFromHTML(pageHTML string) string {
	m := ogDescriptionPattern.FindStringSubmatch(pageHTML)
	if m == nil {
		return ""
	}
	desc := html.UnescapeString(m[1])

	desc = likesSplitPattern.Split(desc, 2)[0]
	desc = commentsSplitPattern.Split(desc, 2)[0]

	if _, caption, found := strings.Cut(desc, ` on Instagram: "`); found {
		caption = strings.TrimSuffix(caption, `"`)
		return strings.TrimSpace(caption)
	}
	return strings.TrimSpace(desc)
}

// thumbnailFromHTML extracts the post's preview image URL.
func thumbnailFromHTML(pageHTML string) string {
	m := ogImagePattern.FindStringSubmatch(pageHTML)
	if m == nil {
		return ""
	}
	return html.UnescapeString(m[1])
}
