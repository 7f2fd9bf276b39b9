package render

import "instarecipe/internal/slug"

// filenameBase derives a stable page filename from the post URL's
// shortcode, so regenerated pages overwrite their previous version.
func filenameBase(postURL string) string {
	return "recipe-" + slug.PostID(postURL)
}
