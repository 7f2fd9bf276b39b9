package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptionFromHTML_Envelope(t *testing.T) {
	page := `<html><head><meta property="og:description" content="1,234 - Likes, 56 - Comments - kochkanal on Instagram: &quot;Schnelle Pasta mit Tomaten. Zutaten: 400g Spaghetti&quot;" /></head></html>`
	got := captionFromHTML(page)
	assert.Equal(t, "Schnelle Pasta mit Tomaten. Zutaten: 400g Spaghetti", got)
}

func TestCaptionFromHTML_LikesSplit(t *testing.T) {
	page := `<meta property="og:description" content="kochkanal on Instagram: &quot;Rezept hier&quot; - Likes, mehr text" />`
	got := captionFromHTML(page)
	assert.Equal(t, "Rezept hier", got)
}

func TestCaptionFromHTML_GermanCounterSplit(t *testing.T) {
	page := `<meta property="og:description" content="backstube on Instagram: &quot;Brot backen leicht gemacht&quot; - Kommentare, 12" />`
	got := captionFromHTML(page)
	assert.Equal(t, "Brot backen leicht gemacht", got)
}

func TestCaptionFromHTML_NoEnvelope(t *testing.T) {
	page := `<meta property="og:description" content="Nur eine Beschreibung ohne Umschlag" />`
	got := captionFromHTML(page)
	assert.Equal(t, "Nur eine Beschreibung ohne Umschlag", got)
}

func TestCaptionFromHTML_Missing(t *testing.T) {
	assert.Equal(t, "", captionFromHTML("<html><head></head></html>"))
}

func TestThumbnailFromHTML(t *testing.T) {
	page := `<meta property="og:image" content="https://scontent.cdninstagram.com/v/t51.jpg?x=1&amp;y=2" />`
	got := thumbnailFromHTML(page)
	assert.Equal(t, "https://scontent.cdninstagram.com/v/t51.jpg?x=1&y=2", got)
}

func TestThumbnailFromHTML_Missing(t *testing.T) {
	assert.Equal(t, "", thumbnailFromHTML("<html></html>"))
}
