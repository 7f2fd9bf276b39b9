package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostID_Post(t *testing.T) {
	assert.Equal(t, "AbC123", PostID("https://www.instagram.com/p/AbC123/"))
}

func TestPostID_Reel(t *testing.T) {
	assert.Equal(t, "XyZ789", PostID("https://www.instagram.com/reel/XyZ789/"))
}

func TestPostID_FallbackIsStable(t *testing.T) {
	got := PostID("https://www.instagram.com/someprofile/")
	assert.NotEmpty(t, got)
	assert.Equal(t, got, PostID("https://www.instagram.com/someprofile/"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "spaghetti-bolognese", Title("Spaghetti Bolognese"))
	assert.Equal(t, "kaesespaetzle", Title("Käsespätzle"))
	assert.Equal(t, "suesskartoffel-pommes", Title("Süßkartoffel-Pommes!"))
}
