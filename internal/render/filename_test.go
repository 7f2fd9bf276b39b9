package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilenameBase_Post(t *testing.T) {
	assert.Equal(t, "recipe-AbC123", filenameBase("https://www.instagram.com/p/AbC123/"))
}

func TestFilenameBase_Reel(t *testing.T) {
	assert.Equal(t, "recipe-XyZ789", filenameBase("https://www.instagram.com/reel/XyZ789/"))
}

func TestFilenameBase_Fallback(t *testing.T) {
	got := filenameBase("https://www.instagram.com/someprofile/")
	assert.Contains(t, got, "recipe-")
	// stable across calls
	assert.Equal(t, got, filenameBase("https://www.instagram.com/someprofile/"))
}
