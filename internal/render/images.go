package render

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"instarecipe/internal/providers"
)

const imageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ImageFetcher downloads post thumbnails into the site's images directory.
// Bytes are kept in the cache so a forced page regeneration does not hit
// the CDN again for images whose files were cleaned away.
type ImageFetcher struct {
	client *http.Client
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewImageFetcher(cache providers.CacheProviderInterface, logger providers.Logger) *ImageFetcher {
	return &ImageFetcher{
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  cache,
		logger: logger,
	}
}

// Fetch stores the image under <outputDir>/images/<base>.jpg and returns
// the relative reference for the page, or an empty string when the image
// cannot be fetched. Pages render fine without a thumbnail.
func (f *ImageFetcher) Fetch(imageURL, outputDir, base string) string {
	if !strings.HasPrefix(imageURL, "http") {
		return ""
	}

	fileName := base + ".jpg"
	localRef := "images/" + fileName
	imagePath := filepath.Join(outputDir, "images", fileName)

	if _, err := os.Stat(imagePath); err == nil {
		return localRef
	}
	if err := os.MkdirAll(filepath.Join(outputDir, "images"), 0755); err != nil {
		f.logger.Warnf(providers.TypeRender, "Create images dir: %v", err)
		return ""
	}

	data, ok := f.cache.Get(imageURL)
	if !ok {
		var err error
		data, err = f.download(imageURL)
		if err != nil {
			f.logger.Warnf(providers.TypeRender, "Failed to download image from %s: %v", imageURL, err)
			return ""
		}
		f.cache.Set(imageURL, data)
	}

	if err := os.WriteFile(imagePath, data, 0644); err != nil {
		f.logger.Warnf(providers.TypeRender, "Write image %s: %v", imagePath, err)
		return ""
	}
	return localRef
}

func (f *ImageFetcher) download(imageURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", imageUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
