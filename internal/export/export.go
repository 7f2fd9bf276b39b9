package export

import (
	"os"
	"sort"
	"time"

	json "github.com/goccy/go-json"

	"instarecipe/internal/models"
	"instarecipe/internal/progress"
	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

// Writer produces the machine-readable recipe export and the validation
// benchmark files. It is the consumer-facing counterpart of the progress
// file: only accepted current results appear, history stays internal.
type Writer struct {
	conf       *structures.Config
	logger     providers.Logger
	compressor progress.Compressor
	version    string
	now        func() time.Time
}

type exportEntry struct {
	URL          string                    `json:"url"`
	Username     string                    `json:"username,omitempty"`
	AddedTime    int64                     `json:"added_time,omitempty"`
	ThumbnailURL string                    `json:"thumbnail_url,omitempty"`
	Recipes      map[string]*models.Recipe `json:"recipes"`
}

// NewWriter builds the export writer with its own codec, so the export
// compress flag is independent of the progress file's.
func NewWriter(conf *structures.Config, logger providers.Logger) (*Writer, error) {
	var compressor progress.Compressor = &progress.NoopCompressor{}
	if conf.Export.Compress {
		zc, err := progress.NewZstdCompressor()
		if err != nil {
			return nil, err
		}
		compressor = zc
	}

	w := &Writer{
		conf:       conf,
		logger:     logger,
		compressor: compressor,
		now:        time.Now,
	}
	// One benchmark version per run, even though flushes happen per batch.
	w.version = w.now().Format(models.TimestampLayout)
	return w, nil
}

// Export writes all posts with at least one accepted result as a JSON array
// sorted by URL. The write goes through a tmp file and rename like the
// progress file does.
func (w *Writer) Export(records map[string]*models.PostRecord) error {
	urls := make([]string, 0, len(records))
	for url := range records {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	entries := make([]exportEntry, 0, len(urls))
	for _, url := range urls {
		rec := records[url]
		recipes := make(map[string]*models.Recipe)
		for model, h := range rec.Results {
			if h.Current != nil && h.Current.Data != nil {
				recipes[model] = h.Current.Data
			}
		}
		if len(recipes) == 0 {
			continue
		}
		entries = append(entries, exportEntry{
			URL:          rec.URL,
			Username:     rec.Username,
			AddedTime:    rec.AddedTime,
			ThumbnailURL: rec.ThumbnailURL,
			Recipes:      recipes,
		})
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return err
	}
	if data, err = w.compressor.Compress(data); err != nil {
		return err
	}

	fileName := w.conf.Export.FilePath
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}
	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}
	if err = os.Rename(tmpFile, fileName); err != nil {
		return err
	}

	w.logger.Infof(providers.TypeStore, "Exported %d recipes to %s", len(entries), fileName)
	return nil
}

func (w *Writer) Close() {
	w.compressor.Close()
}
