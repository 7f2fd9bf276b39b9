package progress

import (
	"os"

	json "github.com/goccy/go-json"

	"instarecipe/internal/models"
	"instarecipe/internal/providers"
)

// FileManager persists the progress store to a single JSON file. Writes go
// through a tmp file with fsync and rename, so a crash mid-save leaves the
// previous progress file intact.
type FileManager struct {
	store      *Store
	compressor Compressor
	logger     providers.Logger
}

func NewFileManager(compressor Compressor, store *Store, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	jsonData, err := json.MarshalIndent(f.store.Snapshot(), "", "    ")
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
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

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the store from disk. A missing file is a fresh
// start; a corrupt one is logged and treated as empty rather than failing
// the run, since results are rebuilt incrementally anyway.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if isZstd(data) {
		zc, err := NewZstdCompressor()
		if err != nil {
			return err
		}
		defer zc.Close()
		if data, err = zc.Decompress(data); err != nil {
			f.logger.Warnf(providers.TypeStore, "Progress file %s is not readable, starting empty: %v", fileName, err)
			return nil
		}
	}

	var records map[string]*models.PostRecord
	if err := json.Unmarshal(data, &records); err != nil {
		f.logger.Warnf(providers.TypeStore, "Progress file %s is corrupt, starting empty: %v", fileName, err)
		return nil
	}

	// Older files keyed records by url without repeating it inside.
	for url, rec := range records {
		if rec.URL == "" {
			rec.URL = url
		}
	}

	f.store.Replace(records)
	return nil
}
