package progress

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"instarecipe/internal/models"
	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

// BackupManager keeps a short trail of compressed progress snapshots. One
// backup is taken per run before the first save, so a run that corrupts the
// progress file can always be rolled back by hand. Old backups beyond the
// configured count are pruned.
type BackupManager struct {
	keep   int
	logger providers.Logger
	now    func() time.Time
}

func NewBackupManager(conf *structures.Config, logger providers.Logger) *BackupManager {
	return &BackupManager{
		keep:   conf.Progress.Backups,
		logger: logger,
		now:    time.Now,
	}
}

// Rotate snapshots the current progress file into <file>.bak.<timestamp>.zst
// and prunes the oldest backups beyond the keep count. A missing progress
// file or a keep count of zero is a no-op.
func (b *BackupManager) Rotate(fileName string) error {
	if b.keep <= 0 {
		return nil
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if !isZstd(data) {
		zc, err := NewZstdCompressor()
		if err != nil {
			return err
		}
		defer zc.Close()
		if data, err = zc.Compress(data); err != nil {
			return err
		}
	}

	backupPath := fmt.Sprintf("%s.bak.%s.zst", fileName, b.now().Format(models.TimestampLayout))
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return err
	}
	b.logger.Infof(providers.TypeStore, "Progress backup written to %s", backupPath)

	return b.prune(fileName)
}

func (b *BackupManager) prune(fileName string) error {
	backups, err := filepath.Glob(fileName + ".bak.*.zst")
	if err != nil {
		return err
	}
	if len(backups) <= b.keep {
		return nil
	}

	// Timestamps sort lexicographically, oldest first.
	sort.Strings(backups)
	for _, old := range backups[:len(backups)-b.keep] {
		if err := os.Remove(old); err != nil {
			b.logger.Warnf(providers.TypeStore, "Could not prune backup %s: %v", old, err)
		}
	}
	return nil
}
