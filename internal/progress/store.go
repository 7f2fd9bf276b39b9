package progress

import (
	"sync"

	"instarecipe/internal/models"
)

// Store is the in-memory url → PostRecord map behind the progress file.
// All mutation goes through the store so concurrent readers see a
// consistent view.
type Store struct {
	mu      sync.RWMutex
	records map[string]*models.PostRecord
}

func NewStore() *Store {
	return &Store{records: make(map[string]*models.PostRecord)}
}

func (s *Store) Get(url string) (*models.PostRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[url]
	return rec, ok
}

func (s *Store) Put(rec *models.PostRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.URL] = rec
}

// Ensure returns the record for url, creating a blank one when the url is
// new. Existing records keep their caption and results untouched.
func (s *Store) Ensure(url, username string, addedTime int64) *models.PostRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[url]; ok {
		return rec
	}
	rec := &models.PostRecord{URL: url, Username: username, AddedTime: addedTime}
	s.records[url] = rec
	return rec
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Processed counts records with at least one accepted model result.
func (s *Store) Processed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, rec := range s.records {
		if rec.Processed() {
			n++
		}
	}
	return n
}

// Snapshot returns the current record map. Records are shared, not copied;
// callers mutate them only from the single orchestrator goroutine.
func (s *Store) Snapshot() map[string]*models.PostRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*models.PostRecord, len(s.records))
	for k, v := range s.records {
		out[k] = v
	}
	return out
}

// Replace swaps the entire record map, used when loading from disk.
func (s *Store) Replace(records map[string]*models.PostRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if records == nil {
		records = make(map[string]*models.PostRecord)
	}
	s.records = records
}
