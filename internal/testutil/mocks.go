package testutil

import (
	"context"
	"sync"
	"time"

	"instarecipe/internal/models"
	"instarecipe/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether any entry with the given level was recorded.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockResolver implements fetch.Resolver with injectable behavior.
type MockResolver struct {
	mu           sync.Mutex
	ResolveFn    func(ctx context.Context, postURL string) (string, string, error)
	ResolveCalls []string
}

func (m *MockResolver) Resolve(ctx context.Context, postURL string) (string, string, error) {
	m.mu.Lock()
	m.ResolveCalls = append(m.ResolveCalls, postURL)
	m.mu.Unlock()
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, postURL)
	}
	return "caption for " + postURL, "https://example.com/thumb.jpg", nil
}

func (m *MockResolver) Close() {}

// MockProcessor implements llm.Processor with injectable behavior.
type MockProcessor struct {
	mu           sync.Mutex
	ProcessFn    func(ctx context.Context, caption, postURL, model string) (*models.Recipe, float64, error)
	ProcessCalls []ProcessCall
}

type ProcessCall struct {
	Caption string
	PostURL string
	Model   string
}

func (m *MockProcessor) Name() string { return "mock" }

func (m *MockProcessor) Process(ctx context.Context, caption, postURL, model string) (*models.Recipe, float64, error) {
	m.mu.Lock()
	m.ProcessCalls = append(m.ProcessCalls, ProcessCall{Caption: caption, PostURL: postURL, Model: model})
	m.mu.Unlock()
	if m.ProcessFn != nil {
		return m.ProcessFn(ctx, caption, postURL, model)
	}
	return &models.Recipe{
		Title:       "Mock Recipe",
		Ingredients: []models.IngredientGroup{{Items: []models.Ingredient{{Name: "Salz"}}}},
		Steps:       []string{},
		SourceURL:   postURL,
	}, 0.1, nil
}

func (m *MockProcessor) Close() {}

// Calls returns a copy of the recorded process calls.
func (m *MockProcessor) Calls() []ProcessCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ProcessCall, len(m.ProcessCalls))
	copy(out, m.ProcessCalls)
	return out
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu             sync.Mutex
	FetchAttempts  int
	FetchFailures  int
	ModelAttempts  map[string]int
	ModelSuccesses map[string]int
	ModelFailures  map[string]int
	CacheHits      int
	CacheMisses    int
	PostsTotal     int
	ProcessedPosts int
}

func (m *MockMetrics) inc(bucket *map[string]int, model string) {
	if *bucket == nil {
		*bucket = make(map[string]int)
	}
	(*bucket)[model]++
}

func (m *MockMetrics) IncFetchAttempts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchAttempts++
}

func (m *MockMetrics) IncFetchFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchFailures++
}

func (m *MockMetrics) IncModelAttempts(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inc(&m.ModelAttempts, model)
}

func (m *MockMetrics) IncModelSuccesses(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inc(&m.ModelSuccesses, model)
}

func (m *MockMetrics) IncModelFailures(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inc(&m.ModelFailures, model)
}

func (m *MockMetrics) ObserveModelDuration(_ string, _ float64)   {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) SetPostsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostsTotal = count
}

func (m *MockMetrics) SetProcessedPosts(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProcessedPosts = count
}

// MockCompressor implements progress.Compressor with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
