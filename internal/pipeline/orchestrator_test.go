package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instarecipe/internal/caption"
	"instarecipe/internal/collection"
	"instarecipe/internal/models"
	"instarecipe/internal/progress"
	"instarecipe/internal/structures"
	"instarecipe/internal/testutil"
)

type mockRenderer struct {
	mu          sync.Mutex
	PostCalls   []string
	IndexCalls  int
	RenderError error
}

func (m *mockRenderer) RenderPost(rec *models.PostRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostCalls = append(m.PostCalls, rec.URL)
	return m.RenderError
}

func (m *mockRenderer) RenderIndex(_ map[string]*models.PostRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IndexCalls++
	return m.RenderError
}

type mockExporter struct {
	mu             sync.Mutex
	ExportCalls    []int
	BenchmarkCalls int
}

func (m *mockExporter) Export(records map[string]*models.PostRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExportCalls = append(m.ExportCalls, len(records))
	return nil
}

func (m *mockExporter) WriteBenchmarks(_ map[string]*models.PostRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BenchmarkCalls++
	return nil
}

type countingPersister struct {
	mu    sync.Mutex
	Saves int
	Err   error
}

func (p *countingPersister) SaveToFile(_ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Saves++
	return p.Err
}

type testRig struct {
	conf      *structures.Config
	store     *progress.Store
	resolver  *testutil.MockResolver
	processor *testutil.MockProcessor
	renderer  *mockRenderer
	exporter  *mockExporter
	persister *countingPersister
	metrics   *testutil.MockMetrics
	orch      *Orchestrator
}

func newTestRig(t *testing.T, modelList []string, batchSize int) *testRig {
	t.Helper()
	conf := &structures.Config{
		Progress: structures.ProgressConfig{FilePath: filepath.Join(t.TempDir(), "progress.json")},
		LLM: structures.LLMConfig{
			Models:      modelList,
			MaxAttempts: 3,
			RetryDelay:  time.Second,
		},
		Batch: structures.BatchConfig{Size: batchSize},
	}
	rig := &testRig{
		conf:      conf,
		store:     progress.NewStore(),
		resolver:  &testutil.MockResolver{},
		processor: &testutil.MockProcessor{},
		renderer:  &mockRenderer{},
		exporter:  &mockExporter{},
		persister: &countingPersister{},
		metrics:   &testutil.MockMetrics{},
	}
	rig.orch = NewOrchestrator(conf, &testutil.MockLogger{}, rig.metrics, rig.store,
		rig.persister, rig.resolver, rig.processor, caption.NewNormalizer(nil),
		rig.renderer, rig.exporter)
	rig.orch.retry.Sleep = func(time.Duration) {}
	rig.orch.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return rig
}

func twoPosts() []collection.Post {
	return []collection.Post{
		{URL: "https://www.instagram.com/p/one/", Username: "a"},
		{URL: "https://www.instagram.com/p/two/", Username: "b"},
	}
}

func TestOrchestrator_ColdStart(t *testing.T) {
	rig := newTestRig(t, []string{"m1", "m2"}, 10)

	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	assert.Len(t, rig.resolver.ResolveCalls, 2)
	assert.Len(t, rig.processor.Calls(), 4)

	for _, url := range []string{"https://www.instagram.com/p/one/", "https://www.instagram.com/p/two/"} {
		rec, ok := rig.store.Get(url)
		require.True(t, ok)
		assert.NotEmpty(t, rec.Caption)
		assert.NotEmpty(t, rec.CleanedCaption)
		assert.True(t, rec.HasResult("m1"))
		assert.True(t, rec.HasResult("m2"))
	}

	// one persist per caption, one per accepted result
	assert.Equal(t, 6, rig.persister.Saves)
	assert.Len(t, rig.renderer.PostCalls, 2)
	assert.Equal(t, 2, rig.metrics.PostsTotal)
	assert.Equal(t, 2, rig.metrics.ProcessedPosts)
	// batch flush plus final flush
	assert.Equal(t, []int{2, 2}, rig.exporter.ExportCalls)
}

func TestOrchestrator_SecondRunDoesNothing(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)
	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	resolves := len(rig.resolver.ResolveCalls)
	processes := len(rig.processor.Calls())

	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	assert.Equal(t, resolves, len(rig.resolver.ResolveCalls))
	assert.Equal(t, processes, len(rig.processor.Calls()))
}

func TestOrchestrator_ForcedReprocessKeepsHistory(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)
	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	rec, _ := rig.store.Get("https://www.instagram.com/p/one/")
	first := rec.Results["m1"].Current
	require.NotNil(t, first)

	rig.conf.Force.ReprocessModels = true
	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	h := rec.Results["m1"]
	require.Len(t, h.History, 1)
	assert.Same(t, first, h.History[0])
	assert.NotSame(t, first, h.Current)
}

func TestOrchestrator_ResolverFailureSkipsPost(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)
	rig.resolver.ResolveFn = func(_ context.Context, postURL string) (string, string, error) {
		if postURL == "https://www.instagram.com/p/one/" {
			return "", "", errors.New("blocked")
		}
		return "caption", "", nil
	}

	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	one, _ := rig.store.Get("https://www.instagram.com/p/one/")
	assert.Empty(t, one.Caption)
	assert.False(t, one.HasResult("m1"))

	two, _ := rig.store.Get("https://www.instagram.com/p/two/")
	assert.True(t, two.HasResult("m1"))

	assert.Equal(t, 1, rig.metrics.FetchFailures)
	// only the post with a caption reaches the model
	assert.Len(t, rig.processor.Calls(), 1)
}

func TestOrchestrator_ExhaustedRetries(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)
	rig.processor.ProcessFn = func(_ context.Context, _, postURL, _ string) (*models.Recipe, float64, error) {
		if postURL == "https://www.instagram.com/p/one/" {
			return nil, 0, errors.New("malformed output")
		}
		return &models.Recipe{
			Title:       "Ok",
			Ingredients: []models.IngredientGroup{{Items: []models.Ingredient{{Name: "Salz"}}}},
		}, 0.2, nil
	}

	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	one, _ := rig.store.Get("https://www.instagram.com/p/one/")
	assert.False(t, one.HasResult("m1"))
	assert.Nil(t, one.Results["m1"])

	two, _ := rig.store.Get("https://www.instagram.com/p/two/")
	assert.True(t, two.HasResult("m1"))

	assert.Equal(t, 4, rig.metrics.ModelAttempts["m1"])
	assert.Equal(t, 1, rig.metrics.ModelFailures["m1"])
	assert.Equal(t, 1, rig.metrics.ModelSuccesses["m1"])
}

func TestOrchestrator_SkipsKnownCaptions(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)
	rec := rig.store.Ensure("https://www.instagram.com/p/one/", "a", 0)
	rec.Caption = "already here"

	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	assert.Equal(t, []string{"https://www.instagram.com/p/two/"}, rig.resolver.ResolveCalls)
}

func TestOrchestrator_ForceRefetchCaptions(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)
	rec := rig.store.Ensure("https://www.instagram.com/p/one/", "a", 0)
	rec.Caption = "stale"
	rec.CleanedCaption = "stale"
	rig.conf.Force.RefetchCaptions = true

	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	assert.Len(t, rig.resolver.ResolveCalls, 2)
	fresh, _ := rig.store.Get("https://www.instagram.com/p/one/")
	assert.NotEqual(t, "stale", fresh.Caption)
	assert.NotEqual(t, "stale", fresh.CleanedCaption)
}

func TestOrchestrator_UnchangedPostsAreNotReRendered(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)
	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	renders := len(rig.renderer.PostCalls)
	indexes := rig.renderer.IndexCalls
	require.Equal(t, 2, renders)

	// all cache hits, nothing to rewrite
	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))
	assert.Len(t, rig.renderer.PostCalls, renders)
	assert.Equal(t, indexes, rig.renderer.IndexCalls)

	rig.conf.Force.RegeneratePages = true
	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))
	assert.Len(t, rig.renderer.PostCalls, renders+2)
	assert.Equal(t, indexes+1, rig.renderer.IndexCalls)
}

func TestOrchestrator_CaptionCleanedToNothingSkipsModels(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)
	rig.resolver.ResolveFn = func(_ context.Context, _ string) (string, string, error) {
		return "#food #yummy @someaccount", "", nil
	}

	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	assert.Empty(t, rig.processor.Calls())
	rec, _ := rig.store.Get("https://www.instagram.com/p/one/")
	assert.False(t, rec.HasResult("m1"))
}

func TestOrchestrator_CanceledContext(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rig.orch.Run(ctx, twoPosts())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rig.resolver.ResolveCalls)
}

func TestOrchestrator_BatchesFlushSeparately(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 1)

	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	// one export per batch plus the final one
	assert.Equal(t, []int{1, 2, 2}, rig.exporter.ExportCalls)
	assert.Equal(t, 3, rig.exporter.BenchmarkCalls)
}

func TestOrchestrator_PersistedStateSurvivesReload(t *testing.T) {
	rig := newTestRig(t, []string{"m1"}, 10)

	fm := progress.NewFileManager(&progress.NoopCompressor{}, rig.store, &testutil.MockLogger{})
	rig.orch.persister = fm

	require.NoError(t, rig.orch.Run(context.Background(), twoPosts()))

	store2 := progress.NewStore()
	fm2 := progress.NewFileManager(&progress.NoopCompressor{}, store2, &testutil.MockLogger{})
	require.NoError(t, fm2.LoadFromFile(rig.conf.Progress.FilePath))

	rec, ok := store2.Get("https://www.instagram.com/p/one/")
	require.True(t, ok)
	assert.True(t, rec.HasResult("m1"))
	assert.Equal(t, "2025-06-01_12-00-00", rec.Results["m1"].Current.Timestamp)
}
