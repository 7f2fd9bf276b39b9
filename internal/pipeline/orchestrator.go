package pipeline

import (
	"context"
	"time"

	"instarecipe/internal/caption"
	"instarecipe/internal/collection"
	"instarecipe/internal/fetch"
	"instarecipe/internal/llm"
	"instarecipe/internal/models"
	"instarecipe/internal/progress"
	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

// Renderer regenerates the static site from processed records.
type Renderer interface {
	RenderPost(rec *models.PostRecord) error
	RenderIndex(records map[string]*models.PostRecord) error
}

// Exporter writes the final recipe export and the validation benchmarks.
type Exporter interface {
	Export(records map[string]*models.PostRecord) error
	WriteBenchmarks(records map[string]*models.PostRecord) error
}

// Persister saves the progress store to disk.
type Persister interface {
	SaveToFile(fileName string) error
}

// Orchestrator drives the incremental pipeline: per batch it resolves
// missing captions first, then runs every configured model over the batch,
// then flushes rendering, export and benchmarks. Progress is persisted
// after every resolved caption and every accepted result, so an aborted
// run resumes where it stopped.
type Orchestrator struct {
	conf       *structures.Config
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	store      *progress.Store
	persister  Persister
	resolver   fetch.Resolver
	processor  llm.Processor
	normalizer *caption.Normalizer
	renderer   Renderer
	exporter   Exporter
	retry      llm.RetryPolicy
	now        func() time.Time
	changed    map[string]struct{}
}

func NewOrchestrator(
	conf *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	store *progress.Store,
	persister Persister,
	resolver fetch.Resolver,
	processor llm.Processor,
	normalizer *caption.Normalizer,
	renderer Renderer,
	exporter Exporter,
) *Orchestrator {
	return &Orchestrator{
		conf:       conf,
		logger:     logger,
		metrics:    metrics,
		store:      store,
		persister:  persister,
		resolver:   resolver,
		processor:  processor,
		normalizer: normalizer,
		renderer:   renderer,
		exporter:   exporter,
		retry:      llm.NewRetryPolicy(conf.LLM.MaxAttempts, conf.LLM.RetryDelay),
		now:        time.Now,
	}
}

// Run processes all posts batch by batch. It returns early only on context
// cancellation; individual fetch or model failures are logged and skipped.
func (o *Orchestrator) Run(ctx context.Context, posts []collection.Post) error {
	o.changed = make(map[string]struct{})
	for _, p := range posts {
		o.store.Ensure(p.URL, p.Username, p.AddedTime)
	}
	o.metrics.SetPostsTotal(len(posts))

	batchSize := o.conf.Batch.Size
	if batchSize <= 0 {
		batchSize = len(posts)
	}

	for start := 0; start < len(posts); start += batchSize {
		end := min(start+batchSize, len(posts))
		batch := posts[start:end]

		o.logger.Infof(providers.TypeApp, "Processing batch %d: posts %d-%d of %d",
			start/batchSize+1, start+1, end, len(posts))

		if err := o.resolveCaptions(ctx, batch, start, len(posts)); err != nil {
			return err
		}
		if err := o.runModels(ctx, batch, start, len(posts)); err != nil {
			return err
		}
		o.flush(batch)
		o.metrics.SetProcessedPosts(o.store.Processed())
	}

	o.finalFlush()
	return nil
}

func (o *Orchestrator) resolveCaptions(ctx context.Context, batch []collection.Post, offset, total int) error {
	for i, p := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, _ := o.store.Get(p.URL)
		if rec.Caption != "" && !o.conf.Force.RefetchCaptions {
			continue
		}

		o.logger.Infof(providers.TypeFetch, "Fetching details for post %d/%d: %s", offset+i+1, total, p.URL)
		o.metrics.IncFetchAttempts()

		capText, thumb, err := o.resolver.Resolve(ctx, p.URL)
		if err != nil {
			o.metrics.IncFetchFailures()
			o.logger.Warnf(providers.TypeFetch, "Could not resolve %s: %v", p.URL, err)
			continue
		}

		rec.Caption = capText
		rec.ThumbnailURL = thumb
		// The cleaned caption belongs to the raw one it was derived from.
		rec.CleanedCaption = ""
		o.changed[p.URL] = struct{}{}
		o.persist()
	}
	return nil
}

func (o *Orchestrator) runModels(ctx context.Context, batch []collection.Post, offset, total int) error {
	for _, model := range o.conf.LLM.Models {
		o.logger.Infof(providers.TypeLLM, "Applying model %q to the current batch", model)

		for i, p := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, _ := o.store.Get(p.URL)

			if rec.HasResult(model) && !o.conf.Force.ReprocessModels {
				o.logger.Debugf(providers.TypeLLM, "Skipping cached result for %s with %s", p.URL, model)
				continue
			}
			if rec.Caption == "" {
				o.logger.Warnf(providers.TypeLLM, "No caption for post %d/%d, cannot process", offset+i+1, total)
				continue
			}

			if rec.CleanedCaption == "" {
				rec.CleanedCaption = o.normalizer.Normalize(rec.Caption)
			}
			if rec.CleanedCaption == "" {
				o.logger.Warnf(providers.TypeLLM, "Caption of %s is empty after cleaning, skipping", p.URL)
				continue
			}

			o.logger.Infof(providers.TypeLLM, "Processing post %d/%d with %s", offset+i+1, total, model)

			var recipe *models.Recipe
			var secs float64
			err := o.retry.Do(ctx, func() error {
				o.metrics.IncModelAttempts(model)
				var perr error
				recipe, secs, perr = o.processor.Process(ctx, rec.CleanedCaption, p.URL, model)
				if perr != nil {
					o.logger.Warnf(providers.TypeLLM, "Model %s failed for %s: %v", model, p.URL, perr)
				}
				return perr
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				o.metrics.IncModelFailures(model)
				o.logger.Errorf(providers.TypeLLM, "Failed to structure recipe from %s with %s after %d attempts",
					p.URL, model, o.retry.MaxAttempts)
				continue
			}

			now := o.now()
			snap := models.NewResultSnapshot(recipe, secs, now)
			h := rec.Result(model)
			if o.conf.Force.ReprocessModels && h.Current != nil {
				h.Promote(snap, now)
				o.logger.Infof(providers.TypeLLM, "Added new version for %s on %s, total versions: %d",
					model, p.URL, len(h.History)+1)
			} else {
				h.Current = snap
			}

			o.metrics.IncModelSuccesses(model)
			o.metrics.ObserveModelDuration(model, secs)
			o.changed[p.URL] = struct{}{}
			o.persist()
		}
	}
	return nil
}

// flush regenerates pages, export and benchmarks after a batch so partial
// runs still leave a usable site behind. Pages are only rewritten for posts
// whose caption or results changed this run, unless regeneration is forced.
func (o *Orchestrator) flush(batch []collection.Post) {
	rendered := 0
	for _, p := range batch {
		rec, _ := o.store.Get(p.URL)
		if len(rec.Results) == 0 {
			continue
		}
		if _, ok := o.changed[p.URL]; !ok && !o.conf.Force.RegeneratePages {
			continue
		}
		rendered++
		if err := o.renderer.RenderPost(rec); err != nil {
			o.logger.Errorf(providers.TypeRender, "Render %s: %v", p.URL, err)
		}
	}

	processed := o.processedRecords()
	if len(processed) == 0 {
		return
	}
	if rendered > 0 {
		if err := o.renderer.RenderIndex(processed); err != nil {
			o.logger.Errorf(providers.TypeRender, "Render index: %v", err)
		}
	}
	if err := o.exporter.Export(processed); err != nil {
		o.logger.Errorf(providers.TypeStore, "Export: %v", err)
	}
	if err := o.exporter.WriteBenchmarks(processed); err != nil {
		o.logger.Errorf(providers.TypeStore, "Benchmarks: %v", err)
	}
}

func (o *Orchestrator) finalFlush() {
	o.logger.Infof(providers.TypeApp, "All post processing has been completed")
	processed := o.processedRecords()
	if len(processed) == 0 {
		return
	}
	if err := o.exporter.Export(processed); err != nil {
		o.logger.Errorf(providers.TypeStore, "Final export: %v", err)
	}
	if err := o.exporter.WriteBenchmarks(processed); err != nil {
		o.logger.Errorf(providers.TypeStore, "Final benchmarks: %v", err)
	}
}

func (o *Orchestrator) processedRecords() map[string]*models.PostRecord {
	all := o.store.Snapshot()
	out := make(map[string]*models.PostRecord, len(all))
	for url, rec := range all {
		if len(rec.Results) > 0 {
			out[url] = rec
		}
	}
	return out
}

// persist saves progress, logging failures rather than aborting the run.
func (o *Orchestrator) persist() {
	start := time.Now()
	if err := o.persister.SaveToFile(o.conf.Progress.FilePath); err != nil {
		o.logger.Errorf(providers.TypeStore, "Failed to save progress to %s: %v", o.conf.Progress.FilePath, err)
		return
	}
	o.metrics.ObservePersistenceDuration(time.Since(start))
}
