//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"instarecipe/internal"
	"instarecipe/internal/collection"
	"instarecipe/internal/export"
	"instarecipe/internal/fetch"
	"instarecipe/internal/llm"
	"instarecipe/internal/pipeline"
	"instarecipe/internal/progress"
	"instarecipe/internal/providers"
	"instarecipe/internal/render"
	"instarecipe/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		collection.NewParser,
		progress.NewStore,
		progress.NewCompressor,
		progress.NewFileManager,
		progress.NewBackupManager,
		fetch.NewResolver,
		llm.NewProcessor,
		provideNormalizer,
		render.NewImageFetcher,
		render.NewRenderer,
		export.NewWriter,
		pipeline.NewOrchestrator,
		internal.NewApp,

		wire.Bind(new(pipeline.Renderer), new(*render.Renderer)),
		wire.Bind(new(pipeline.Exporter), new(*export.Writer)),
		wire.Bind(new(pipeline.Persister), new(*progress.FileManager)),
	)

	return nil, nil
}
