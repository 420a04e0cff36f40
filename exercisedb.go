// Package exercisedb converts markdown exercise sources into a validated,
// versioned dataset and serves it through a filtered, paginated read API.
package exercisedb

import (
	"context"
	"net/http"
	"os"

	"github.com/goliatone/go-exercisedb/internal/enrich"
	web "github.com/goliatone/go-exercisedb/internal/http"
	"github.com/goliatone/go-exercisedb/internal/logging/gologger"
	"github.com/goliatone/go-exercisedb/internal/markdown"
	"github.com/goliatone/go-exercisedb/internal/pipeline"
	"github.com/goliatone/go-exercisedb/internal/query"
	"github.com/goliatone/go-exercisedb/internal/store"
	"github.com/goliatone/go-exercisedb/internal/validation"
	"github.com/goliatone/go-exercisedb/pkg/interfaces"
)

// PipelineResult exports the pipeline run summary for consumers of the package.
type PipelineResult = pipeline.Result

// QueryEngine exports the read engine contract.
type QueryEngine = query.Engine

// Module is the top level runtime facade wiring the pipeline and the read API.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	pipeline *pipeline.Service
}

// Option customises Module construction.
type Option func(*Module)

// WithLoggerProvider overrides the default go-logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// New constructs a module from the supplied configuration. The schema
// contract is compiled eagerly so misconfiguration fails at startup.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	validator, err := validation.Load(cfg.Content.SchemaPath)
	if err != nil {
		return nil, err
	}

	loader := markdown.NewLoader(os.DirFS(cfg.Content.Dir), markdown.LoaderConfig{
		BasePath:  cfg.Content.Dir,
		Pattern:   cfg.Content.Pattern,
		Recursive: cfg.Content.Recursive,
	})

	enricher := enrich.New(enrich.Config{
		BaseURL:         cfg.Enrich.BaseURL,
		ThumbnailSuffix: cfg.Enrich.ThumbnailSuffix,
		BaseSeconds:     cfg.Enrich.BaseSeconds,
	})

	m.pipeline = pipeline.New(pipeline.Dependencies{
		Loader:    loader,
		Enricher:  enricher,
		Validator: validator,
		Writer:    store.NewWriter(cfg.Store.OutputDir, m.provider),
		OutputDir: cfg.Store.OutputDir,
		Thumbnails: pipeline.ThumbnailConfig{
			Suffix:     cfg.Enrich.ThumbnailSuffix,
			Dimensions: cfg.Enrich.ThumbnailDimensions,
		},
		Logger: m.provider,
	})

	return m, nil
}

// Run executes one pipeline pass.
func (m *Module) Run(ctx context.Context) (*PipelineResult, error) {
	return m.pipeline.Run(ctx)
}

// Pipeline exposes the pipeline service for hosts that schedule runs themselves.
func (m *Module) Pipeline() *pipeline.Service {
	return m.pipeline
}

// QueryEngine loads the last committed snapshot and indexes it for serving.
func (m *Module) QueryEngine() (*QueryEngine, error) {
	snapshot, err := store.LoadSnapshot(m.cfg.Store.OutputDir)
	if err != nil {
		return nil, err
	}
	return query.NewEngine(snapshot), nil
}

// APIHandler returns an http.Handler serving the read API over the last
// committed snapshot.
func (m *Module) APIHandler() (http.Handler, error) {
	engine, err := m.QueryEngine()
	if err != nil {
		return nil, err
	}
	api := web.NewAPI(engine, web.Config{
		Prefix:       m.cfg.APIPrefix,
		DataCacheTTL: m.cfg.Server.DataCacheTTL,
	}, m.provider)
	return api.Handler(), nil
}

// LoggerProvider exposes the module's logger provider for host integrations.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}
