// Package pipeline orchestrates one conversion run: discover sources, parse,
// enrich, validate, compute the version delta, and persist the snapshot.
// Runs are sequential and single-writer; concurrent runs against the same
// output directory must be serialized externally.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-exercisedb/exercise"
	"github.com/goliatone/go-exercisedb/internal/enrich"
	"github.com/goliatone/go-exercisedb/internal/logging"
	"github.com/goliatone/go-exercisedb/internal/markdown"
	"github.com/goliatone/go-exercisedb/internal/store"
	"github.com/goliatone/go-exercisedb/internal/validation"
	"github.com/goliatone/go-exercisedb/internal/version"
	"github.com/goliatone/go-exercisedb/pkg/interfaces"
)

var ErrDuplicateID = errors.New("pipeline: duplicate exercise id")

// ThumbnailConfig feeds the thumbnail manifest artifact.
type ThumbnailConfig struct {
	Suffix     string
	Dimensions string
}

// Dependencies wires the pipeline stages together.
type Dependencies struct {
	Loader     *markdown.Loader
	Enricher   *enrich.Enricher
	Validator  *validation.Validator
	Writer     *store.Writer
	OutputDir  string
	Thumbnails ThumbnailConfig
	Logger     interfaces.LoggerProvider
}

// Failure records one skipped source file.
type Failure struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// Result summarises a completed run.
type Result struct {
	RunID    string    `json:"runId"`
	Total    int       `json:"total"`
	Valid    int       `json:"valid"`
	Invalid  int       `json:"invalid"`
	Changed  bool      `json:"changed"`
	Version  string    `json:"version"`
	Failures []Failure `json:"failures,omitempty"`
}

// Service executes pipeline runs.
type Service struct {
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

// New constructs a pipeline service.
func New(deps Dependencies, opts ...Option) *Service {
	s := &Service{
		deps:   deps,
		logger: logging.PipelineLogger(deps.Logger),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option customises Service construction.
type Option func(*Service)

// WithClock overrides the run timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Run executes one full pipeline pass. Parse and validation failures are
// per-record and non-fatal; the affected file is skipped, counted invalid,
// and the run continues. I/O failures abort the run.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	logger := logging.WithSourceContext(s.logger, "", "", result.RunID)
	logger.Info("pipeline run started")

	sources, err := s.deps.Loader.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: discover sources: %w", err)
	}
	result.Total = len(sources)

	records := make([]exercise.Exercise, 0, len(sources))
	seen := map[string]string{}
	for _, source := range sources {
		record, err := s.buildRecord(source)
		if err != nil {
			result.Invalid++
			result.Failures = append(result.Failures, Failure{Path: source.Path, Err: err.Error()})
			logging.WithSourceContext(logger, source.Path, "", "").Warn("source skipped", "error", err)
			continue
		}
		if prior, ok := seen[record.ID]; ok {
			result.Invalid++
			err := fmt.Errorf("%w: id=%s first=%s", ErrDuplicateID, record.ID, prior)
			result.Failures = append(result.Failures, Failure{Path: source.Path, Err: err.Error()})
			logging.WithSourceContext(logger, source.Path, record.ID, "").Warn("source skipped", "error", err)
			continue
		}
		seen[record.ID] = source.Path
		records = append(records, *record)
		result.Valid++
	}

	prevLedger, err := store.ReadLedger(s.deps.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read ledger: %w", err)
	}
	prevInfo, _, err := store.ReadVersion(s.deps.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read version: %w", err)
	}

	nextLedger := version.ComputeLedger(sources)
	result.Changed = version.Changed(prevLedger, nextLedger)

	info, err := version.Advance(prevInfo, result.Changed, result.Valid, s.now())
	if err != nil {
		return nil, fmt.Errorf("pipeline: advance version: %w", err)
	}
	result.Version = info.Version

	thumbnails := store.BuildThumbnailManifest(records, s.deps.Thumbnails.Suffix, s.deps.Thumbnails.Dimensions)

	if err := s.deps.Writer.Commit(records, info, nextLedger, thumbnails); err != nil {
		return nil, fmt.Errorf("pipeline: persist snapshot: %w", err)
	}

	logger.Info("pipeline run finished",
		"total", result.Total,
		"valid", result.Valid,
		"invalid", result.Invalid,
		"changed", result.Changed,
		"version", result.Version,
	)
	return result, nil
}

// buildRecord runs the per-file stages: parse, enrich, validate.
func (s *Service) buildRecord(source *markdown.SourceFile) (*exercise.Exercise, error) {
	doc, err := markdown.Parse(source.Path, source.Data)
	if err != nil {
		return nil, err
	}
	record, err := s.deps.Enricher.Enrich(doc)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Validator.Validate(record); err != nil {
		return nil, err
	}
	return record, nil
}
