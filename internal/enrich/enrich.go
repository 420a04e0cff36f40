// Package enrich derives presentation metadata from parsed exercise
// documents: asset reference normalization, difficulty ordinals, display
// names, duration estimates, and thumbnail references.
package enrich

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-exercisedb/exercise"
	"github.com/goliatone/go-exercisedb/internal/markdown"
)

var (
	ErrIDRequired   = errors.New("enrich: exercise id is required")
	ErrIDInvalid    = errors.New("enrich: exercise id is not a valid slug")
	ErrNameRequired = errors.New("enrich: exercise name is required")
)

// Config captures the enrichment knobs.
type Config struct {
	// BaseURL is the absolute location parent-relative asset references are
	// rewritten against. Empty leaves climbing references untouched.
	BaseURL string
	// ThumbnailSuffix is inserted before the extension of each derived
	// thumbnail reference. Defaults to "-thumb".
	ThumbnailSuffix string
	// BaseSeconds seeds the estimated duration. Defaults to 30.
	BaseSeconds int
}

// Enricher converts parser output into canonical exercise records. The clock
// is injectable so tests can pin updatedAt.
type Enricher struct {
	cfg Config
	now func() time.Time
}

// New constructs an Enricher with the supplied configuration.
func New(cfg Config, opts ...Option) *Enricher {
	if strings.TrimSpace(cfg.ThumbnailSuffix) == "" {
		cfg.ThumbnailSuffix = "-thumb"
	}
	if cfg.BaseSeconds <= 0 {
		cfg.BaseSeconds = 30
	}

	e := &Enricher{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option customises Enricher construction.
type Option func(*Enricher)

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) {
		if now != nil {
			e.now = now
		}
	}
}

// Enrich builds the canonical record for a parsed document. The returned
// record still needs schema validation before it may be persisted.
func (e *Enricher) Enrich(doc *markdown.Document) (*exercise.Exercise, error) {
	id := strings.TrimSpace(doc.Meta.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: path=%s", ErrIDRequired, doc.Path)
	}
	if !exercise.IsValidID(id) {
		return nil, fmt.Errorf("%w: id=%s path=%s", ErrIDInvalid, id, doc.Path)
	}
	name := strings.TrimSpace(doc.Meta.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: id=%s path=%s", ErrNameRequired, id, doc.Path)
	}

	images := e.rewriteAssets(doc.Images)
	videos := e.rewriteAssets(doc.Videos)

	record := &exercise.Exercise{
		ID:               id,
		Name:             name,
		Category:         strings.TrimSpace(doc.Meta.Category),
		PrimaryMuscles:   doc.Meta.PrimaryMuscles,
		SecondaryMuscles: doc.Meta.SecondaryMuscles,
		Equipment:        doc.Meta.Equipment,
		Difficulty:       strings.TrimSpace(doc.Meta.Difficulty),
		Tags:             doc.Meta.Tags,
		Description:      doc.SectionText("description"),
		Instructions:     doc.SectionItems("instructions"),
		Tips:             doc.SectionItems("tips"),
		Variations:       doc.SectionItems("variations"),
		Images:           images,
		Videos:           videos,
		UpdatedAt:        e.now().UTC(),
	}

	record.Mobile = &exercise.Mobile{
		DisplayOrder:        exercise.DifficultyOrder(record.Difficulty),
		CategoryDisplayName: exercise.CategoryDisplayName(record.Category),
		EstimatedTime:       e.estimatedTime(record.Difficulty),
		HasVideo:            len(videos) > 0,
		Thumbnails:          e.thumbnails(images),
	}

	return record, nil
}

// estimatedTime returns round(baseSeconds x difficulty multiplier) seconds.
func (e *Enricher) estimatedTime(difficulty string) int {
	return int(math.Round(float64(e.cfg.BaseSeconds) * exercise.DifficultyMultiplier(difficulty)))
}

// rewriteAssets resolves references that climb out of the document directory
// against the configured base URL. Already-absolute and same-directory forms
// pass through untouched.
func (e *Enricher) rewriteAssets(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = e.rewriteAsset(ref)
	}
	return out
}

func (e *Enricher) rewriteAsset(ref string) string {
	if e.cfg.BaseURL == "" || !strings.HasPrefix(ref, "../") {
		return ref
	}
	rel := ref
	for strings.HasPrefix(rel, "../") {
		rel = rel[len("../"):]
	}
	joined, err := url.JoinPath(e.cfg.BaseURL, rel)
	if err != nil {
		return ref
	}
	return joined
}

// thumbnails derives one thumbnail reference per image, preserving index
// correspondence.
func (e *Enricher) thumbnails(images []string) []string {
	if len(images) == 0 {
		return nil
	}
	out := make([]string, len(images))
	for i, image := range images {
		out[i] = ThumbnailName(image, e.cfg.ThumbnailSuffix)
	}
	return out
}

// ThumbnailName inserts suffix immediately before the file extension of ref.
// References without an extension get the suffix appended.
func ThumbnailName(ref, suffix string) string {
	ext := path.Ext(ref)
	return ref[:len(ref)-len(ext)] + suffix + ext
}
