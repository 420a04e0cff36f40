// Package version implements content change detection and semantic version
// advancement for pipeline runs.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-exercisedb/internal/markdown"
)

// InitialVersion seeds the dataset version on the first run.
const InitialVersion = "1.0.0"

var ErrVersionInvalid = errors.New("version: not a semantic version triple")

// Info is the persisted version record. It is mutated only by pipeline runs;
// the patch component increments exactly when source content changed.
type Info struct {
	Version       string    `json:"version"`
	LastUpdated   time.Time `json:"lastUpdated"`
	ExerciseCount int       `json:"exerciseCount"`
}

// Ledger maps source paths to their last-seen content digests. It is the
// sole input to change detection and is persisted every run.
type Ledger map[string]string

// ComputeLedger digests the sources processed this run. Loader checksums are
// reused so content is hashed exactly once per run.
func ComputeLedger(sources []*markdown.SourceFile) Ledger {
	next := make(Ledger, len(sources))
	for _, source := range sources {
		next[source.Path] = source.Checksum
	}
	return next
}

// Changed reports whether any digest in next differs from, or is absent
// from, the prior ledger. Removed sources also count as change.
func Changed(prev, next Ledger) bool {
	if len(prev) != len(next) {
		return true
	}
	for path, digest := range next {
		if prev[path] != digest {
			return true
		}
	}
	return false
}

// Advance produces the version record for this run. A changed run bumps only
// the patch component of the prior version; an unchanged run keeps it. The
// timestamp and record count are refreshed either way.
func Advance(prev Info, changed bool, exerciseCount int, now time.Time) (Info, error) {
	current := strings.TrimSpace(prev.Version)
	if current == "" {
		current = InitialVersion
	}

	next := current
	if changed && strings.TrimSpace(prev.Version) != "" {
		bumped, err := bumpPatch(current)
		if err != nil {
			return Info{}, err
		}
		next = bumped
	}

	return Info{
		Version:       next,
		LastUpdated:   now.UTC(),
		ExerciseCount: exerciseCount,
	}, nil
}

// bumpPatch increments the patch component, leaving major and minor untouched.
func bumpPatch(v string) (string, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrVersionInvalid, v)
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrVersionInvalid, v)
	}
	return fmt.Sprintf("%s.%s.%d", parts[0], parts[1], patch+1), nil
}
