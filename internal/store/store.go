// Package store persists and reads the versioned dataset artifacts. Writes
// happen in one deterministic order (per-record files, indexes, thumbnail
// manifest, aggregate, ledger, version) so the aggregate is never ahead of
// what readers can find per-record, and the version file always references a
// fully committed snapshot. Every write is atomic; two concurrent pipeline
// runs against the same directory are not safe and must be serialized by the
// caller.
package store

import (
	"errors"
	"time"

	"github.com/goliatone/go-exercisedb/exercise"
	"github.com/goliatone/go-exercisedb/internal/version"
)

const (
	aggregateFile   = "exercises.json"
	versionFile     = "version.json"
	ledgerFile      = ".content-hashes.json"
	recordDir       = "exercises"
	indexDir        = "index"
	thumbnailDir    = "thumbnails"
	categoriesIndex = "categories.json"
	musclesIndex    = "muscles.json"
	equipmentIndex  = "equipment.json"
	manifestFile    = "manifest.json"
)

var ErrSnapshotMissing = errors.New("store: no persisted snapshot")

// Aggregate is the single-file dataset artifact consumed by the query engine.
type Aggregate struct {
	Version     string              `json:"version"`
	LastUpdated time.Time           `json:"lastUpdated"`
	Count       int                 `json:"count"`
	Exercises   []exercise.Exercise `json:"exercises"`
}

// Snapshot is the committed dataset a serving process reads at startup.
type Snapshot struct {
	Version   version.Info
	Exercises []exercise.Exercise
}
