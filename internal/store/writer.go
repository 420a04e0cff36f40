package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/goliatone/go-exercisedb/exercise"
	"github.com/goliatone/go-exercisedb/internal/logging"
	"github.com/goliatone/go-exercisedb/internal/version"
	"github.com/goliatone/go-exercisedb/pkg/interfaces"
)

// Writer persists the full artifact set for one pipeline run. Any I/O error
// aborts the run; a partially written snapshot must not be served.
type Writer struct {
	dir    string
	logger interfaces.Logger
}

// NewWriter constructs a Writer rooted at the output directory.
func NewWriter(dir string, provider interfaces.LoggerProvider) *Writer {
	return &Writer{
		dir:    filepath.Clean(dir),
		logger: logging.StoreLogger(provider),
	}
}

// Commit writes the run's artifacts in the documented order and prunes
// per-record files whose id is no longer part of the valid set.
func (w *Writer) Commit(records []exercise.Exercise, info version.Info, ledger version.Ledger, thumbnails ThumbnailManifest) error {
	for _, dir := range []string{w.dir, filepath.Join(w.dir, recordDir), filepath.Join(w.dir, indexDir), filepath.Join(w.dir, thumbnailDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: ensure dir %s: %w", dir, err)
		}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	for _, record := range records {
		if err := w.writeJSON(filepath.Join(recordDir, record.ID+".json"), record); err != nil {
			return err
		}
	}

	if err := w.pruneRecords(records); err != nil {
		return err
	}

	if err := w.writeJSON(filepath.Join(indexDir, categoriesIndex), buildIndex(records, func(e exercise.Exercise) []string {
		return []string{e.Category}
	})); err != nil {
		return err
	}
	if err := w.writeJSON(filepath.Join(indexDir, musclesIndex), buildIndex(records, func(e exercise.Exercise) []string {
		return e.Muscles()
	})); err != nil {
		return err
	}
	if err := w.writeJSON(filepath.Join(indexDir, equipmentIndex), buildIndex(records, func(e exercise.Exercise) []string {
		return e.Equipment
	})); err != nil {
		return err
	}

	if err := w.writeJSON(filepath.Join(thumbnailDir, manifestFile), thumbnails); err != nil {
		return err
	}

	aggregate := Aggregate{
		Version:     info.Version,
		LastUpdated: info.LastUpdated,
		Count:       len(records),
		Exercises:   records,
	}
	if err := w.writeJSON(aggregateFile, aggregate); err != nil {
		return err
	}

	if err := w.writeJSON(ledgerFile, ledger); err != nil {
		return err
	}

	// Version last: readers that see the new version can rely on every other
	// artifact being committed already.
	if err := w.writeJSON(versionFile, info); err != nil {
		return err
	}

	w.logger.Debug("snapshot committed", "records", len(records), "version", info.Version)
	return nil
}

// pruneRecords removes per-record files for ids no longer in the valid set,
// keeping the record directory consistent with the aggregate.
func (w *Writer) pruneRecords(records []exercise.Exercise) error {
	keep := make(map[string]struct{}, len(records))
	for _, record := range records {
		keep[record.ID+".json"] = struct{}{}
	}

	entries, err := os.ReadDir(filepath.Join(w.dir, recordDir))
	if err != nil {
		return fmt.Errorf("store: list record dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if _, ok := keep[entry.Name()]; ok {
			continue
		}
		stale := filepath.Join(w.dir, recordDir, entry.Name())
		if err := os.Remove(stale); err != nil {
			return fmt.Errorf("store: prune %s: %w", stale, err)
		}
		w.logger.Info("pruned stale record", "file", entry.Name())
	}
	return nil
}

func (w *Writer) writeJSON(rel string, payload any) error {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", rel, err)
	}
	encoded = append(encoded, '\n')

	target := filepath.Join(w.dir, rel)
	if err := atomic.WriteFile(target, bytes.NewReader(encoded)); err != nil {
		return fmt.Errorf("store: write %s: %w", rel, err)
	}
	return nil
}

// buildIndex groups record ids by the values the extractor yields, with both
// keys and id lists sorted for stable artifacts.
func buildIndex(records []exercise.Exercise, values func(exercise.Exercise) []string) map[string][]string {
	index := map[string][]string{}
	for _, record := range records {
		for _, value := range values(record) {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			index[value] = append(index[value], record.ID)
		}
	}
	for value := range index {
		sort.Strings(index[value])
	}
	return index
}
