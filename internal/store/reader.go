package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-exercisedb/internal/version"
)

// LoadSnapshot reads the last committed aggregate from the output directory.
// A missing aggregate fails with ErrSnapshotMissing.
func LoadSnapshot(dir string) (*Snapshot, error) {
	var aggregate Aggregate
	if err := readJSON(filepath.Join(dir, aggregateFile), &aggregate); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotMissing, dir)
		}
		return nil, err
	}
	return &Snapshot{
		Version: version.Info{
			Version:       aggregate.Version,
			LastUpdated:   aggregate.LastUpdated,
			ExerciseCount: aggregate.Count,
		},
		Exercises: aggregate.Exercises,
	}, nil
}

// ReadVersion loads the persisted version record. The second return reports
// whether one existed; a first pipeline run starts without it.
func ReadVersion(dir string) (version.Info, bool, error) {
	var info version.Info
	if err := readJSON(filepath.Join(dir, versionFile), &info); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return version.Info{}, false, nil
		}
		return version.Info{}, false, err
	}
	return info, true, nil
}

// ReadLedger loads the persisted hash ledger, returning an empty ledger when
// none has been written yet.
func ReadLedger(dir string) (version.Ledger, error) {
	ledger := version.Ledger{}
	if err := readJSON(filepath.Join(dir, ledgerFile), &ledger); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return version.Ledger{}, nil
		}
		return nil, err
	}
	return ledger, nil
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("store: parse %s: %w", path, err)
	}
	return nil
}
