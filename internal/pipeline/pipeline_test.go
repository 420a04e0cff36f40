package pipeline

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-exercisedb/internal/enrich"
	"github.com/goliatone/go-exercisedb/internal/markdown"
	"github.com/goliatone/go-exercisedb/internal/store"
	"github.com/goliatone/go-exercisedb/internal/validation"
)

var fixedNow = time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)

const pushUpDoc = `---
id: push-up
name: Push-Up
category: upper-body
primaryMuscles:
  - chest
secondaryMuscles:
  - triceps
equipment:
  - bodyweight
difficulty: beginner
tags:
  - bodyweight
---

# Push-Up

## Description

A classic upper body movement.

## Instructions

1. Start in a plank position.
2. Lower until your chest nearly touches the floor.
3. Press back up.
`

const squatDoc = `---
id: squat
name: Squat
category: lower-body
primaryMuscles:
  - quads
difficulty: beginner
---

# Squat

## Description

Fundamental lower body movement.
`

const brokenDoc = `---
id: Not A Slug
name: Broken
category: upper-body
primaryMuscles:
  - chest
difficulty: beginner
---

# Broken
`

func newFixture(t *testing.T, sources map[string]string) (*Service, fstest.MapFS, string) {
	t.Helper()

	fsys := fstest.MapFS{}
	for name, body := range sources {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}

	validator, err := validation.Load("../../schema/exercise.schema.json")
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}

	outputDir := t.TempDir()
	service := New(Dependencies{
		Loader:    markdown.NewLoader(fsys, markdown.LoaderConfig{}),
		Enricher:  enrich.New(enrich.Config{}, enrich.WithClock(func() time.Time { return fixedNow })),
		Validator: validator,
		Writer:    store.NewWriter(outputDir, nil),
		OutputDir: outputDir,
		Thumbnails: ThumbnailConfig{
			Suffix:     "-thumb",
			Dimensions: "200x200",
		},
	}, WithClock(func() time.Time { return fixedNow }))

	return service, fsys, outputDir
}

func TestRun_FirstRunSeedsVersion(t *testing.T) {
	service, _, outputDir := newFixture(t, map[string]string{
		"push-up.md": pushUpDoc,
		"squat.md":   squatDoc,
	})

	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected a run id")
	}
	if result.Total != 2 || result.Valid != 2 || result.Invalid != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.Version != "1.0.0" {
		t.Fatalf("expected first run to seed 1.0.0, got %s", result.Version)
	}

	snapshot, err := store.LoadSnapshot(outputDir)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snapshot.Version.ExerciseCount != 2 {
		t.Fatalf("expected count 2, got %d", snapshot.Version.ExerciseCount)
	}
	if snapshot.Exercises[0].ID != "push-up" {
		t.Fatalf("expected push-up first, got %s", snapshot.Exercises[0].ID)
	}
	if snapshot.Exercises[0].Description != "A classic upper body movement." {
		t.Fatalf("unexpected description: %q", snapshot.Exercises[0].Description)
	}
	if got := len(snapshot.Exercises[0].Instructions); got != 3 {
		t.Fatalf("expected 3 instructions, got %d", got)
	}
}

func TestRun_RerunWithoutChangesKeepsVersion(t *testing.T) {
	service, _, _ := newFixture(t, map[string]string{
		"push-up.md": pushUpDoc,
		"squat.md":   squatDoc,
	})

	first, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if second.Changed {
		t.Fatal("expected no change on identical rerun")
	}
	if second.Version != first.Version {
		t.Fatalf("expected version %s to hold, got %s", first.Version, second.Version)
	}
}

func TestRun_ContentChangeBumpsPatch(t *testing.T) {
	service, fsys, _ := newFixture(t, map[string]string{
		"push-up.md": pushUpDoc,
		"squat.md":   squatDoc,
	})

	if _, err := service.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	fsys["squat.md"] = &fstest.MapFile{
		Data: []byte(strings.Replace(squatDoc, "Fundamental", "The fundamental", 1)),
	}

	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected content change to be detected")
	}
	if result.Version != "1.0.1" {
		t.Fatalf("expected patch bump to 1.0.1, got %s", result.Version)
	}
}

func TestRun_InvalidSourceIsSkipped(t *testing.T) {
	service, _, outputDir := newFixture(t, map[string]string{
		"broken.md":  brokenDoc,
		"push-up.md": pushUpDoc,
	})

	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Total != 2 || result.Valid != 1 || result.Invalid != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Failures) != 1 || result.Failures[0].Path != "broken.md" {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}

	snapshot, err := store.LoadSnapshot(outputDir)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snapshot.Exercises) != 1 || snapshot.Exercises[0].ID != "push-up" {
		t.Fatalf("expected only push-up in snapshot, got %+v", snapshot.Exercises)
	}
}

func TestRun_DuplicateIDKeepsFirst(t *testing.T) {
	service, _, outputDir := newFixture(t, map[string]string{
		"push-up.md":   pushUpDoc,
		"push-up-2.md": pushUpDoc,
	})

	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Discovery is path-sorted, so push-up-2.md wins the id and push-up.md is
	// rejected as the duplicate.
	if result.Valid != 1 || result.Invalid != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Failures) != 1 || result.Failures[0].Path != "push-up.md" {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}

	snapshot, err := store.LoadSnapshot(outputDir)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snapshot.Exercises) != 1 {
		t.Fatalf("expected one record, got %d", len(snapshot.Exercises))
	}
}

func TestRun_RemovedSourcePrunesRecord(t *testing.T) {
	service, fsys, outputDir := newFixture(t, map[string]string{
		"push-up.md": pushUpDoc,
		"squat.md":   squatDoc,
	})

	if _, err := service.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	delete(fsys, "squat.md")

	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected removal to register as change")
	}
	if result.Version != "1.0.1" {
		t.Fatalf("expected patch bump, got %s", result.Version)
	}

	snapshot, err := store.LoadSnapshot(outputDir)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snapshot.Exercises) != 1 || snapshot.Exercises[0].ID != "push-up" {
		t.Fatalf("expected squat to be pruned, got %+v", snapshot.Exercises)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	service, _, _ := newFixture(t, map[string]string{"push-up.md": pushUpDoc})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.Run(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
