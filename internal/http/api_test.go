package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-exercisedb/exercise"
	"github.com/goliatone/go-exercisedb/internal/query"
	"github.com/goliatone/go-exercisedb/internal/store"
	"github.com/goliatone/go-exercisedb/internal/version"
)

var snapshotTime = time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)

func testHandler(t *testing.T) http.Handler {
	t.Helper()

	snapshot := &store.Snapshot{
		Version: version.Info{Version: "1.2.3", LastUpdated: snapshotTime, ExerciseCount: 2},
		Exercises: []exercise.Exercise{
			{
				ID:             "push-up",
				Name:           "Push-Up",
				Category:       "upper-body",
				PrimaryMuscles: []string{"chest"},
				Equipment:      []string{"bodyweight"},
				Difficulty:     "beginner",
				Tags:           []string{"compound"},
				Description:    "A classic upper body movement.",
				UpdatedAt:      snapshotTime,
			},
			{
				ID:             "squat",
				Name:           "Squat",
				Category:       "lower-body",
				PrimaryMuscles: []string{"quads"},
				Equipment:      []string{"barbell"},
				Difficulty:     "beginner",
				UpdatedAt:      snapshotTime,
			},
		},
	}

	api := NewAPI(query.NewEngine(snapshot), Config{DataCacheTTL: 5 * time.Minute}, nil)
	return api.Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

func TestListExercises(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/exercises?category=upper-body&fields=id,name", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Metadata  query.PageMeta   `json:"metadata"`
		Exercises []map[string]any `json:"exercises"`
	}
	decodeBody(t, rec, &result)

	if result.Metadata.Total != 1 || result.Metadata.Page != 1 || result.Metadata.Limit != 20 {
		t.Fatalf("unexpected metadata: %+v", result.Metadata)
	}
	want := []map[string]any{{"id": "push-up", "name": "Push-Up"}}
	if diff := cmp.Diff(want, result.Exercises); diff != "" {
		t.Fatalf("exercises mismatch (-want +got):\n%s", diff)
	}
}

func TestListExercises_BadPageParam(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/exercises?page=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var payload errorResponse
	decodeBody(t, rec, &payload)
	if payload.Error != "bad_request" {
		t.Fatalf("unexpected error code: %s", payload.Error)
	}
}

func TestGetExercise(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/exercises/squat", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var record map[string]any
	decodeBody(t, rec, &record)
	if record["id"] != "squat" || record["name"] != "Squat" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestGetExercise_NotFound(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/exercises/deadlift", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var payload errorResponse
	decodeBody(t, rec, &payload)
	if payload.Error != "not_found" {
		t.Fatalf("unexpected error code: %s", payload.Error)
	}
}

func TestBatchExercises(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/v1/exercises/batch",
		`{"ids":["squat","missing","push-up"],"fields":["id"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Exercises []map[string]any `json:"exercises"`
	}
	decodeBody(t, rec, &result)
	want := []map[string]any{{"id": "squat"}, {"id": "push-up"}}
	if diff := cmp.Diff(want, result.Exercises); diff != "" {
		t.Fatalf("batch mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchExercises_MissingIDs(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/v1/exercises/batch", `{"fields":["id"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var payload errorResponse
	decodeBody(t, rec, &payload)
	if payload.Error != "bad_request" {
		t.Fatalf("unexpected error code: %s", payload.Error)
	}
}

func TestBatchExercises_MalformedBody(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/v1/exercises/batch", `{"ids":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchExercises(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/search?q=up&fields=id", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result struct {
		Exercises []map[string]any `json:"exercises"`
	}
	decodeBody(t, rec, &result)
	want := []map[string]any{{"id": "push-up"}}
	if diff := cmp.Diff(want, result.Exercises); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchExercises_NoCriteria(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/search", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFacetsEndpoints(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/facets/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var categories struct {
		Categories []query.Facet `json:"categories"`
	}
	decodeBody(t, rec, &categories)
	wantCategories := []query.Facet{
		{Value: "lower-body", DisplayName: "Lower Body", Count: 1},
		{Value: "upper-body", DisplayName: "Upper Body", Count: 1},
	}
	if diff := cmp.Diff(wantCategories, categories.Categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	rec = doRequest(t, handler, http.MethodGet, "/v1/facets/equipment", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var equipment struct {
		Equipment []query.Facet `json:"equipment"`
	}
	decodeBody(t, rec, &equipment)
	wantEquipment := []query.Facet{
		{Value: "barbell", Count: 1},
		{Value: "bodyweight", Count: 1},
	}
	if diff := cmp.Diff(wantEquipment, equipment.Equipment); diff != "" {
		t.Fatalf("equipment mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionEndpoint(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/version", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload map[string]string
	decodeBody(t, rec, &payload)
	want := map[string]string{"version": "1.2.3", "apiVersion": "v1"}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("version payload mismatch (-want +got):\n%s", diff)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=60" {
		t.Fatalf("unexpected Cache-Control: %q", got)
	}
}

func TestResponseHeaders(t *testing.T) {
	handler := testHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/v1/exercises", "")
	if got := rec.Header().Get("X-Data-Version"); got != "1.2.3" {
		t.Fatalf("unexpected X-Data-Version: %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=300" {
		t.Fatalf("unexpected Cache-Control: %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected Content-Type: %q", got)
	}

	rec = doRequest(t, handler, http.MethodGet, "/v1/exercises/deadlift", "")
	if got := rec.Header().Get("X-Data-Version"); got != "1.2.3" {
		t.Fatalf("expected data version header on errors too, got %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no Cache-Control on errors, got %q", got)
	}
}

func TestCustomPrefix(t *testing.T) {
	snapshot := &store.Snapshot{
		Version:   version.Info{Version: "1.0.0", LastUpdated: snapshotTime, ExerciseCount: 0},
		Exercises: nil,
	}
	api := NewAPI(query.NewEngine(snapshot), Config{Prefix: "/api/v2"}, nil)
	handler := api.Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/v2/version", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = doRequest(t, handler, http.MethodGet, "/v1/version", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 under default prefix, got %d", rec.Code)
	}
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		base, suffix, want string
	}{
		{"", "", "/"},
		{"", "exercises", "/exercises"},
		{"/v1", "", "/v1"},
		{"/v1", "exercises", "/v1/exercises"},
		{"v1/", "/exercises/", "/v1/exercises"},
	}
	for _, tc := range cases {
		if got := joinPath(tc.base, tc.suffix); got != tc.want {
			t.Fatalf("joinPath(%q, %q) = %q, want %q", tc.base, tc.suffix, got, tc.want)
		}
	}
}
