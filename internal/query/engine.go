// Package query answers read requests against the last committed snapshot:
// filtering, search, projection, pagination, and facets. The engine is
// read-only and stateless per request, so concurrent use needs no locking.
package query

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/goliatone/go-exercisedb/exercise"
	"github.com/goliatone/go-exercisedb/internal/store"
	"github.com/goliatone/go-exercisedb/internal/version"
)

const (
	// DefaultPage is used when a request omits or zeroes the page number.
	DefaultPage = 1
	// DefaultLimit is used when a request omits or zeroes the page size.
	DefaultLimit = 20
)

// Filters are conjunctive: a record matches only when it independently
// satisfies every supplied predicate. Zero values mean "not supplied".
type Filters struct {
	// Category must equal the record's category.
	Category string
	// Difficulty must equal the record's difficulty.
	Difficulty string
	// Equipment must be among the record's equipment.
	Equipment string
	// Muscle must be among the union of primary and secondary muscles.
	Muscle string
	// Tags matches when any supplied tag is among the record's tags.
	Tags []string
}

func (f Filters) empty() bool {
	return f.Category == "" && f.Difficulty == "" && f.Equipment == "" && f.Muscle == "" && len(f.Tags) == 0
}

// ListOptions parameterise List requests.
type ListOptions struct {
	Filters
	// Fields projects the response to a field subset; empty returns whole records.
	Fields []string
	Page   int
	Limit  int
}

// SearchOptions parameterise Search requests. Query text is optional when at
// least one filter is supplied.
type SearchOptions struct {
	Query string
	ListOptions
}

// PageMeta describes the pagination window of a List or Search response.
type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// ListResult is the paginated response shape shared by List and Search.
type ListResult struct {
	Metadata  PageMeta         `json:"metadata"`
	Exercises []map[string]any `json:"exercises"`
}

// Facet is one distinct value with its usage count across the dataset.
type Facet struct {
	Value       string `json:"value"`
	DisplayName string `json:"displayName,omitempty"`
	Count       int    `json:"count"`
}

// Engine serves reads over one immutable snapshot.
type Engine struct {
	records []exercise.Exercise
	byID    map[string]int
	info    version.Info
}

// NewEngine indexes a snapshot for serving.
func NewEngine(snapshot *store.Snapshot) *Engine {
	engine := &Engine{
		records: snapshot.Exercises,
		byID:    make(map[string]int, len(snapshot.Exercises)),
		info:    snapshot.Version,
	}
	for i, record := range snapshot.Exercises {
		engine.byID[record.ID] = i
	}
	return engine
}

// Version reports the snapshot's dataset version.
func (e *Engine) Version() version.Info {
	return e.info
}

// List returns the filtered, paginated record set. Pages beyond range yield
// an empty list with the total still reflecting the full filtered count.
func (e *Engine) List(opts ListOptions) (*ListResult, error) {
	matched := e.filter(opts.Filters, "")
	return paginate(matched, opts.Page, opts.Limit, opts.Fields)
}

// GetByID returns one record, optionally projected.
func (e *Engine) GetByID(id string, fields []string) (map[string]any, error) {
	idx, ok := e.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return project(toMap(e.records[idx]), fields), nil
}

// Batch returns the records found for the supplied ids, preserving input
// order and silently dropping unknown ids. An empty id list is a bad request.
func (e *Engine) Batch(ids []string, fields []string) ([]map[string]any, error) {
	if len(ids) == 0 {
		return nil, &BadRequestError{Reason: "ids parameter is required"}
	}
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		idx, ok := e.byID[id]
		if !ok {
			continue
		}
		out = append(out, project(toMap(e.records[idx]), fields))
	}
	return out, nil
}

// Search matches query text case-insensitively against name, description,
// and tag membership, combined conjunctively with the same filters as List.
// Without query text it behaves as List; without any criteria at all it is a
// bad request.
func (e *Engine) Search(opts SearchOptions) (*ListResult, error) {
	q := strings.TrimSpace(opts.Query)
	if q == "" && opts.Filters.empty() {
		return nil, &BadRequestError{Reason: "search requires query text or at least one filter"}
	}
	matched := e.filter(opts.Filters, strings.ToLower(q))
	return paginate(matched, opts.Page, opts.Limit, opts.Fields)
}

// CategoryFacets scans the dataset for distinct categories with usage
// counts. Display names come from the fixed lookup, not from scanning.
func (e *Engine) CategoryFacets() []Facet {
	facets := e.facets(func(record exercise.Exercise) []string {
		return []string{record.Category}
	})
	for i := range facets {
		facets[i].DisplayName = exercise.CategoryDisplayName(facets[i].Value)
	}
	return facets
}

// MuscleFacets scans the dataset for distinct muscles (primary and
// secondary) with usage counts.
func (e *Engine) MuscleFacets() []Facet {
	return e.facets(func(record exercise.Exercise) []string {
		return record.Muscles()
	})
}

// EquipmentFacets scans the dataset for distinct equipment with usage counts.
func (e *Engine) EquipmentFacets() []Facet {
	return e.facets(func(record exercise.Exercise) []string {
		return record.Equipment
	})
}

func (e *Engine) filter(filters Filters, query string) []exercise.Exercise {
	matched := make([]exercise.Exercise, 0, len(e.records))
	for _, record := range e.records {
		if !matches(record, filters) {
			continue
		}
		if query != "" && !matchesQuery(record, query) {
			continue
		}
		matched = append(matched, record)
	}
	return matched
}

func matches(record exercise.Exercise, filters Filters) bool {
	if filters.Category != "" && !strings.EqualFold(record.Category, filters.Category) {
		return false
	}
	if filters.Difficulty != "" && !strings.EqualFold(record.Difficulty, filters.Difficulty) {
		return false
	}
	if filters.Equipment != "" && !containsFold(record.Equipment, filters.Equipment) {
		return false
	}
	if filters.Muscle != "" && !containsFold(record.Muscles(), filters.Muscle) {
		return false
	}
	if len(filters.Tags) > 0 && !intersectsFold(record.Tags, filters.Tags) {
		return false
	}
	return true
}

func matchesQuery(record exercise.Exercise, query string) bool {
	if strings.Contains(strings.ToLower(record.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(record.Description), query) {
		return true
	}
	for _, tag := range record.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		if strings.EqualFold(candidate, needle) {
			return true
		}
	}
	return false
}

func intersectsFold(haystack, needles []string) bool {
	for _, needle := range needles {
		if containsFold(haystack, needle) {
			return true
		}
	}
	return false
}

func (e *Engine) facets(values func(exercise.Exercise) []string) []Facet {
	counts := map[string]int{}
	order := []string{}
	for _, record := range e.records {
		for _, value := range values(record) {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			if _, ok := counts[value]; !ok {
				order = append(order, value)
			}
			counts[value]++
		}
	}

	facets := make([]Facet, 0, len(order))
	for _, value := range order {
		facets = append(facets, Facet{Value: value, Count: counts[value]})
	}
	sort.Slice(facets, func(i, j int) bool { return facets[i].Value < facets[j].Value })
	return facets
}

// paginate slices the matched set and serializes only the returned page.
func paginate(matched []exercise.Exercise, page, limit int, fields []string) (*ListResult, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	total := len(matched)
	pages := (total + limit - 1) / limit

	offset := (page - 1) * limit
	window := []exercise.Exercise{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		window = matched[offset:end]
	}

	out := make([]map[string]any, 0, len(window))
	for _, record := range window {
		out = append(out, project(toMap(record), fields))
	}

	return &ListResult{
		Metadata: PageMeta{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
		Exercises: out,
	}, nil
}

// project selects the requested fields, silently omitting names absent on
// the record. Empty fields return the record unchanged.
func project(record map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return record
	}
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if value, ok := record[field]; ok {
			out[field] = value
		}
	}
	return out
}

// toMap round-trips a record through JSON so responses and projections use
// the persisted wire shape.
func toMap(record exercise.Exercise) map[string]any {
	encoded, err := json.Marshal(record)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := json.Unmarshal(encoded, &out); err != nil {
		return map[string]any{}
	}
	return out
}
