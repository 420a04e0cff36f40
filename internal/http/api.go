package http

import (
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-exercisedb/internal/logging"
	"github.com/goliatone/go-exercisedb/internal/query"
	"github.com/goliatone/go-exercisedb/pkg/interfaces"
)

// APIVersion identifies the query boundary contract.
const APIVersion = "v1"

const (
	headerDataVersion = "X-Data-Version"
	versionCacheTTL   = time.Minute
)

// Config captures serving options for the read API.
type Config struct {
	// Prefix mounts the routes under a path namespace (default /v1).
	Prefix string
	// DataCacheTTL drives the Cache-Control max-age on data responses.
	DataCacheTTL time.Duration
}

// API serves the query boundary over the committed snapshot.
type API struct {
	engine *query.Engine
	cfg    Config
	logger interfaces.Logger
}

// NewAPI constructs the read API around a query engine.
func NewAPI(engine *query.Engine, cfg Config, provider interfaces.LoggerProvider) *API {
	if cfg.Prefix == "" {
		cfg.Prefix = "/" + APIVersion
	}
	if cfg.DataCacheTTL <= 0 {
		cfg.DataCacheTTL = 5 * time.Minute
	}
	return &API{
		engine: engine,
		cfg:    cfg,
		logger: logging.HTTPLogger(provider),
	}
}

// Register mounts the API routes on the supplied mux.
func (api *API) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	prefix := api.cfg.Prefix
	mux.HandleFunc("GET "+joinPath(prefix, "exercises"), api.handleList)
	mux.HandleFunc("GET "+joinPath(prefix, "exercises/{id}"), api.handleGet)
	mux.HandleFunc("POST "+joinPath(prefix, "exercises/batch"), api.handleBatch)
	mux.HandleFunc("GET "+joinPath(prefix, "search"), api.handleSearch)
	mux.HandleFunc("GET "+joinPath(prefix, "facets/categories"), api.handleCategoryFacets)
	mux.HandleFunc("GET "+joinPath(prefix, "facets/muscles"), api.handleMuscleFacets)
	mux.HandleFunc("GET "+joinPath(prefix, "facets/equipment"), api.handleEquipmentFacets)
	mux.HandleFunc("GET "+joinPath(prefix, "version"), api.handleVersion)
}

// Handler returns a mux with the API routes registered, ready to serve.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	return mux
}

func (api *API) handleList(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		api.fail(w, err)
		return
	}
	result, err := api.engine.List(opts)
	if err != nil {
		api.fail(w, err)
		return
	}
	api.ok(w, result)
}

func (api *API) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := api.engine.GetByID(r.PathValue("id"), splitParam(r.URL.Query().Get("fields")))
	if err != nil {
		api.fail(w, err)
		return
	}
	api.ok(w, record)
}

type batchPayload struct {
	IDs    []string `json:"ids"`
	Fields []string `json:"fields,omitempty"`
}

// Validate ensures the id list is present before the engine runs.
func (p batchPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.IDs, validation.Required.Error("ids parameter is required")),
	)
}

func (api *API) handleBatch(w http.ResponseWriter, r *http.Request) {
	var payload batchPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	if err := payload.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	records, err := api.engine.Batch(payload.IDs, payload.Fields)
	if err != nil {
		api.fail(w, err)
		return
	}
	api.ok(w, map[string]any{"exercises": records})
}

func (api *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		api.fail(w, err)
		return
	}
	result, err := api.engine.Search(query.SearchOptions{
		Query:       r.URL.Query().Get("q"),
		ListOptions: opts,
	})
	if err != nil {
		api.fail(w, err)
		return
	}
	api.ok(w, result)
}

func (api *API) handleCategoryFacets(w http.ResponseWriter, r *http.Request) {
	api.ok(w, map[string]any{"categories": api.engine.CategoryFacets()})
}

func (api *API) handleMuscleFacets(w http.ResponseWriter, r *http.Request) {
	api.ok(w, map[string]any{"muscles": api.engine.MuscleFacets()})
}

func (api *API) handleEquipmentFacets(w http.ResponseWriter, r *http.Request) {
	api.ok(w, map[string]any{"equipment": api.engine.EquipmentFacets()})
}

func (api *API) handleVersion(w http.ResponseWriter, r *http.Request) {
	api.setHeaders(w, versionCacheTTL)
	writeJSON(w, http.StatusOK, map[string]string{
		"version":    api.engine.Version().Version,
		"apiVersion": APIVersion,
	})
}

func (api *API) ok(w http.ResponseWriter, payload any) {
	api.setHeaders(w, api.cfg.DataCacheTTL)
	writeJSON(w, http.StatusOK, payload)
}

func (api *API) fail(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		api.logger.Error("request failed", "error", err)
	}
	api.setHeaders(w, 0)
	writeJSON(w, status, payload)
}

func (api *API) setHeaders(w http.ResponseWriter, ttl time.Duration) {
	w.Header().Set(headerDataVersion, api.engine.Version().Version)
	if ttl > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(ttl.Seconds())))
	}
}

func parseListOptions(r *http.Request) (query.ListOptions, error) {
	params := r.URL.Query()

	page, err := parseIntParam(params.Get("page"), "page")
	if err != nil {
		return query.ListOptions{}, err
	}
	limit, err := parseIntParam(params.Get("limit"), "limit")
	if err != nil {
		return query.ListOptions{}, err
	}

	return query.ListOptions{
		Filters: query.Filters{
			Category:   params.Get("category"),
			Difficulty: params.Get("difficulty"),
			Equipment:  params.Get("equipment"),
			Muscle:     params.Get("muscle"),
			Tags:       splitParam(params.Get("tags")),
		},
		Fields: splitParam(params.Get("fields")),
		Page:   page,
		Limit:  limit,
	}, nil
}
