// Package http exposes the versioned read API over the persisted dataset.
//
// Routes mount under the configured prefix (default /v1):
//   - Listing: /exercises
//   - Single record: /exercises/{id}
//   - Batch lookup: POST /exercises/batch
//   - Search: /search
//   - Facets: /facets/categories, /facets/muscles, /facets/equipment
//   - Version: /version
//
// Every response carries the current data version in X-Data-Version so
// clients can decide whether to refetch. Host applications register the
// handlers on their own mux as needed.
package http
