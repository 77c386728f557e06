// Package http exposes the section store, the section type registry and page
// composition over JSON.
//
// Admin routes mount under /admin/api:
//   - Sections: /sections, /sections/{id}, /sections/{id}/duplicate
//   - Section types: /section-types, /section-types/{type}
//   - Pages: /pages, /pages/{id}, /pages/{id}/sections, /pages/{id}/composition
//
// The public composition route mounts under /api: /pages/{slug}.
//
// Host applications register the handlers on their own mux.
package http
