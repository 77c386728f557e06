package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/domain"
)

func (api *AdminAPI) registerSectionTypeRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "section-types")
	mux.HandleFunc("GET "+root, api.handleSectionTypeList)
	mux.HandleFunc("GET "+root+"/{type}", api.handleSectionTypeGet)
}

func (api *AdminAPI) handleSectionTypeList(w http.ResponseWriter, r *http.Request) {
	if api.types == nil {
		unavailable(w)
		return
	}
	writeJSON(w, http.StatusOK, api.types.Types())
}

func (api *AdminAPI) handleSectionTypeGet(w http.ResponseWriter, r *http.Request) {
	if api.types == nil {
		unavailable(w)
		return
	}
	key := strings.TrimSpace(r.PathValue("type"))
	descriptor, ok := api.types.Describe(contracts.Type(key))
	if !ok {
		writeError(w, &domain.NotFoundError{Resource: "section type", Key: key})
		return
	}
	writeJSON(w, http.StatusOK, descriptor)
}
