package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/commands/pagescmd"
	"github.com/goliatone/go-sections/internal/pages"
)

type pageCreatePayload struct {
	Slug            string      `json:"slug"`
	PageType        string      `json:"page_type,omitempty"`
	Title           string      `json:"title"`
	MetaTitle       string      `json:"meta_title,omitempty"`
	MetaDescription string      `json:"meta_description,omitempty"`
	OGImage         string      `json:"og_image,omitempty"`
	Sections        []uuid.UUID `json:"sections,omitempty"`
}

type pageUpdatePayload struct {
	Slug            *string `json:"slug,omitempty"`
	PageType        *string `json:"page_type,omitempty"`
	Title           *string `json:"title,omitempty"`
	MetaTitle       *string `json:"meta_title,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
	OGImage         *string `json:"og_image,omitempty"`
}

type pageLayoutPayload struct {
	Sections []uuid.UUID `json:"sections"`
}

func (api *AdminAPI) registerPageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("POST "+root, api.handlePageCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handlePageGet)
	mux.HandleFunc("PATCH "+root+"/{id}", api.handlePageUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handlePageDelete)
	mux.HandleFunc("PUT "+root+"/{id}/sections", api.handlePageLayout)
	mux.HandleFunc("GET "+root+"/{id}/composition", api.handlePageComposition)
}

func (api *AdminAPI) registerPublicRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "pages")+"/{slug}", api.handlePublicPage)
}

func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	list, err := api.pages.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*pages.Page{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	record, err := api.pages.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	if !api.allowed(w, r, ActionPagesWrite) {
		return
	}
	var payload pageCreatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	created, err := api.pages.Create(r.Context(), pages.CreatePageInput{
		Slug:            payload.Slug,
		PageType:        payload.PageType,
		Title:           payload.Title,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		OGImage:         payload.OGImage,
		Sections:        payload.Sections,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if !api.allowed(w, r, ActionPagesWrite) {
		return
	}
	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	updated, err := api.pages.Update(r.Context(), id, pages.PagePatch{
		Slug:            payload.Slug,
		PageType:        payload.PageType,
		Title:           payload.Title,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		OGImage:         payload.OGImage,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if !api.allowed(w, r, ActionPagesWrite) {
		return
	}
	if err := api.pages.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePageLayout replaces the ordered section list of a page.
func (api *AdminAPI) handlePageLayout(w http.ResponseWriter, r *http.Request) {
	if api.layoutCmd == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if !api.allowed(w, r, ActionPagesWrite) {
		return
	}
	var payload pageLayoutPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "sections list required")
		return
	}
	if payload.Sections == nil {
		payload.Sections = []uuid.UUID{}
	}
	var saved pages.Page
	err = api.layoutCmd.Execute(r.Context(), pagescmd.SavePageLayoutCommand{
		PageID:   id,
		Sections: payload.Sections,
		Result:   &saved,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &saved)
}

func (api *AdminAPI) handlePageComposition(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	composition, err := api.pages.Compose(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, composition)
}

func (api *AdminAPI) handlePublicPage(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	composition, err := api.pages.ComposeBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, composition)
}
