package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-sections/internal/commands/sectionscmd"
	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/sections"
)

type sectionCreatePayload struct {
	Name        string         `json:"name"`
	SectionType contracts.Type `json:"section_type"`
	Content     map[string]any `json:"content,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
	IsGlobal    bool           `json:"is_global"`
}

type sectionUpdatePayload struct {
	Name        *string         `json:"name,omitempty"`
	SectionType *contracts.Type `json:"section_type,omitempty"`
	Content     map[string]any  `json:"content,omitempty"`
	Settings    map[string]any  `json:"settings,omitempty"`
	IsGlobal    *bool           `json:"is_global,omitempty"`
}

func (api *AdminAPI) registerSectionRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "sections")
	mux.HandleFunc("GET "+root, api.handleSectionList)
	mux.HandleFunc("POST "+root, api.handleSectionCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleSectionGet)
	mux.HandleFunc("PATCH "+root+"/{id}", api.handleSectionUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleSectionDelete)
	mux.HandleFunc("POST "+root+"/{id}/duplicate", api.handleSectionDuplicate)
}

func (api *AdminAPI) handleSectionList(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		unavailable(w)
		return
	}
	isGlobal, err := parseBoolQuery(r.URL.Query().Get("is_global"))
	if err != nil {
		writeBadRequest(w, "invalid is_global")
		return
	}
	filter := sections.Filter{
		IsGlobal: isGlobal,
		Type:     contracts.Type(strings.TrimSpace(r.URL.Query().Get("section_type"))),
	}
	list, err := api.sections.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*sections.Section{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handleSectionGet(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	record, err := api.sections.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSectionCreate(w http.ResponseWriter, r *http.Request) {
	if api.sectionCmds.Create == nil {
		unavailable(w)
		return
	}
	if !api.allowed(w, r, ActionSectionsWrite) {
		return
	}
	var payload sectionCreatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	var created sections.Section
	err := api.sectionCmds.Create.Execute(r.Context(), sectionscmd.CreateSectionCommand{
		Name:        payload.Name,
		SectionType: payload.SectionType,
		Content:     payload.Content,
		Settings:    payload.Settings,
		IsGlobal:    payload.IsGlobal,
		Result:      &created,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &created)
}

func (api *AdminAPI) handleSectionUpdate(w http.ResponseWriter, r *http.Request) {
	if api.sectionCmds.Update == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if !api.allowed(w, r, ActionSectionsWrite) {
		return
	}
	var payload sectionUpdatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, err.Error())
		return
	}
	var updated sections.Section
	err = api.sectionCmds.Update.Execute(r.Context(), sectionscmd.UpdateSectionCommand{
		SectionID:   id,
		Name:        payload.Name,
		SectionType: payload.SectionType,
		Content:     payload.Content,
		Settings:    payload.Settings,
		IsGlobal:    payload.IsGlobal,
		Result:      &updated,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &updated)
}

func (api *AdminAPI) handleSectionDelete(w http.ResponseWriter, r *http.Request) {
	if api.sectionCmds.Delete == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if !api.allowed(w, r, ActionSectionsWrite) {
		return
	}
	if err := api.sectionCmds.Delete.Execute(r.Context(), sectionscmd.DeleteSectionCommand{SectionID: id}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handleSectionDuplicate(w http.ResponseWriter, r *http.Request) {
	if api.sectionCmds.Duplicate == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if !api.allowed(w, r, ActionSectionsWrite) {
		return
	}
	var copied sections.Section
	if err := api.sectionCmds.Duplicate.Execute(r.Context(), sectionscmd.DuplicateSectionCommand{SectionID: id, Result: &copied}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &copied)
}
