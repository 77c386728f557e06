package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/registry"
	"github.com/goliatone/go-sections/internal/sections"
)

type testServices struct {
	sections sections.Service
	pages    pages.Service
}

func TestAdminAPI_SectionLifecycle(t *testing.T) {
	mux, _ := setupAdminAPI(t)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections", map[string]any{
		"name":         "Venue FAQ",
		"section_type": "faq_accordion",
		"is_global":    true,
	}, http.StatusCreated)
	var created sections.Section
	decodeJSONBody(t, createResp, &created)
	if created.ID == uuid.Nil || created.Type != contracts.TypeFAQAccordion {
		t.Fatalf("unexpected created section %+v", created)
	}
	if created.Content["heading"] != "Frequently Asked Questions" {
		t.Fatalf("expected default content, got %#v", created.Content)
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections", map[string]any{
		"name":         "Intro",
		"section_type": "text_block",
	}, http.StatusCreated)

	listResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/sections?is_global=true", nil, http.StatusOK)
	var globals []sections.Section
	decodeJSONBody(t, listResp, &globals)
	if len(globals) != 1 || globals[0].ID != created.ID {
		t.Fatalf("expected only the global section, got %+v", globals)
	}

	path := "/admin/api/sections/" + created.ID.String()
	updateResp := doJSONRequest(t, mux, http.MethodPatch, path, map[string]any{"name": "Venue questions"}, http.StatusOK)
	var updated sections.Section
	decodeJSONBody(t, updateResp, &updated)
	if updated.Name != "Venue questions" {
		t.Fatalf("expected renamed section, got %q", updated.Name)
	}

	dupResp := doJSONRequest(t, mux, http.MethodPost, path+"/duplicate", nil, http.StatusCreated)
	var copied sections.Section
	decodeJSONBody(t, dupResp, &copied)
	if copied.ID == created.ID || copied.Name != "Venue questions (copy)" {
		t.Fatalf("unexpected duplicate %+v", copied)
	}

	doJSONRequest(t, mux, http.MethodDelete, path, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, path, nil, http.StatusNotFound)
}

func TestAdminAPI_SectionValidation(t *testing.T) {
	mux, services := setupAdminAPI(t)

	missingName := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections", map[string]any{
		"section_type": "hero",
	}, http.StatusUnprocessableEntity)
	var payload errorResponse
	decodeJSONBody(t, missingName, &payload)
	if payload.Error != "validation_failed" || len(payload.Issues) == 0 || payload.Issues[0].Location != "/name" {
		t.Fatalf("unexpected validation payload %+v", payload)
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections", map[string]any{
		"name":         "Mystery",
		"section_type": "carousel_3d",
	}, http.StatusUnprocessableEntity)

	badContent := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections", map[string]any{
		"name":         "FAQ",
		"section_type": "faq_accordion",
		"content":      map[string]any{"heading": "Questions"},
	}, http.StatusUnprocessableEntity)
	decodeJSONBody(t, badContent, &payload)
	if len(payload.Issues) == 0 {
		t.Fatalf("expected content issues")
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/api/sections", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}

	hero, err := services.sections.Create(t.Context(), sections.CreateInput{Name: "Hero", Type: contracts.TypeHero})
	if err != nil {
		t.Fatalf("create hero: %v", err)
	}
	doJSONRequest(t, mux, http.MethodPatch, "/admin/api/sections/"+hero.ID.String(), map[string]any{
		"section_type": "gallery",
	}, http.StatusUnprocessableEntity)
	doJSONRequest(t, mux, http.MethodPatch, "/admin/api/sections/"+hero.ID.String(), map[string]any{}, http.StatusUnprocessableEntity)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sections/not-a-uuid", nil, http.StatusBadRequest)
}

func TestAdminAPI_PageLayoutAndComposition(t *testing.T) {
	mux, services := setupAdminAPI(t)
	ctx := t.Context()

	a := mustSection(t, services.sections, "A", contracts.TypeHero)
	b := mustSection(t, services.sections, "B", contracts.TypeTextBlock)
	c := mustSection(t, services.sections, "C", contracts.TypeFAQAccordion)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/pages", map[string]any{
		"slug":     "Wedding Packages",
		"title":    "Wedding packages",
		"sections": []string{a.ID.String(), b.ID.String(), c.ID.String()},
	}, http.StatusCreated)
	var page pages.Page
	decodeJSONBody(t, createResp, &page)
	if page.Slug != "wedding-packages" {
		t.Fatalf("expected normalized slug, got %q", page.Slug)
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/pages", map[string]any{
		"slug":  "wedding-packages",
		"title": "Again",
	}, http.StatusConflict)

	pagePath := "/admin/api/pages/" + page.ID.String()
	layoutResp := doJSONRequest(t, mux, http.MethodPut, pagePath+"/sections", map[string]any{
		"sections": []string{c.ID.String(), a.ID.String()},
	}, http.StatusOK)
	var saved pages.Page
	decodeJSONBody(t, layoutResp, &saved)
	if len(saved.Sections) != 2 || saved.Sections[0] != c.ID || saved.Sections[1] != a.ID {
		t.Fatalf("expected [C,A], got %v", saved.Sections)
	}

	doJSONRequest(t, mux, http.MethodPut, pagePath+"/sections", map[string]any{
		"sections": []string{a.ID.String(), a.ID.String()},
	}, http.StatusUnprocessableEntity)

	doJSONRequest(t, mux, http.MethodPatch, pagePath, map[string]any{"meta_title": "Packages"}, http.StatusOK)

	if err := services.sections.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete section: %v", err)
	}

	compResp := doJSONRequest(t, mux, http.MethodGet, pagePath+"/composition", nil, http.StatusOK)
	var composition pages.Composition
	decodeJSONBody(t, compResp, &composition)
	if len(composition.Sections) != 1 || composition.Sections[0].ID != c.ID {
		t.Fatalf("expected dangling id dropped, got %+v", composition.Sections)
	}
	if composition.Page.MetaTitle != "Packages" {
		t.Fatalf("expected meta title, got %q", composition.Page.MetaTitle)
	}

	publicResp := doJSONRequest(t, mux, http.MethodGet, "/api/pages/wedding-packages", nil, http.StatusOK)
	var public map[string]any
	decodeJSONBody(t, publicResp, &public)
	rendered, _ := public["sections"].([]any)
	if len(rendered) != 1 {
		t.Fatalf("unexpected public sections %#v", public["sections"])
	}
	first, _ := rendered[0].(map[string]any)
	if first["section_type"] != "faq_accordion" {
		t.Fatalf("expected section_type key, got %#v", first)
	}

	doJSONRequest(t, mux, http.MethodGet, "/api/pages/missing", nil, http.StatusNotFound)
	doJSONRequest(t, mux, http.MethodDelete, pagePath, nil, http.StatusNoContent)
	if _, err := services.sections.Get(ctx, c.ID); err != nil {
		t.Fatalf("expected sections to survive page delete: %v", err)
	}
}

func TestAdminAPI_SectionTypes(t *testing.T) {
	mux, _ := setupAdminAPI(t)

	listResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/section-types", nil, http.StatusOK)
	var list []registry.Descriptor
	decodeJSONBody(t, listResp, &list)
	if len(list) != len(registry.Builtin()) {
		t.Fatalf("expected %d types, got %d", len(registry.Builtin()), len(list))
	}

	heroResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/section-types/hero", nil, http.StatusOK)
	var hero registry.Descriptor
	decodeJSONBody(t, heroResp, &hero)
	if hero.Type != contracts.TypeHero || !hero.HasEditor {
		t.Fatalf("unexpected hero descriptor %+v", hero)
	}

	doJSONRequest(t, mux, http.MethodGet, "/admin/api/section-types/unknown", nil, http.StatusNotFound)
}

func TestAdminAPI_AuthorizerGuardsMutations(t *testing.T) {
	sectionSvc := sections.NewService(sections.NewMemorySectionRepository(), registry.Default())
	pageSvc := pages.NewService(pages.NewMemoryPageRepository(), sectionSvc)

	var actions []string
	api := NewAdminAPI(
		WithSectionService(sectionSvc),
		WithPageService(pageSvc),
		WithTypeCatalog(registry.Default()),
		WithAuthorizer(func(r *http.Request, action string) error {
			actions = append(actions, action)
			if r.Header.Get("X-Role") != "editor" {
				return ErrForbidden
			}
			return nil
		}),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections", map[string]any{
		"name":         "Hero",
		"section_type": "hero",
	}, http.StatusForbidden)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sections", nil, http.StatusOK)

	list, err := sectionSvc.List(t.Context(), sections.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no section created, got %d", len(list))
	}
	if len(actions) != 1 || actions[0] != ActionSectionsWrite {
		t.Fatalf("unexpected authorizer calls %v", actions)
	}
}

func TestMapError(t *testing.T) {
	status, _ := mapError(errors.New("boom"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	status, _ = mapError(pages.ErrSlugExists)
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
}

func setupAdminAPI(t *testing.T) (*http.ServeMux, testServices) {
	t.Helper()

	sectionSvc := sections.NewService(sections.NewMemorySectionRepository(), registry.Default())
	pageSvc := pages.NewService(pages.NewMemoryPageRepository(), sectionSvc)

	api := NewAdminAPI(
		WithSectionService(sectionSvc),
		WithPageService(pageSvc),
		WithTypeCatalog(registry.Default()),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return mux, testServices{sections: sectionSvc, pages: pageSvc}
}

func mustSection(t *testing.T, svc sections.Service, name string, sectionType contracts.Type) *sections.Section {
	t.Helper()
	section, err := svc.Create(t.Context(), sections.CreateInput{Name: name, Type: sectionType})
	if err != nil {
		t.Fatalf("create section %s: %v", name, err)
	}
	return section
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
