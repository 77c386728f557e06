package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/internal/commands/pagescmd"
	"github.com/goliatone/go-sections/internal/commands/sectionscmd"
	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/registry"
	"github.com/goliatone/go-sections/internal/sections"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Actions passed to the Authorizer.
const (
	ActionSectionsWrite = "sections.write"
	ActionPagesWrite    = "pages.write"
)

// Authorizer gates mutating routes. Returning an error wrapping ErrForbidden
// answers 403; any other error is mapped like a service failure.
type Authorizer func(r *http.Request, action string) error

// TypeCatalog lists the registered section types.
type TypeCatalog interface {
	Types() []registry.Descriptor
	Describe(t contracts.Type) (registry.Descriptor, bool)
}

// AdminAPI registers the admin and public endpoints.
type AdminAPI struct {
	basePath       string
	publicBasePath string
	sections       sections.Service
	pages          pages.Service
	types          TypeCatalog
	sectionCmds    sectionscmd.Handlers
	layoutCmd      *commands.Handler[pagescmd.SavePageLayoutCommand]
	authorize      Authorizer
	logger         interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI. Section mutations run through the
// section command handlers, built from the section service unless supplied.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath:       "/admin/api",
		publicBasePath: "/api",
		logger:         logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	if api.sections != nil && api.sectionCmds.Create == nil {
		api.sectionCmds = sectionscmd.NewHandlers(api.sections, api.logger)
	}
	if api.pages != nil && api.layoutCmd == nil {
		api.layoutCmd = pagescmd.NewSavePageLayoutHandler(api.pages, api.logger)
	}
	return api
}

// WithBasePath overrides the admin base path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPublicBasePath overrides the public base path (defaults to "/api").
func WithPublicBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.publicBasePath = trimmed
		}
	}
}

func WithSectionService(service sections.Service) AdminOption {
	return func(api *AdminAPI) { api.sections = service }
}

func WithPageService(service pages.Service) AdminOption {
	return func(api *AdminAPI) { api.pages = service }
}

func WithTypeCatalog(catalog TypeCatalog) AdminOption {
	return func(api *AdminAPI) { api.types = catalog }
}

// WithSectionCommands supplies prebuilt section handlers, for instance ones
// shared with a command dispatcher.
func WithSectionCommands(handlers sectionscmd.Handlers) AdminOption {
	return func(api *AdminAPI) { api.sectionCmds = handlers }
}

func WithLayoutCommand(handler *commands.Handler[pagescmd.SavePageLayoutCommand]) AdminOption {
	return func(api *AdminAPI) { api.layoutCmd = handler }
}

func WithAuthorizer(authorizer Authorizer) AdminOption {
	return func(api *AdminAPI) { api.authorize = authorizer }
}

func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the endpoints to mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")
	api.registerSectionRoutes(mux, base)
	api.registerSectionTypeRoutes(mux, base)
	api.registerPageRoutes(mux, base)
	api.registerPublicRoutes(mux, joinPath(api.publicBasePath, ""))
	return nil
}

func (api *AdminAPI) allowed(w http.ResponseWriter, r *http.Request, action string) bool {
	if api.authorize == nil {
		return true
	}
	if err := api.authorize(r, action); err != nil {
		api.logger.Warn("sections.http.authorize.denied", "action", action, "path", r.URL.Path, "error", err)
		writeError(w, err)
		return false
	}
	return true
}

func unavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
}
