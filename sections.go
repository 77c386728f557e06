// Package sections composes event site pages from reusable, typed content
// sections. A Module wires the section type registry, the section store,
// page composition, the page builder and the visual editor dispatcher from a
// single Config.
package sections

import (
	"io/fs"
	"net/http"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-sections/internal/builder"
	"github.com/goliatone/go-sections/internal/contracts"
	"github.com/goliatone/go-sections/internal/di"
	"github.com/goliatone/go-sections/internal/dispatcher"
	"github.com/goliatone/go-sections/internal/editor"
	sectionshttp "github.com/goliatone/go-sections/internal/http"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/registry"
	sectionstore "github.com/goliatone/go-sections/internal/sections"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

type (
	// Section is a stored content block.
	Section = sectionstore.Section
	// SectionType tags the content variant of a section.
	SectionType = contracts.Type
	// SectionService exports the content block store contract.
	SectionService = sectionstore.Service
	// Page is a page record with its ordered section ids.
	Page = pages.Page
	// PageService exports the page composition contract.
	PageService = pages.Service
	// Composition is a page joined with its resolved sections.
	Composition = pages.Composition
	// Workspace is an open page builder session.
	Workspace = builder.Workspace
	// EditorSession is an open section editor.
	EditorSession = editor.Session
	// EditorMode reports whether a session is visual or raw.
	EditorMode = dispatcher.Mode
	// Authorizer gates mutating admin routes.
	Authorizer = sectionshttp.Authorizer
	// Option overrides container wiring.
	Option = di.Option
)

// ErrForbidden is returned by an Authorizer to answer 403.
var ErrForbidden = sectionshttp.ErrForbidden

func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

func WithBunDB(db *bun.DB) Option {
	return di.WithBunDB(db)
}

func WithFixturesFS(fsys fs.FS) Option {
	return di.WithFixturesFS(fsys)
}

func WithAuthorizer(authorizer Authorizer) Option {
	return di.WithAuthorizer(authorizer)
}

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional
// overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Sections returns the content block store.
func (m *Module) Sections() SectionService {
	return m.container.SectionService()
}

// Pages returns the page composition service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Builder returns the page builder used to open workspaces.
func (m *Module) Builder() *builder.Service {
	return m.container.BuilderService()
}

// Registry returns the section type registry.
func (m *Module) Registry() *registry.Registry {
	return m.container.Registry()
}

// Editors returns the visual editor dispatcher.
func (m *Module) Editors() *dispatcher.Dispatcher {
	return m.container.EditorDispatcher()
}

// Handler returns a mux serving the admin and public JSON routes.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.container.AdminAPI().Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Close releases the resources opened by New.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
